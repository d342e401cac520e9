package email

import (
	"testing"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRender(t *testing.T) {
	t.Run("substitutes placeholders", func(t *testing.T) {
		tpl, ok := ForType(models.NotificationInvoicePaid)
		require.True(t, ok)

		subject, body := tpl.Render(map[string]string{
			"invoiceNumber": "INV-2024-0042",
			"amount":        "1500.00",
			"clientName":    "Acme Corp",
		})

		assert.Equal(t, "Invoice INV-2024-0042 paid", subject)
		assert.Equal(t, "Invoice INV-2024-0042 for 1500.00 has been paid by Acme Corp.", body)
	})

	t.Run("unknown placeholders are left untouched", func(t *testing.T) {
		tpl, ok := ForType(models.NotificationTaskAssigned)
		require.True(t, ok)

		subject, _ := tpl.Render(map[string]string{"actionUrl": "https://example.com/t/1"})

		assert.Equal(t, "New task assigned: {{taskTitle}}", subject)
	})

	t.Run("nil variables return the raw template", func(t *testing.T) {
		tpl := Template{Subject: "Hi {{name}}", Body: "Body"}

		subject, body := tpl.Render(nil)

		assert.Equal(t, "Hi {{name}}", subject)
		assert.Equal(t, "Body", body)
	})
}

func TestForType(t *testing.T) {
	_, ok := ForType(models.NotificationTest)
	assert.False(t, ok, "test notifications use the generic title/message fallback")

	_, ok = ForType(models.NotificationSystemAnnouncement)
	assert.False(t, ok, "announcements use the generic title/message fallback")
}
