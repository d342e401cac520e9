package email

import (
	"strings"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
)

// Template is a subject/body pair with {{variable}} placeholders.
type Template struct {
	Subject string
	Body    string
}

// Render substitutes {{key}} placeholders with the given variables.
// Placeholders with no matching variable are left as-is.
func (t Template) Render(vars map[string]string) (string, string) {
	if len(vars) == 0 {
		return t.Subject, t.Body
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	replacer := strings.NewReplacer(pairs...)

	return replacer.Replace(t.Subject), replacer.Replace(t.Body)
}

var templates = map[models.NotificationType]Template{
	models.NotificationTaskAssigned: {
		Subject: "New task assigned: {{taskTitle}}",
		Body:    "You have been assigned the task \"{{taskTitle}}\". Open it here: {{actionUrl}}",
	},
	models.NotificationExpenseSubmitted: {
		Subject: "Expense submitted: {{expenseTitle}}",
		Body:    "{{submitterName}} submitted the expense \"{{expenseTitle}}\" for {{amount}} and it awaits review.",
	},
	models.NotificationInvoicePaid: {
		Subject: "Invoice {{invoiceNumber}} paid",
		Body:    "Invoice {{invoiceNumber}} for {{amount}} has been paid by {{clientName}}.",
	},
	models.NotificationQuotationAccepted: {
		Subject: "Quotation {{quotationNumber}} accepted",
		Body:    "{{clientName}} accepted quotation {{quotationNumber}}.",
	},
	models.NotificationKpiAssigned: {
		Subject: "New KPI assigned: {{kpiName}}",
		Body:    "The KPI \"{{kpiName}}\" has been assigned to you for the current evaluation period.",
	},
}

// ForType returns the email template for a notification type. Types with no
// template fall back to a generic subject/body built from title+message.
func ForType(t models.NotificationType) (Template, bool) {
	tpl, ok := templates[t]
	return tpl, ok
}
