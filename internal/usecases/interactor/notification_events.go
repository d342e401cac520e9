package interactor

import (
	"context"
	"fmt"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
)

// Domain-event helpers. Each resolves the recipient set for a fixed
// type/title/message and hands off to Create or CreateBulk.

func (i *NotificationInteractor) NotifyTaskAssigned(ctx context.Context, assigneeID, taskID, taskTitle string) (*models.Notification, error) {
	return i.Create(ctx, NotificationInput{
		UserID:     assigneeID,
		Type:       models.NotificationTaskAssigned,
		Title:      "New Task Assigned",
		Message:    fmt.Sprintf("You have been assigned the task: %s", taskTitle),
		Priority:   models.PriorityMedium,
		EntityType: "task",
		EntityID:   taskID,
		ActionURL:  fmt.Sprintf("/tasks/%s", taskID),
		Variables:  map[string]string{"taskTitle": taskTitle},
	})
}

// NotifyExpenseSubmitted broadcasts to the finance/admin review group.
func (i *NotificationInteractor) NotifyExpenseSubmitted(ctx context.Context, expenseID, expenseTitle, amount, submitterName string) ([]BulkResult, error) {
	recipients, err := i.userRepo.ListIDsByRole(ctx, models.RoleAdmin, models.RoleFinance)
	if err != nil {
		return nil, err
	}

	return i.CreateBulk(ctx, recipients, NotificationInput{
		Type:       models.NotificationExpenseSubmitted,
		Title:      "Expense Submitted",
		Message:    fmt.Sprintf("%s submitted the expense %q for %s", submitterName, expenseTitle, amount),
		Priority:   models.PriorityMedium,
		EntityType: "expense",
		EntityID:   expenseID,
		ActionURL:  fmt.Sprintf("/expenses/%s", expenseID),
		Variables: map[string]string{
			"expenseTitle":  expenseTitle,
			"amount":        amount,
			"submitterName": submitterName,
		},
	}), nil
}

func (i *NotificationInteractor) NotifyInvoicePaid(ctx context.Context, invoiceID, invoiceNumber, amount, clientName string) ([]BulkResult, error) {
	recipients, err := i.userRepo.ListIDsByRole(ctx, models.RoleAdmin, models.RoleFinance)
	if err != nil {
		return nil, err
	}

	return i.CreateBulk(ctx, recipients, NotificationInput{
		Type:       models.NotificationInvoicePaid,
		Title:      "Invoice Paid",
		Message:    fmt.Sprintf("Invoice %s for %s was paid by %s", invoiceNumber, amount, clientName),
		Priority:   models.PriorityHigh,
		EntityType: "invoice",
		EntityID:   invoiceID,
		ActionURL:  fmt.Sprintf("/invoices/%s", invoiceID),
		Variables: map[string]string{
			"invoiceNumber": invoiceNumber,
			"amount":        amount,
			"clientName":    clientName,
		},
	}), nil
}

func (i *NotificationInteractor) NotifyQuotationAccepted(ctx context.Context, quotationID, quotationNumber, clientName string) ([]BulkResult, error) {
	recipients, err := i.userRepo.ListIDsByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return i.CreateBulk(ctx, recipients, NotificationInput{
		Type:       models.NotificationQuotationAccepted,
		Title:      "Quotation Accepted",
		Message:    fmt.Sprintf("%s accepted quotation %s", clientName, quotationNumber),
		Priority:   models.PriorityHigh,
		EntityType: "quotation",
		EntityID:   quotationID,
		ActionURL:  fmt.Sprintf("/quotations/%s", quotationID),
		Variables: map[string]string{
			"quotationNumber": quotationNumber,
			"clientName":      clientName,
		},
	}), nil
}

func (i *NotificationInteractor) NotifyKpiAssigned(ctx context.Context, userID, kpiID, kpiName string) (*models.Notification, error) {
	return i.Create(ctx, NotificationInput{
		UserID:     userID,
		Type:       models.NotificationKpiAssigned,
		Title:      "New KPI Assigned",
		Message:    fmt.Sprintf("The KPI %q has been assigned to you", kpiName),
		Priority:   models.PriorityMedium,
		EntityType: "kpi",
		EntityID:   kpiID,
		ActionURL:  fmt.Sprintf("/kpis/%s", kpiID),
		Variables:  map[string]string{"kpiName": kpiName},
	})
}

// SendTest lets an admin verify the pipeline end to end.
func (i *NotificationInteractor) SendTest(ctx context.Context, userID string) (*models.Notification, error) {
	return i.Create(ctx, NotificationInput{
		UserID:   userID,
		Type:     models.NotificationTest,
		Title:    "Test Notification",
		Message:  "This is a test notification.",
		Priority: models.PriorityLow,
	})
}

// BroadcastSystem sends an announcement to every active user.
func (i *NotificationInteractor) BroadcastSystem(ctx context.Context, title, message string, priority models.NotificationPriority) ([]BulkResult, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}

	recipients, err := i.userRepo.ListActiveIDs(ctx)
	if err != nil {
		return nil, err
	}

	return i.CreateBulk(ctx, recipients, NotificationInput{
		Type:     models.NotificationSystemAnnouncement,
		Title:    title,
		Message:  message,
		Priority: priority,
	}), nil
}
