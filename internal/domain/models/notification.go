package models

import "time"

type NotificationType string

const (
	NotificationTaskAssigned       NotificationType = "task_assigned"
	NotificationExpenseSubmitted   NotificationType = "expense_submitted"
	NotificationInvoicePaid        NotificationType = "invoice_paid"
	NotificationQuotationAccepted  NotificationType = "quotation_accepted"
	NotificationKpiAssigned        NotificationType = "kpi_assigned"
	NotificationSystemAnnouncement NotificationType = "system_announcement"
	NotificationTest               NotificationType = "test"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

var ValidPriorities = map[NotificationPriority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
	PriorityUrgent: {},
}

// Notification is created by a domain event and afterwards mutated only to
// flip IsRead or to record the email delivery outcome.
type Notification struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	Type        NotificationType     `json:"type"`
	Title       string               `json:"title"`
	Message     string               `json:"message"`
	Priority    NotificationPriority `json:"priority"`
	IsRead      bool                 `json:"isRead"`
	EntityType  string               `json:"entityType,omitempty"`
	EntityID    string               `json:"entityId,omitempty"`
	ActionURL   string               `json:"actionUrl,omitempty"`
	EmailSent   bool                 `json:"emailSent"`
	EmailSentAt *time.Time           `json:"emailSentAt,omitempty"`
	EmailError  string               `json:"emailError,omitempty"`
	ScheduledAt *time.Time           `json:"scheduledAt,omitempty"`
	ExpiresAt   *time.Time           `json:"expiresAt,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// NotificationSetting is a per-user, per-type channel toggle tuple. A user
// with no row for a type has every channel enabled.
type NotificationSetting struct {
	UserID       string           `json:"userId"`
	Type         NotificationType `json:"type"`
	InAppEnabled bool             `json:"inAppEnabled"`
	EmailEnabled bool             `json:"emailEnabled"`
	PushEnabled  bool             `json:"pushEnabled"`
}
