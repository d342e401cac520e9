package interactor

import (
	"context"
	"fmt"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	apperrors "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/email"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/dtos"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NotificationInput is the payload for creating one notification. Variables
// feed the {{placeholder}} substitution of the type's email template.
type NotificationInput struct {
	UserID      string
	Type        models.NotificationType
	Title       string
	Message     string
	Priority    models.NotificationPriority
	EntityType  string
	EntityID    string
	ActionURL   string
	ScheduledAt *time.Time
	ExpiresAt   *time.Time
	Variables   map[string]string
}

// BulkResult reports the outcome for one recipient of a fan-out. The caller
// decides what to do about partial failure; the loop itself never stops.
type BulkResult struct {
	UserID         string `json:"userId"`
	NotificationID string `json:"notificationId,omitempty"`
	EmailSent      bool   `json:"emailSent"`
	Err            error  `json:"-"`
}

// NotificationPage is one page of a user's notifications plus counts.
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int                   `json:"total"`
	UnreadCount   int                   `json:"unreadCount"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
}

type NotificationInteractor struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	sender           email.Sender
	logger           *zerolog.Logger
}

func NewNotificationInteractor(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, sender email.Sender) *NotificationInteractor {
	l := log.GetLogger()
	return &NotificationInteractor{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
		logger:           &l,
	}
}

// Create persists a notification and attempts email dispatch when the
// recipient's settings allow it. A database error is fatal; an email error
// is recorded on the row and never rolls the notification back.
func (i *NotificationInteractor) Create(ctx context.Context, input NotificationInput) (*models.Notification, error) {
	if input.UserID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}
	if input.Type == "" {
		return nil, apperrors.NewValidationError("notification type is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if _, ok := models.ValidPriorities[priority]; !ok {
		return nil, apperrors.NewValidationError("invalid priority")
	}

	now := time.Now().UTC()
	n := &models.Notification{
		ID:          uuid.New().String(),
		UserID:      input.UserID,
		Type:        input.Type,
		Title:       input.Title,
		Message:     input.Message,
		Priority:    priority,
		EntityType:  input.EntityType,
		EntityID:    input.EntityID,
		ActionURL:   input.ActionURL,
		ScheduledAt: input.ScheduledAt,
		ExpiresAt:   input.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := i.notificationRepo.Insert(ctx, n); err != nil {
		return nil, err
	}

	// future-scheduled notifications are emailed by the dispatch process
	if n.ScheduledAt != nil && n.ScheduledAt.After(now) {
		return n, nil
	}

	i.dispatchEmail(ctx, n, input.Variables)
	return n, nil
}

// emailSkippedBySettings marks notifications whose recipient opted out of the
// email channel. The value lands in email_error, which also takes the row out
// of the scheduled dispatch window.
const emailSkippedBySettings = "skipped: email disabled by recipient settings"

// dispatchEmail is best-effort: every failure is logged and recorded on the
// notification row, none is returned to the caller.
func (i *NotificationInteractor) dispatchEmail(ctx context.Context, n *models.Notification, vars map[string]string) {
	setting, err := i.notificationRepo.GetSetting(ctx, n.UserID, n.Type)
	if err != nil {
		i.logger.Error().Err(err).Str("notification_id", n.ID).Msg("failed to load notification settings, assuming enabled")
	}
	if setting != nil && !setting.EmailEnabled {
		// recorded so the scheduled dispatcher does not pick the row up again
		i.recordEmailResult(ctx, n, false, emailSkippedBySettings)
		return
	}

	user, err := i.userRepo.GetByID(ctx, n.UserID)
	if err != nil {
		i.recordEmailResult(ctx, n, false, fmt.Sprintf("recipient lookup failed: %v", err))
		return
	}

	subject, body := n.Title, n.Message
	if tpl, ok := email.ForType(n.Type); ok {
		merged := map[string]string{
			"title":     n.Title,
			"message":   n.Message,
			"actionUrl": n.ActionURL,
		}
		for k, v := range vars {
			merged[k] = v
		}
		subject, body = tpl.Render(merged)
	}

	err = i.sender.Send(ctx, email.Message{To: user.Email, Subject: subject, Body: body})
	if err != nil {
		i.logger.Error().Err(err).Str("notification_id", n.ID).Msg("email dispatch failed")
		i.recordEmailResult(ctx, n, false, err.Error())
		return
	}

	i.recordEmailResult(ctx, n, true, "")
}

func (i *NotificationInteractor) recordEmailResult(ctx context.Context, n *models.Notification, sent bool, emailErr string) {
	n.EmailSent = sent
	n.EmailError = emailErr
	if sent {
		now := time.Now().UTC()
		n.EmailSentAt = &now
	}

	if err := i.notificationRepo.RecordEmailResult(ctx, n.ID, sent, emailErr); err != nil {
		i.logger.Error().Err(err).Str("notification_id", n.ID).Msg("failed to record email result")
	}
}

// CreateBulk fans the payload out to each user sequentially. Each recipient
// goes through the full single-notification path including its own email
// attempt; one failure does not stop the rest and there is no cross-
// recipient rollback.
func (i *NotificationInteractor) CreateBulk(ctx context.Context, userIDs []string, input NotificationInput) []BulkResult {
	results := make([]BulkResult, 0, len(userIDs))
	for _, userID := range userIDs {
		perUser := input
		perUser.UserID = userID

		n, err := i.Create(ctx, perUser)
		if err != nil {
			i.logger.Error().Err(err).Str("user_id", userID).Msg("bulk notification failed for recipient")
			results = append(results, BulkResult{UserID: userID, Err: err})
			continue
		}

		results = append(results, BulkResult{
			UserID:         userID,
			NotificationID: n.ID,
			EmailSent:      n.EmailSent,
		})
	}
	return results
}

// MarkAsRead flips the read flag for a notification owned by userID. Someone
// else's notification id matches zero rows and is a silent no-op.
func (i *NotificationInteractor) MarkAsRead(ctx context.Context, id, userID string) error {
	_, err := i.notificationRepo.MarkAsRead(ctx, id, userID)
	return err
}

func (i *NotificationInteractor) MarkMultipleAsRead(ctx context.Context, ids []string, userID string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("ids are required")
	}
	return i.notificationRepo.MarkMultipleAsRead(ctx, ids, userID)
}

func (i *NotificationInteractor) GetUserNotifications(ctx context.Context, userID string, page, limit int, unreadOnly bool) (*NotificationPage, error) {
	page, limit = clampPage(page, limit)

	notifications, err := i.notificationRepo.ListByUser(ctx, userID, limit, (page-1)*limit, unreadOnly)
	if err != nil {
		return nil, err
	}

	total, err := i.notificationRepo.CountByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	unread, err := i.notificationRepo.CountByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	return &NotificationPage{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		Limit:         limit,
	}, nil
}

func (i *NotificationInteractor) GetSettings(ctx context.Context, userID string) ([]models.NotificationSetting, error) {
	return i.notificationRepo.ListSettings(ctx, userID)
}

func (i *NotificationInteractor) UpdateSetting(ctx context.Context, userID string, dto *dtos.NotificationSettingDTO) error {
	if dto.Type == "" {
		return apperrors.NewValidationError("notification type is required")
	}

	return i.notificationRepo.UpsertSetting(ctx, &models.NotificationSetting{
		UserID:       userID,
		Type:         models.NotificationType(dto.Type),
		InAppEnabled: dto.InAppEnabled,
		EmailEnabled: dto.EmailEnabled,
		PushEnabled:  dto.PushEnabled,
	})
}

// DispatchDue delivers the email channel for scheduled notifications whose
// time has arrived. Called periodically by the dispatch process.
func (i *NotificationInteractor) DispatchDue(ctx context.Context) (int, error) {
	due, err := i.notificationRepo.ListDueScheduled(ctx, time.Now().UTC(), maxPageLimit)
	if err != nil {
		return 0, err
	}

	for idx := range due {
		i.dispatchEmail(ctx, &due[idx], nil)
	}

	return len(due), nil
}
