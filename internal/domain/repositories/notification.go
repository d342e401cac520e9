package repositories

import (
	"context"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
)

type NotificationRepository interface {
	Insert(ctx context.Context, n *models.Notification) error
	// MarkAsRead flips is_read for a notification owned by userID. A foreign
	// id affects zero rows; ownership lives in the update predicate.
	MarkAsRead(ctx context.Context, id, userID string) (int64, error)
	MarkMultipleAsRead(ctx context.Context, ids []string, userID string) (int64, error)
	ListByUser(ctx context.Context, userID string, limit, offset int, unreadOnly bool) ([]models.Notification, error)
	CountByUser(ctx context.Context, userID string, unreadOnly bool) (int, error)
	RecordEmailResult(ctx context.Context, id string, sent bool, emailErr string) error
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Notification, error)
	GetSetting(ctx context.Context, userID string, t models.NotificationType) (*models.NotificationSetting, error)
	ListSettings(ctx context.Context, userID string) ([]models.NotificationSetting, error)
	UpsertSetting(ctx context.Context, s *models.NotificationSetting) error
}
