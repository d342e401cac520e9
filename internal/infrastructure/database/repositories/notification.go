package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewNotificationRepositoryImpl(db *pgxpool.Pool) repositories.NotificationRepository {
	return &NotificationRepositoryImpl{
		db: db,
	}
}

func (r *NotificationRepositoryImpl) Insert(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO notifications
		   (id, user_id, type, title, message, priority, is_read,
		    entity_type, entity_id, action_url, email_sent, scheduled_at, expires_at,
		    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, FALSE,
		         NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), FALSE, $10, $11,
		         $12, $12)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Priority,
		n.EntityType, n.EntityID, n.ActionURL, n.ScheduledAt, n.ExpiresAt,
		n.CreatedAt,
	)
	return err
}

// MarkAsRead only touches rows owned by userID. A foreign notification id
// simply matches nothing.
func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, id, userID string) (int64, error) {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepositoryImpl) MarkMultipleAsRead(ctx context.Context, ids []string, userID string) (int64, error) {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE id = ANY($1) AND user_id = $2",
		ids, userID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepositoryImpl) ListByUser(ctx context.Context, userID string, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT id, user_id, type, title, message, priority, is_read,
	                 COALESCE(entity_type, ''), COALESCE(entity_id, ''), COALESCE(action_url, ''),
	                 email_sent, email_sent_at, COALESCE(email_error, ''),
	                 scheduled_at, expires_at, created_at, updated_at
	          FROM notifications
	          WHERE user_id = $1`
	if unreadOnly {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3"

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotifications(rows)
}

func (r *NotificationRepositoryImpl) CountByUser(ctx context.Context, userID string, unreadOnly bool) (int, error) {
	query := "SELECT COUNT(*) FROM notifications WHERE user_id = $1"
	if unreadOnly {
		query += " AND is_read = FALSE"
	}

	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *NotificationRepositoryImpl) RecordEmailResult(ctx context.Context, id string, sent bool, emailErr string) error {
	_, err := r.db.Exec(
		ctx,
		`UPDATE notifications
		 SET email_sent = $2,
		     email_sent_at = CASE WHEN $2 THEN NOW() ELSE email_sent_at END,
		     email_error = NULLIF($3, ''),
		     updated_at = NOW()
		 WHERE id = $1`,
		id, sent, emailErr,
	)
	return err
}

// ListDueScheduled returns scheduled notifications whose delivery time has
// arrived, has not expired and whose email was not attempted yet.
func (r *NotificationRepositoryImpl) ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Notification, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, type, title, message, priority, is_read,
		        COALESCE(entity_type, ''), COALESCE(entity_id, ''), COALESCE(action_url, ''),
		        email_sent, email_sent_at, COALESCE(email_error, ''),
		        scheduled_at, expires_at, created_at, updated_at
		 FROM notifications
		 WHERE scheduled_at IS NOT NULL
		   AND scheduled_at <= $1
		   AND email_sent = FALSE
		   AND email_error IS NULL
		   AND (expires_at IS NULL OR expires_at > $1)
		 ORDER BY scheduled_at
		 LIMIT $2`,
		now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanNotifications(rows)
}

func (r *NotificationRepositoryImpl) GetSetting(ctx context.Context, userID string, t models.NotificationType) (*models.NotificationSetting, error) {
	s := &models.NotificationSetting{}
	err := r.db.QueryRow(
		ctx,
		`SELECT user_id, type, in_app_enabled, email_enabled, push_enabled
		 FROM notification_settings WHERE user_id = $1 AND type = $2`,
		userID, t,
	).Scan(&s.UserID, &s.Type, &s.InAppEnabled, &s.EmailEnabled, &s.PushEnabled)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return s, nil
}

func (r *NotificationRepositoryImpl) ListSettings(ctx context.Context, userID string) ([]models.NotificationSetting, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, type, in_app_enabled, email_enabled, push_enabled
		 FROM notification_settings WHERE user_id = $1 ORDER BY type`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make([]models.NotificationSetting, 0)
	for rows.Next() {
		var s models.NotificationSetting
		err = rows.Scan(&s.UserID, &s.Type, &s.InAppEnabled, &s.EmailEnabled, &s.PushEnabled)
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}

	return settings, rows.Err()
}

func (r *NotificationRepositoryImpl) UpsertSetting(ctx context.Context, s *models.NotificationSetting) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO notification_settings (user_id, type, in_app_enabled, email_enabled, push_enabled)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, type) DO UPDATE
		 SET in_app_enabled = EXCLUDED.in_app_enabled,
		     email_enabled = EXCLUDED.email_enabled,
		     push_enabled = EXCLUDED.push_enabled`,
		s.UserID, s.Type, s.InAppEnabled, s.EmailEnabled, s.PushEnabled,
	)
	return err
}

func scanNotifications(rows pgx.Rows) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Priority, &n.IsRead,
			&n.EntityType, &n.EntityID, &n.ActionURL,
			&n.EmailSent, &n.EmailSentAt, &n.EmailError,
			&n.ScheduledAt, &n.ExpiresAt, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
