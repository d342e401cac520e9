package interactor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	apperr "github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/email"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/dtos"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	notifications map[string]*models.Notification
	settings      map[string]*models.NotificationSetting
	order         []string
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: make(map[string]*models.Notification),
		settings:      make(map[string]*models.NotificationSetting),
	}
}

func settingKey(userID string, t models.NotificationType) string {
	return userID + "/" + string(t)
}

func (f *fakeNotificationRepo) Insert(_ context.Context, n *models.Notification) error {
	stored := *n
	f.notifications[n.ID] = &stored
	f.order = append(f.order, n.ID)
	return nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, id, userID string) (int64, error) {
	n, ok := f.notifications[id]
	if !ok || n.UserID != userID {
		return 0, nil
	}
	n.IsRead = true
	return 1, nil
}

func (f *fakeNotificationRepo) MarkMultipleAsRead(ctx context.Context, ids []string, userID string) (int64, error) {
	var affected int64
	for _, id := range ids {
		count, _ := f.MarkAsRead(ctx, id, userID)
		affected += count
	}
	return affected, nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	var matched []models.Notification
	for _, id := range f.order {
		n := f.notifications[id]
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, *n)
	}

	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeNotificationRepo) CountByUser(_ context.Context, userID string, unreadOnly bool) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeNotificationRepo) RecordEmailResult(_ context.Context, id string, sent bool, emailErr string) error {
	n, ok := f.notifications[id]
	if !ok {
		return apperr.NewNotFoundError("notification")
	}
	n.EmailSent = sent
	n.EmailError = emailErr
	return nil
}

func (f *fakeNotificationRepo) ListDueScheduled(_ context.Context, now time.Time, limit int) ([]models.Notification, error) {
	var due []models.Notification
	for _, id := range f.order {
		n := f.notifications[id]
		if n.ScheduledAt == nil || n.ScheduledAt.After(now) {
			continue
		}
		if n.EmailSent || n.EmailError != "" {
			continue
		}
		due = append(due, *n)
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (f *fakeNotificationRepo) GetSetting(_ context.Context, userID string, t models.NotificationType) (*models.NotificationSetting, error) {
	return f.settings[settingKey(userID, t)], nil
}

func (f *fakeNotificationRepo) ListSettings(_ context.Context, userID string) ([]models.NotificationSetting, error) {
	var matched []models.NotificationSetting
	for _, s := range f.settings {
		if s.UserID == userID {
			matched = append(matched, *s)
		}
	}
	return matched, nil
}

func (f *fakeNotificationRepo) UpsertSetting(_ context.Context, s *models.NotificationSetting) error {
	stored := *s
	f.settings[settingKey(s.UserID, s.Type)] = &stored
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(ids ...string) *fakeUserRepo {
	users := make(map[string]*models.User, len(ids))
	for i, id := range ids {
		users[id] = &models.User{
			ID:       id,
			Name:     fmt.Sprintf("User %d", i+1),
			Email:    fmt.Sprintf("user%d@company.local", i+1),
			Role:     models.RoleFinance,
			IsActive: true,
		}
	}
	return &fakeUserRepo{users: users}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NewNotFoundError("user")
	}
	return user, nil
}

func (f *fakeUserRepo) ListIDsByRole(_ context.Context, roles ...string) ([]string, error) {
	var ids []string
	for _, user := range f.users {
		for _, role := range roles {
			if user.Role == role && user.IsActive {
				ids = append(ids, user.ID)
			}
		}
	}
	return ids, nil
}

func (f *fakeUserRepo) ListActiveIDs(_ context.Context) ([]string, error) {
	var ids []string
	for _, user := range f.users {
		if user.IsActive {
			ids = append(ids, user.ID)
		}
	}
	return ids, nil
}

// fakeSender fails delivery for addresses in failFor.
type fakeSender struct {
	sent    []email.Message
	failFor map[string]bool
}

func (f *fakeSender) Send(_ context.Context, msg email.Message) error {
	if f.failFor[msg.To] {
		return fmt.Errorf("smtp: connection refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestCreateNotification(t *testing.T) {
	userID := uuid.New().String()

	t.Run("persists and emails with defaults", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		sender := &fakeSender{}
		notifications := NewNotificationInteractor(repo, newFakeUserRepo(userID), sender)

		n, err := notifications.Create(context.Background(), NotificationInput{
			UserID: userID,
			Type:   models.NotificationTaskAssigned,
			Title:  "New task",
			Variables: map[string]string{
				"taskTitle": "Prepare Q3 report",
			},
		})

		require.NoError(t, err)
		assert.Equal(t, models.PriorityMedium, n.Priority)
		assert.True(t, n.EmailSent)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "New task assigned: Prepare Q3 report", sender.sent[0].Subject)
	})

	t.Run("disabled email setting suppresses delivery but keeps the notification", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		repo.settings[settingKey(userID, models.NotificationTaskAssigned)] = &models.NotificationSetting{
			UserID:       userID,
			Type:         models.NotificationTaskAssigned,
			InAppEnabled: true,
			EmailEnabled: false,
		}
		sender := &fakeSender{}
		notifications := NewNotificationInteractor(repo, newFakeUserRepo(userID), sender)

		n, err := notifications.Create(context.Background(), NotificationInput{
			UserID: userID,
			Type:   models.NotificationTaskAssigned,
			Title:  "New task",
		})

		require.NoError(t, err)
		assert.False(t, n.EmailSent)
		assert.Empty(t, sender.sent)
		assert.Len(t, repo.notifications, 1)
		assert.Equal(t, emailSkippedBySettings, repo.notifications[n.ID].EmailError)
	})

	t.Run("email failure is recorded and not returned", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		sender := &fakeSender{failFor: map[string]bool{"user1@company.local": true}}
		notifications := NewNotificationInteractor(repo, newFakeUserRepo(userID), sender)

		n, err := notifications.Create(context.Background(), NotificationInput{
			UserID: userID,
			Type:   models.NotificationTest,
			Title:  "Test",
		})

		require.NoError(t, err)
		assert.False(t, n.EmailSent)
		assert.Contains(t, n.EmailError, "connection refused")
		stored := repo.notifications[n.ID]
		assert.False(t, stored.EmailSent)
		assert.NotEmpty(t, stored.EmailError)
	})

	t.Run("future-scheduled notification skips the immediate email", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		sender := &fakeSender{}
		notifications := NewNotificationInteractor(repo, newFakeUserRepo(userID), sender)

		scheduledAt := time.Now().UTC().Add(time.Hour)
		n, err := notifications.Create(context.Background(), NotificationInput{
			UserID:      userID,
			Type:        models.NotificationSystemAnnouncement,
			Title:       "Maintenance window",
			ScheduledAt: &scheduledAt,
		})

		require.NoError(t, err)
		assert.False(t, n.EmailSent)
		assert.Empty(t, sender.sent)
	})

	t.Run("validation failures", func(t *testing.T) {
		notifications := NewNotificationInteractor(newFakeNotificationRepo(), newFakeUserRepo(userID), &fakeSender{})

		cases := []NotificationInput{
			{Type: models.NotificationTest, Title: "no user"},
			{UserID: userID, Type: models.NotificationTest},
			{UserID: userID, Title: "no type"},
			{UserID: userID, Type: models.NotificationTest, Title: "bad priority", Priority: "critical"},
		}

		for _, input := range cases {
			_, err := notifications.Create(context.Background(), input)
			var validationErr *apperr.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		}
	})
}

func TestCreateBulk(t *testing.T) {
	u1 := uuid.New().String()
	u2 := uuid.New().String()
	u3 := uuid.New().String()

	t.Run("one failed email does not stop the fan-out", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		sender := &fakeSender{failFor: map[string]bool{"user2@company.local": true}}
		notifications := NewNotificationInteractor(repo, newFakeUserRepo(u1, u2, u3), sender)

		results := notifications.CreateBulk(context.Background(), []string{u1, u2, u3}, NotificationInput{
			Type:  models.NotificationSystemAnnouncement,
			Title: "Office closed Friday",
		})

		require.Len(t, results, 3)
		assert.True(t, results[0].EmailSent)
		assert.False(t, results[1].EmailSent)
		assert.True(t, results[2].EmailSent)
		for _, result := range results {
			assert.NoError(t, result.Err)
			assert.NotEmpty(t, result.NotificationID)
		}
		assert.Len(t, repo.notifications, 3, "every recipient keeps an in-app notification")
	})

	t.Run("a recipient failing validation is reported and skipped", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		notifications := NewNotificationInteractor(repo, newFakeUserRepo(u1, u3), &fakeSender{})

		results := notifications.CreateBulk(context.Background(), []string{u1, "", u3}, NotificationInput{
			Type:  models.NotificationSystemAnnouncement,
			Title: "Office closed Friday",
		})

		require.Len(t, results, 3)
		assert.NoError(t, results[0].Err)
		assert.Error(t, results[1].Err)
		assert.NoError(t, results[2].Err)
		assert.Len(t, repo.notifications, 2)
	})
}

func TestMarkAsRead(t *testing.T) {
	owner := uuid.New().String()
	other := uuid.New().String()

	newSetup := func() (*fakeNotificationRepo, *NotificationInteractor, string) {
		repo := newFakeNotificationRepo()
		notifications := NewNotificationInteractor(repo, newFakeUserRepo(owner, other), &fakeSender{})

		n, err := notifications.Create(context.Background(), NotificationInput{
			UserID: owner,
			Type:   models.NotificationTest,
			Title:  "Hello",
		})
		require.NoError(t, err)
		return repo, notifications, n.ID
	}

	t.Run("owner marks own notification read", func(t *testing.T) {
		repo, notifications, id := newSetup()

		err := notifications.MarkAsRead(context.Background(), id, owner)

		require.NoError(t, err)
		assert.True(t, repo.notifications[id].IsRead)
	})

	t.Run("another user's id is a silent no-op", func(t *testing.T) {
		repo, notifications, id := newSetup()

		err := notifications.MarkAsRead(context.Background(), id, other)

		require.NoError(t, err)
		assert.False(t, repo.notifications[id].IsRead)
	})

	t.Run("mark multiple requires ids", func(t *testing.T) {
		_, notifications, _ := newSetup()

		_, err := notifications.MarkMultipleAsRead(context.Background(), nil, owner)

		var validationErr *apperr.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("mark multiple only touches owned rows", func(t *testing.T) {
		repo, notifications, id := newSetup()

		foreign, err := notifications.Create(context.Background(), NotificationInput{
			UserID: other,
			Type:   models.NotificationTest,
			Title:  "Not yours",
		})
		require.NoError(t, err)

		affected, err := notifications.MarkMultipleAsRead(context.Background(), []string{id, foreign.ID}, owner)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.True(t, repo.notifications[id].IsRead)
		assert.False(t, repo.notifications[foreign.ID].IsRead)
	})
}

func TestGetUserNotifications(t *testing.T) {
	userID := uuid.New().String()

	repo := newFakeNotificationRepo()
	notifications := NewNotificationInteractor(repo, newFakeUserRepo(userID), &fakeSender{})

	var firstID string
	for i := 0; i < 30; i++ {
		n, err := notifications.Create(context.Background(), NotificationInput{
			UserID: userID,
			Type:   models.NotificationTest,
			Title:  fmt.Sprintf("Notification %d", i),
		})
		require.NoError(t, err)
		if i == 0 {
			firstID = n.ID
		}
	}
	require.NoError(t, notifications.MarkAsRead(context.Background(), firstID, userID))

	t.Run("default page size with unread count", func(t *testing.T) {
		page, err := notifications.GetUserNotifications(context.Background(), userID, 0, 0, false)

		require.NoError(t, err)
		assert.Equal(t, 20, page.Limit)
		assert.Len(t, page.Notifications, 20)
		assert.Equal(t, 30, page.Total)
		assert.Equal(t, 29, page.UnreadCount)
	})

	t.Run("unread only filters the total", func(t *testing.T) {
		page, err := notifications.GetUserNotifications(context.Background(), userID, 1, 100, true)

		require.NoError(t, err)
		assert.Equal(t, 29, page.Total)
		assert.Len(t, page.Notifications, 29)
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		page, err := notifications.GetUserNotifications(context.Background(), userID, 1, 1000, false)

		require.NoError(t, err)
		assert.Equal(t, 100, page.Limit)
	})
}

func TestNotificationSettings(t *testing.T) {
	userID := uuid.New().String()

	repo := newFakeNotificationRepo()
	notifications := NewNotificationInteractor(repo, newFakeUserRepo(userID), &fakeSender{})

	t.Run("type is required", func(t *testing.T) {
		err := notifications.UpdateSetting(context.Background(), userID, &dtos.NotificationSettingDTO{})

		var validationErr *apperr.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("upsert then list round-trips", func(t *testing.T) {
		err := notifications.UpdateSetting(context.Background(), userID, &dtos.NotificationSettingDTO{
			Type:         string(models.NotificationInvoicePaid),
			InAppEnabled: true,
			EmailEnabled: false,
			PushEnabled:  false,
		})
		require.NoError(t, err)

		settings, err := notifications.GetSettings(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, settings, 1)
		assert.Equal(t, models.NotificationInvoicePaid, settings[0].Type)
		assert.False(t, settings[0].EmailEnabled)
	})
}

func TestDispatchDue(t *testing.T) {
	userID := uuid.New().String()

	repo := newFakeNotificationRepo()
	sender := &fakeSender{}
	notifications := NewNotificationInteractor(repo, newFakeUserRepo(userID), sender)

	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(time.Hour)

	due, err := notifications.Create(context.Background(), NotificationInput{
		UserID:      userID,
		Type:        models.NotificationSystemAnnouncement,
		Title:       "Already due",
		ScheduledAt: &future,
	})
	require.NoError(t, err)
	repo.notifications[due.ID].ScheduledAt = &past

	_, err = notifications.Create(context.Background(), NotificationInput{
		UserID:      userID,
		Type:        models.NotificationSystemAnnouncement,
		Title:       "Still pending",
		ScheduledAt: &future,
	})
	require.NoError(t, err)

	dispatched, err := notifications.DispatchDue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, dispatched)
	require.Len(t, sender.sent, 1)
	assert.True(t, repo.notifications[due.ID].EmailSent)
}

func TestDispatchDueDisabledRecipient(t *testing.T) {
	userID := uuid.New().String()

	repo := newFakeNotificationRepo()
	repo.settings[settingKey(userID, models.NotificationSystemAnnouncement)] = &models.NotificationSetting{
		UserID:       userID,
		Type:         models.NotificationSystemAnnouncement,
		InAppEnabled: true,
		EmailEnabled: false,
	}
	sender := &fakeSender{}
	notifications := NewNotificationInteractor(repo, newFakeUserRepo(userID), sender)

	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(time.Hour)
	n, err := notifications.Create(context.Background(), NotificationInput{
		UserID:      userID,
		Type:        models.NotificationSystemAnnouncement,
		Title:       "Opted out",
		ScheduledAt: &future,
	})
	require.NoError(t, err)
	repo.notifications[n.ID].ScheduledAt = &past

	dispatched, err := notifications.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dispatched)
	assert.Empty(t, sender.sent)
	assert.False(t, repo.notifications[n.ID].EmailSent)
	assert.Equal(t, emailSkippedBySettings, repo.notifications[n.ID].EmailError)

	// the skip is recorded, so the row must not be picked up again
	dispatched, err = notifications.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dispatched)
}
