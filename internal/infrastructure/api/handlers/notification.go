package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/domain/models"
	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	http2 "github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/http"
	"github.com/cgdmohamed/NexusCore-sub001/internal/infrastructure/api/middlewares"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/dtos"
	"github.com/cgdmohamed/NexusCore-sub001/internal/usecases/interactor"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type NotificationHandler struct {
	notifications *interactor.NotificationInteractor
	logger        *zerolog.Logger
}

func NewNotificationHandler(notifications *interactor.NotificationInteractor) *NotificationHandler {
	logger := log.GetLogger()
	return &NotificationHandler{notifications: notifications, logger: &logger}
}

func sessionUserID(r *http.Request) string {
	session, _ := middlewares.SessionFromContext(r.Context())
	if session == nil {
		return ""
	}
	return session.UserID
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unreadOnly"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.notifications.GetUserNotifications(ctx, sessionUserID(r), page, limit, unreadOnly)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list notifications")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, http2.NotificationIDParam)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.notifications.MarkAsRead(ctx, notificationID, sessionUserID(r)); err != nil {
		h.logger.Error().Err(err).Msg("failed to mark notification read")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		Success bool `json:"success"`
	}{Success: true})
}

func (h *NotificationHandler) MarkMultipleRead(w http.ResponseWriter, r *http.Request) {
	var dto dtos.MarkMultipleReadDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := h.notifications.MarkMultipleAsRead(ctx, dto.IDs, sessionUserID(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to mark notifications read")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		Updated int64 `json:"updated"`
	}{Updated: updated})
}

func (h *NotificationHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.notifications.GetSettings(ctx, sessionUserID(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get notification settings")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(settings)
}

func (h *NotificationHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var dto dtos.NotificationSettingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.notifications.UpdateSetting(ctx, sessionUserID(r), &dto); err != nil {
		h.logger.Error().Err(err).Msg("failed to update notification setting")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		Success bool `json:"success"`
	}{Success: true})
}

// SendTest creates a test notification, by default for the caller.
func (h *NotificationHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return
	}
	if body.UserID == "" {
		body.UserID = sessionUserID(r)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	n, err := h.notifications.SendTest(ctx, body.UserID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to send test notification")
		errors.HandleHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(n)
}

// Broadcast sends a system announcement to all active users and returns the
// per-recipient outcome list.
func (h *NotificationHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var dto dtos.BroadcastDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		errors.HandleHTTPError(w, errors.NewValidationError(errors.ErrInvalidRequestBody))
		return
	}

	priority := models.NotificationPriority(dto.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	// fan-out to every user can outlive the default request timeout
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	results, err := h.notifications.BroadcastSystem(ctx, dto.Title, dto.Message, priority)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to broadcast system notification")
		errors.HandleHTTPError(w, err)
		return
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(struct {
		Recipients int                     `json:"recipients"`
		Failed     int                     `json:"failed"`
		Results    []interactor.BulkResult `json:"results"`
	}{Recipients: len(results), Failed: failed, Results: results})
}
