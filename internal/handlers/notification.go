package handlers

import (
	"net/http"
	"strconv"
	"time"

	"LostFound/internal/model"
	"LostFound/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotificationHandler — лента уведомлений пользователя.
type NotificationHandler struct {
	Service *service.NotificationService
	Logger  *zap.SugaredLogger
}

func NewNotificationHandler(s *service.NotificationService, logger *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{Service: s, Logger: logger}
}

type notificationDTO struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	RelatedItemID string    `json:"related_item_id,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

func toNotificationDTOs(list []model.Notification) []notificationDTO {
	out := make([]notificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, notificationDTO{
			ID:            n.ID,
			Type:          n.Type,
			Title:         n.Title,
			Message:       n.Message,
			RelatedItemID: n.RelatedItemID,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt,
		})
	}
	return out
}

// Feed — последние уведомления и счётчик непрочитанных.
func (h *NotificationHandler) Feed(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	feed, err := h.Service.List(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("Notifications: service error", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": toNotificationDTOs(feed.Notifications),
		"unread_count":  feed.UnreadCount,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.Service.MarkRead(r.Context(), uid, id); err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("MarkRead: service error", "user_id", uid, "notification_id", id, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.MarkAllRead(r.Context(), uid); err != nil {
		h.Logger.Errorw("MarkAllRead: service error", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
