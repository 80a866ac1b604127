package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"LostFound/internal/config"
	"LostFound/internal/middleware"
	"LostFound/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	itemService *service.ItemService,
	claimService *service.ClaimService,
	notificationService *service.NotificationService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	itemHandler := NewItemHandler(itemService, logger)
	claimHandler := NewClaimHandler(claimService, logger)
	notificationHandler := NewNotificationHandler(notificationService, logger)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Get("/api/user/profile", userHandler.Profile)

	// Item routes
	r.Post("/api/items", itemHandler.Create)
	r.Get("/api/items", itemHandler.List)
	r.Get("/api/items/my", itemHandler.My)
	r.Get("/api/items/{id}", itemHandler.Get)
	r.Put("/api/items/{id}", itemHandler.Update)
	r.Delete("/api/items/{id}", itemHandler.Delete)
	r.Get("/api/items/{id}/matches", itemHandler.Matches)

	// Claim routes
	r.Post("/api/items/{id}/claim", claimHandler.Claim)
	r.Get("/api/items/{id}/claim-attempts", claimHandler.Attempts)

	// Notification routes
	r.Get("/api/notifications", notificationHandler.Feed)
	r.Post("/api/notifications/{id}/read", notificationHandler.MarkRead)
	r.Post("/api/notifications/read-all", notificationHandler.MarkAllRead)

	return &Handler{Router: r}
}

// writeJSON сериализует payload в тело ответа.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError — единый формат ошибки API.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusForError маппит сервисные ошибки на HTTP-статусы.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrLoginTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// requireUser достаёт user_id из контекста; без него отвечает 401.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return uid, true
}
