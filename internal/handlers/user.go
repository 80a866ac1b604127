package handlers

import (
	"encoding/json"
	"net/http"

	"LostFound/internal/config"
	"LostFound/internal/middleware"
	"LostFound/internal/model"
	"LostFound/internal/service"

	"go.uber.org/zap"
)

// UserHandler — регистрация, вход и профиль.
type UserHandler struct {
	Service *service.UserService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

func NewUserHandler(s *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{Service: s, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func toUserDTO(u *model.User) userDTO {
	return userDTO{ID: u.ID, Login: u.Login, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// Register создаёт пользователя и сразу выписывает auth-cookie.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.Service.Register(r.Context(), req.Login, req.Password, req.Name, req.Email, req.Phone)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("Register: service error", "login", req.Login, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Register: set cookie failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// Login проверяет пароль и выписывает auth-cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.Service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("Login: service error", "login", req.Login, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: set cookie failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// Profile — данные текущего пользователя.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	user, err := h.Service.Profile(r.Context(), uid)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("Profile: service error", "user_id", uid, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}
