package handlers

import (
	"encoding/json"
	"net/http"

	"LostFound/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ClaimHandler — попытки ответа на контрольный вопрос.
type ClaimHandler struct {
	Service *service.ClaimService
	Logger  *zap.SugaredLogger
}

func NewClaimHandler(s *service.ClaimService, logger *zap.SugaredLogger) *ClaimHandler {
	return &ClaimHandler{Service: s, Logger: logger}
}

type claimRequest struct {
	Answer string `json:"answer"`
}

// Claim — попытка claimant'а ответить на вопрос found-объявления.
// Исчерпанный лимит это не ошибка HTTP: ответ 200 с outcome=exhausted.
func (h *ClaimHandler) Claim(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Claim: invalid request body", "item_id", id, "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	res, err := h.Service.AttemptClaim(r.Context(), id, uid, req.Answer)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("Claim: service error", "item_id", id, "user_id", uid, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Attempts — сколько попыток осталось у текущего пользователя.
func (h *ClaimHandler) Attempts(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	st, err := h.Service.GetAttemptStatus(r.Context(), id, uid)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("ClaimAttempts: service error", "item_id", id, "user_id", uid, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}
