package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"LostFound/internal/model"
	"LostFound/internal/repo"
	"LostFound/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ItemHandler — CRUD объявлений и их совпадения.
type ItemHandler struct {
	Service *service.ItemService
	Logger  *zap.SugaredLogger
}

func NewItemHandler(s *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{Service: s, Logger: logger}
}

type createItemRequest struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Color       string `json:"color,omitempty"`
	Location    string `json:"location"`
	OccurredAt  string `json:"occurred_at"` // RFC 3339

	ChallengeQuestion string `json:"challenge_question,omitempty"`
	ChallengeAnswer   string `json:"challenge_answer,omitempty"`
}

type updateItemRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Color       *string `json:"color,omitempty"`
	Location    *string `json:"location,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// itemDTO — объявление в ответе API. Хеш ответа наружу не отдаётся никогда.
type itemDTO struct {
	ID                string    `json:"id"`
	UserID            int64     `json:"user_id"`
	Kind              string    `json:"kind"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Color             string    `json:"color,omitempty"`
	Location          string    `json:"location"`
	OccurredAt        time.Time `json:"occurred_at"`
	Status            string    `json:"status"`
	ChallengeQuestion string    `json:"challenge_question,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toItemDTO(it *model.Item) itemDTO {
	return itemDTO{
		ID:                it.ID,
		UserID:            it.UserID,
		Kind:              it.Kind,
		Title:             it.Title,
		Description:       it.Description,
		Category:          it.Category,
		Color:             it.Color,
		Location:          it.Location,
		OccurredAt:        it.OccurredAt,
		Status:            it.Status,
		ChallengeQuestion: it.ChallengeQuestion,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

func toItemDTOs(items []model.Item) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for i := range items {
		out = append(out, toItemDTO(&items[i]))
	}
	return out
}

type candidateDTO struct {
	Item  itemDTO        `json:"item"`
	Score matchScoreBody `json:"score"`
}

type matchScoreBody struct {
	Total          float64 `json:"total"`
	CategoryMatch  bool    `json:"category_match"`
	ColorMatch     bool    `json:"color_match"`
	LocationMatch  bool    `json:"location_match"`
	DateProximity  float64 `json:"date_proximity"`
	TextSimilarity float64 `json:"text_similarity"`
}

func toCandidateDTOs(cands []service.Candidate) []candidateDTO {
	out := make([]candidateDTO, 0, len(cands))
	for i := range cands {
		c := cands[i]
		out = append(out, candidateDTO{
			Item: toItemDTO(&c.Item),
			Score: matchScoreBody{
				Total:          c.Score.Total,
				CategoryMatch:  c.Score.CategoryMatch,
				ColorMatch:     c.Score.ColorMatch,
				LocationMatch:  c.Score.LocationMatch,
				DateProximity:  c.Score.DateProximity,
				TextSimilarity: c.Score.TextSimilarity,
			},
		})
	}
	return out
}

// Create регистрирует объявление и возвращает его вместе с кандидатами
// матчинга, найденными синхронно.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("CreateItem: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	var occurred time.Time
	if req.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "occurred_at must be RFC 3339")
			return
		}
		occurred = t
	}

	in := service.CreateItemInput{
		Kind:              req.Kind,
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Color:             req.Color,
		Location:          req.Location,
		OccurredAt:        occurred,
		ChallengeQuestion: req.ChallengeQuestion,
		ChallengeAnswer:   req.ChallengeAnswer,
	}

	item, cands, err := h.Service.Create(r.Context(), uid, in)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("CreateItem: service error", "user_id", uid, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"item":    toItemDTO(item),
		"matches": toCandidateDTOs(cands),
	})
}

// List — публичная лента активных объявлений с фильтрами.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	f := repo.ItemFilter{
		Kind:     r.URL.Query().Get("kind"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	items, err := h.Service.List(r.Context(), f)
	if err != nil {
		h.Logger.Errorw("ListItems: service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

// My — объявления текущего пользователя, включая неактивные.
func (h *ItemHandler) My(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.Service.ListMy(r.Context(), uid)
	if err != nil {
		h.Logger.Errorw("MyItems: service error", "user_id", uid, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toItemDTOs(items))
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := h.Service.Get(r.Context(), id)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("GetItem: service error", "item_id", id, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(item))
}

// Update правит объявление владельца.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("UpdateItem: invalid request body", "item_id", id, "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	in := service.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
		Location:    req.Location,
		Status:      req.Status,
	}
	item, err := h.Service.Update(r.Context(), uid, id, in)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("UpdateItem: service error", "item_id", id, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toItemDTO(item))
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Service.Delete(r.Context(), uid, id); err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("DeleteItem: service error", "item_id", id, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type matchDTO struct {
	ID             string    `json:"id"`
	LostItemID     string    `json:"lost_item_id"`
	FoundItemID    string    `json:"found_item_id"`
	Score          float64   `json:"score"`
	CategoryMatch  bool      `json:"category_match"`
	ColorMatch     bool      `json:"color_match"`
	LocationMatch  bool      `json:"location_match"`
	DateProximity  float64   `json:"date_proximity"`
	TextSimilarity float64   `json:"text_similarity"`
	Notified       bool      `json:"notified"`
	CreatedAt      time.Time `json:"created_at"`
}

// Matches — зафиксированные совпадения объявления.
func (h *ItemHandler) Matches(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	id := chi.URLParam(r, "id")
	matches, err := h.Service.MatchesForItem(r.Context(), id)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			h.Logger.Errorw("ItemMatches: service error", "item_id", id, "error", err)
			writeError(w, status, "internal error")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchDTO{
			ID:             m.ID,
			LostItemID:     m.LostItemID,
			FoundItemID:    m.FoundItemID,
			Score:          m.Score,
			CategoryMatch:  m.CategoryMatch,
			ColorMatch:     m.ColorMatch,
			LocationMatch:  m.LocationMatch,
			DateProximity:  m.DateProximity,
			TextSimilarity: m.TextSimilarity,
			Notified:       m.Notified,
			CreatedAt:      m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
