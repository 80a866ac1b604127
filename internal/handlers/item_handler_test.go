package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"LostFound/internal/model"
	"LostFound/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestItems_Create(t *testing.T) {
	router, m := newTestRouter(t)

	body := `{
		"kind": "lost",
		"title": "Black iPhone",
		"description": "cracked screen",
		"category": "Electronics",
		"color": "black",
		"location": "Library",
		"occurred_at": "2025-04-01T14:00:00Z"
	}`

	t.Run("anonymous rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("ok", func(t *testing.T) {
		m.items.ExpectedCalls = nil
		m.items.On("Create", mock.Anything, mock.MatchedBy(func(it *model.Item) bool {
			return it.UserID == 7 && it.Kind == model.KindLost && it.ID != ""
		})).Return(nil).Once()
		m.items.On("ListActiveByKind", mock.Anything, model.KindFound, true).
			Return([]model.Item{}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		addAuthCookie(t, req, 7, testSecret)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp struct {
			Item    map[string]any   `json:"item"`
			Matches []map[string]any `json:"matches"`
		}
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp)
		assert.Equal(t, "lost", resp.Item["kind"])
		assert.Empty(t, resp.Matches)
		m.items.AssertExpectations(t)
	})

	t.Run("bad occurred_at", func(t *testing.T) {
		bad := strings.Replace(body, "2025-04-01T14:00:00Z", "yesterday", 1)
		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(bad))
		req.Header.Set("Content-Type", "application/json")
		addAuthCookie(t, req, 7, testSecret)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("found without challenge rejected", func(t *testing.T) {
		found := strings.Replace(body, `"kind": "lost"`, `"kind": "found"`, 1)
		req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(found))
		req.Header.Set("Content-Type", "application/json")
		addAuthCookie(t, req, 7, testSecret)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestItems_ListAndGet(t *testing.T) {
	router, m := newTestRouter(t)

	t.Run("list passes filters", func(t *testing.T) {
		m.items.ExpectedCalls = nil
		m.items.On("List", mock.Anything, repo.ItemFilter{Kind: "lost", Category: "Keys", Search: "silver"}).
			Return([]model.Item{{ID: "i1", Kind: model.KindLost, Title: "Keys"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/items?kind=lost&category=Keys&search=silver", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []map[string]any
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp)
		assert.Len(t, resp, 1)
		m.items.AssertExpectations(t)
	})

	t.Run("get hides answer hash", func(t *testing.T) {
		m.items.ExpectedCalls = nil
		it := &model.Item{
			ID: "i2", UserID: 5, Kind: model.KindFound, Title: "Wallet",
			ChallengeQuestion: "What is inside?", AnswerHash: "$2a$10$secret",
			OccurredAt: time.Now().UTC(), Status: model.StatusActive,
		}
		m.items.On("GetByID", mock.Anything, "i2").Return(it, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/items/i2", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "What is inside?")
		assert.NotContains(t, rr.Body.String(), "$2a$10$secret")
	})

	t.Run("get missing", func(t *testing.T) {
		m.items.ExpectedCalls = nil
		m.items.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/items/nope", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestItems_UpdateDelete(t *testing.T) {
	router, m := newTestRouter(t)

	owned := &model.Item{ID: "i3", UserID: 7, Kind: model.KindLost, Title: "x", Status: model.StatusActive}

	t.Run("update by stranger forbidden", func(t *testing.T) {
		m.items.ExpectedCalls = nil
		m.items.On("GetByID", mock.Anything, "i3").Return(owned, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/items/i3", strings.NewReader(`{"title":"hijack"}`))
		req.Header.Set("Content-Type", "application/json")
		addAuthCookie(t, req, 8, testSecret)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("delete by owner", func(t *testing.T) {
		m.items.ExpectedCalls = nil
		m.items.On("GetByID", mock.Anything, "i3").Return(owned, nil).Once()
		m.items.On("Delete", mock.Anything, "i3").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/items/i3", nil)
		addAuthCookie(t, req, 7, testSecret)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		m.items.AssertExpectations(t)
	})
}

func TestItems_Matches(t *testing.T) {
	router, m := newTestRouter(t)

	t.Run("requires auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/items/i4/matches", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("ok", func(t *testing.T) {
		m.items.ExpectedCalls = nil
		m.matches.ExpectedCalls = nil
		m.items.On("GetByID", mock.Anything, "i4").
			Return(&model.Item{ID: "i4", UserID: 7}, nil).Once()
		m.matches.On("ListForItem", mock.Anything, "i4").
			Return([]model.Match{{ID: "m1", LostItemID: "i4", FoundItemID: "f1", Score: 0.9}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/items/i4/matches", nil)
		addAuthCookie(t, req, 7, testSecret)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []map[string]any
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&resp)
		if assert.Len(t, resp, 1) {
			assert.Equal(t, "f1", resp[0]["found_item_id"])
		}
	})
}
