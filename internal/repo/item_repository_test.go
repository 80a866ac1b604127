package repo

import (
	"context"
	"testing"
	"time"

	"LostFound/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// хелпер для создания базового item
func mkItem(userID int64, kind, category string, occurred time.Time) *model.Item {
	return &model.Item{
		ID:          uuid.NewString(),
		UserID:      userID,
		Kind:        kind,
		Title:       "thing",
		Description: "a thing",
		Category:    category,
		Location:    "Library",
		OccurredAt:  occurred.UTC(),
		Status:      model.StatusActive,
	}
}

func mkUser(t *testing.T, db *gorm.DB, login string) *model.User {
	t.Helper()
	u := &model.User{Login: login, Password: "x", Name: login, Email: login + "@example.com"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestItemRepository_Create_GetByID(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	u := mkUser(t, db, "ann")
	it := mkItem(u.ID, model.KindLost, "Electronics", time.Now())
	assert.NoError(t, r.Create(ctx, it))

	got, err := r.GetByID(ctx, it.ID)
	assert.NoError(t, err)
	assert.Equal(t, it.ID, got.ID)
	assert.Equal(t, u.ID, got.UserID)
	// владелец должен подгружаться
	if assert.NotNil(t, got.User) {
		assert.Equal(t, "ann", got.User.Login)
	}

	_, err = r.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemRepository_ListActiveByKind(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()
	u := mkUser(t, db, "bob")

	lost := mkItem(u.ID, model.KindLost, "Electronics", time.Now())
	claimed := mkItem(u.ID, model.KindLost, "Books", time.Now())
	claimed.Status = model.StatusClaimed
	foundPlain := mkItem(u.ID, model.KindFound, "Electronics", time.Now())
	foundWithQ := mkItem(u.ID, model.KindFound, "Keys", time.Now())
	foundWithQ.ChallengeQuestion = "What is engraved on it?"
	foundWithQ.AnswerHash = "$2a$10$hash"

	for _, it := range []*model.Item{lost, claimed, foundPlain, foundWithQ} {
		assert.NoError(t, r.Create(ctx, it))
	}

	// активные lost: без claimed
	gotLost, err := r.ListActiveByKind(ctx, model.KindLost, false)
	assert.NoError(t, err)
	if assert.Len(t, gotLost, 1) {
		assert.Equal(t, lost.ID, gotLost[0].ID)
	}

	// активные found с контрольным вопросом
	gotFound, err := r.ListActiveByKind(ctx, model.KindFound, true)
	assert.NoError(t, err)
	if assert.Len(t, gotFound, 1) {
		assert.Equal(t, foundWithQ.ID, gotFound[0].ID)
	}
}

func TestItemRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()
	u := mkUser(t, db, "kate")

	phone := mkItem(u.ID, model.KindLost, "Electronics", time.Now())
	phone.Title = "Black iPhone"
	keys := mkItem(u.ID, model.KindFound, "Keys", time.Now())
	keys.Title = "Key bundle"
	assert.NoError(t, r.Create(ctx, phone))
	assert.NoError(t, r.Create(ctx, keys))

	byKind, err := r.List(ctx, ItemFilter{Kind: model.KindFound})
	assert.NoError(t, err)
	assert.Len(t, byKind, 1)

	byCategory, err := r.List(ctx, ItemFilter{Category: "Electronics"})
	assert.NoError(t, err)
	assert.Len(t, byCategory, 1)

	bySearch, err := r.List(ctx, ItemFilter{Search: "iphone"})
	assert.NoError(t, err)
	if assert.Len(t, bySearch, 1) {
		assert.Equal(t, phone.ID, bySearch[0].ID)
	}
}

func TestItemRepository_UpdateStatus_Delete(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()
	u := mkUser(t, db, "leo")

	it := mkItem(u.ID, model.KindFound, "Other", time.Now())
	assert.NoError(t, r.Create(ctx, it))

	assert.NoError(t, r.UpdateStatus(ctx, it.ID, model.StatusClaimed))
	got, err := r.GetByID(ctx, it.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusClaimed, got.Status)

	assert.ErrorIs(t, r.UpdateStatus(ctx, uuid.NewString(), model.StatusClosed), gorm.ErrRecordNotFound)

	assert.NoError(t, r.Delete(ctx, it.ID))
	_, err = r.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, r.Delete(ctx, it.ID), gorm.ErrRecordNotFound)
}

func TestItemRepository_DeleteKeepsMatches(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	matches := NewMatchRepository(db)
	ctx := context.Background()
	u := mkUser(t, db, "mia")

	lost := mkItem(u.ID, model.KindLost, "Electronics", time.Now())
	found := mkItem(u.ID, model.KindFound, "Electronics", time.Now())
	assert.NoError(t, items.Create(ctx, lost))
	assert.NoError(t, items.Create(ctx, found))

	m := &model.Match{ID: uuid.NewString(), LostItemID: lost.ID, FoundItemID: found.ID, Score: 0.9}
	assert.NoError(t, matches.Create(ctx, m))

	// удаление объявления не трогает исторические совпадения
	assert.NoError(t, items.Delete(ctx, lost.ID))
	left, err := matches.ListForItem(ctx, lost.ID)
	assert.NoError(t, err)
	assert.Len(t, left, 1)
}
