package repo

import (
	"context"

	"LostFound/internal/model"

	"gorm.io/gorm"
)

// MatchRepository — контракт доступа к записям Match.
// Записи append-only: после создания меняется только флаг notified.
type MatchRepository interface {
	Create(ctx context.Context, m *model.Match) error
	// ListForItem возвращает совпадения, где объявление участвует с любой
	// стороны, по убыванию счёта.
	ListForItem(ctx context.Context, itemID string) ([]model.Match, error)
	MarkNotified(ctx context.Context, id string) error
}

type matchRepo struct {
	db *gorm.DB
}

// NewMatchRepository создаёт реализацию репозитория для Match.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepo{db: db}
}

func (r *matchRepo) Create(ctx context.Context, m *model.Match) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *matchRepo) ListForItem(ctx context.Context, itemID string) ([]model.Match, error) {
	var list []model.Match
	err := r.db.WithContext(ctx).
		Where("lost_item_id = ? OR found_item_id = ?", itemID, itemID).
		Order("score DESC, created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepo) MarkNotified(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Model(&model.Match{}).
		Where("id = ?", id).
		Update("notified", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
