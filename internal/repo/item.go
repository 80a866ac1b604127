package repo

import (
	"context"
	"time"

	"LostFound/internal/model"

	"gorm.io/gorm"
)

// ItemFilter — необязательные фильтры листинга объявлений.
type ItemFilter struct {
	Kind     string
	Category string
	Search   string // подстрока в title/description, без учёта регистра
}

// ItemRepository — контракт доступа к объявлениям для слоя сервиса.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	// GetByID возвращает объявление вместе с владельцем.
	GetByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, f ItemFilter) ([]model.Item, error)
	ListByOwner(ctx context.Context, userID int64) ([]model.Item, error)
	// ListActiveByKind выбирает активный пул противоположного вида для матчинга.
	// При withChallengeOnly выбираются только объявления с контрольным вопросом.
	ListActiveByKind(ctx context.Context, kind string, withChallengeOnly bool) ([]model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Preload("User").First(&it, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) List(ctx context.Context, f ItemFilter) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Model(&model.Item{}).Preload("User").Order("created_at DESC")
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}
	var items []model.Item
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListActiveByKind — пул кандидатов для матчинга. Порядок детерминирован
// (created_at, id), от него зависит стабильность ранжирования при равных счетах.
func (r *itemRepo) ListActiveByKind(ctx context.Context, kind string, withChallengeOnly bool) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Preload("User").
		Where("kind = ? AND status = ?", kind, model.StatusActive).
		Order("created_at ASC, id ASC")
	if withChallengeOnly {
		q = q.Where("challenge_question <> '' AND answer_hash <> ''")
	}
	var items []model.Item
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	it.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *itemRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	tx := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete удаляет объявление. Записи Match нарочно не трогаем:
// это исторические события, осиротевшие ссылки допустимы.
func (r *itemRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.Item{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
