package repo

import (
	"context"
	"errors"
	"strings"

	"LostFound/internal/model"

	"gorm.io/gorm"
)

// ErrAttemptsExhausted возвращается условной вставкой, когда лимит попыток
// по паре (item, claimant) уже исчерпан.
var ErrAttemptsExhausted = errors.New("claim attempts exhausted")

// AttemptRepository — журнал попыток ответа на контрольный вопрос.
type AttemptRepository interface {
	// CountForClaimant возвращает число записанных попыток пары (item, claimant).
	CountForClaimant(ctx context.Context, itemID string, userID int64) (int, error)
	// AppendIfUnderCap атомарно проверяет лимит и дописывает попытку.
	// Две конкурентные попытки не могут обе пройти при "2 из 3" — порядковый
	// номер попытки защищён уникальным индексом (item, claimant, seq).
	// При исчерпании лимита возвращает ErrAttemptsExhausted, ничего не записывая.
	AppendIfUnderCap(ctx context.Context, itemID string, userID int64, success bool, cap int) (used int, err error)
	ListForClaimant(ctx context.Context, itemID string, userID int64) ([]model.ClaimAttempt, error)
}

type attemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepository создаёт реализацию журнала попыток.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepo{db: db}
}

func (r *attemptRepo) CountForClaimant(ctx context.Context, itemID string, userID int64) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ClaimAttempt{}).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// AppendIfUnderCap: читаем текущий счётчик, пытаемся вставить попытку со
// следующим порядковым номером. Если параллельный запрос успел занять номер,
// уникальный индекс отбивает вставку — перечитываем и повторяем. Больше cap
// записей у пары появиться не может.
func (r *attemptRepo) AppendIfUnderCap(ctx context.Context, itemID string, userID int64, success bool, cap int) (int, error) {
	for i := 0; i <= cap; i++ {
		n, err := r.CountForClaimant(ctx, itemID, userID)
		if err != nil {
			return 0, err
		}
		if n >= cap {
			return 0, ErrAttemptsExhausted
		}

		a := model.ClaimAttempt{ItemID: itemID, UserID: userID, Seq: n + 1, Success: success}
		err = r.db.WithContext(ctx).Create(&a).Error
		if err == nil {
			return n + 1, nil
		}
		if isDuplicateKey(err) {
			continue // номер занят конкурентом — перечитать счётчик
		}
		return 0, err
	}
	return 0, ErrAttemptsExhausted
}

// isDuplicateKey распознаёт нарушение уникального индекса. gorm транслирует
// его в ErrDuplicatedKey не для всех драйверов, поэтому дополнительно
// смотрим на текст ошибки sqlite (modernc) и postgres.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "constraint failed") && strings.Contains(s, "2067") ||
		strings.Contains(s, "SQLSTATE 23505")
}

func (r *attemptRepo) ListForClaimant(ctx context.Context, itemID string, userID int64) ([]model.ClaimAttempt, error) {
	var list []model.ClaimAttempt
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Order("seq ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
