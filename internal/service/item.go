package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"LostFound/internal/model"
	"LostFound/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateItemInput — данные нового объявления.
type CreateItemInput struct {
	Kind        string
	Title       string
	Description string
	Category    string
	Color       string
	Location    string
	OccurredAt  time.Time

	// Обязательны для found-объявлений: вопрос задаёт нашедший.
	ChallengeQuestion string
	ChallengeAnswer   string
}

// UpdateItemInput — частичное обновление; nil-поля не трогаются.
type UpdateItemInput struct {
	Title       *string
	Description *string
	Category    *string
	Color       *string
	Location    *string
	Status      *string
}

// ItemService — жизненный цикл объявлений. Создание нового объявления
// синхронно запускает матчинг; его сбой не откатывает запись (best-effort).
type ItemService struct {
	items   repo.ItemRepository
	matches *MatchService
	hasher  Hasher
	logger  *zap.SugaredLogger
}

func NewItemService(items repo.ItemRepository, matches *MatchService, hasher Hasher, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{items: items, matches: matches, hasher: hasher, logger: logger}
}

func validateCreate(in *CreateItemInput) error {
	if in.Kind != model.KindLost && in.Kind != model.KindFound {
		return fmt.Errorf("%w: kind must be lost or found", ErrValidation)
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !model.ValidCategory(in.Category) {
		return fmt.Errorf("%w: invalid category", ErrValidation)
	}
	if strings.TrimSpace(in.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if in.OccurredAt.IsZero() {
		return fmt.Errorf("%w: occurred_at is required", ErrValidation)
	}
	if in.Kind == model.KindFound &&
		(strings.TrimSpace(in.ChallengeQuestion) == "" || strings.TrimSpace(in.ChallengeAnswer) == "") {
		return fmt.Errorf("%w: security question and answer required for found items", ErrValidation)
	}
	return nil
}

// Create создаёт объявление и запускает матчинг против противоположного пула.
// Ошибка матчинга логируется и не отменяет созданную запись.
func (s *ItemService) Create(ctx context.Context, userID int64, in CreateItemInput) (*model.Item, []Candidate, error) {
	if err := validateCreate(&in); err != nil {
		return nil, nil, err
	}

	it := &model.Item{
		ID:          uuid.NewString(),
		UserID:      userID,
		Kind:        in.Kind,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Color:       strings.TrimSpace(in.Color),
		Location:    strings.TrimSpace(in.Location),
		OccurredAt:  in.OccurredAt.UTC(),
		Status:      model.StatusActive,
	}

	if in.Kind == model.KindFound {
		hash, err := s.hasher.Hash(NormalizeAnswer(in.ChallengeAnswer))
		if err != nil {
			return nil, nil, fmt.Errorf("hash answer: %w", err)
		}
		it.ChallengeQuestion = strings.TrimSpace(in.ChallengeQuestion)
		it.AnswerHash = hash
	}

	if err := s.items.Create(ctx, it); err != nil {
		return nil, nil, fmt.Errorf("create item: %w", err)
	}

	var (
		cands    []Candidate
		matchErr error
	)
	if in.Kind == model.KindFound {
		cands, matchErr = s.matches.FindForFoundItem(ctx, it)
	} else {
		cands, matchErr = s.matches.FindForLostItem(ctx, it)
	}
	if matchErr != nil {
		s.logger.Errorw("matching failed, item kept", "item_id", it.ID, "kind", it.Kind, "error", matchErr)
		cands = nil
	}

	return it, cands, nil
}

// Get возвращает объявление с владельцем.
func (s *ItemService) Get(ctx context.Context, id string) (*model.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (s *ItemService) List(ctx context.Context, f repo.ItemFilter) ([]model.Item, error) {
	return s.items.List(ctx, f)
}

func (s *ItemService) ListMy(ctx context.Context, userID int64) ([]model.Item, error) {
	return s.items.ListByOwner(ctx, userID)
}

// Update правит объявление. Разрешено только владельцу.
func (s *ItemService) Update(ctx context.Context, userID int64, id string, in UpdateItemInput) (*model.Item, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.UserID != userID {
		return nil, ErrForbidden
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		it.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		it.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		if !model.ValidCategory(*in.Category) {
			return nil, fmt.Errorf("%w: invalid category", ErrValidation)
		}
		it.Category = *in.Category
	}
	if in.Color != nil {
		it.Color = strings.TrimSpace(*in.Color)
	}
	if in.Location != nil {
		it.Location = strings.TrimSpace(*in.Location)
	}
	if in.Status != nil {
		switch *in.Status {
		case model.StatusActive, model.StatusClaimed, model.StatusClosed:
			it.Status = *in.Status
		default:
			return nil, fmt.Errorf("%w: invalid status", ErrValidation)
		}
	}

	if err := s.items.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return it, nil
}

// Delete удаляет объявление. Разрешено только владельцу; записи Match
// остаются как исторические.
func (s *ItemService) Delete(ctx context.Context, userID int64, id string) error {
	it, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if it.UserID != userID {
		return ErrForbidden
	}
	return s.items.Delete(ctx, id)
}

// MatchesForItem — зафиксированные совпадения объявления, по убыванию счёта.
func (s *ItemService) MatchesForItem(ctx context.Context, id string) ([]model.Match, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.matches.ListForItem(ctx, id)
}
