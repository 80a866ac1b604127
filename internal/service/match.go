package service

import (
	"context"
	"fmt"
	"sort"

	"LostFound/internal/matching"
	"LostFound/internal/model"
	"LostFound/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchPolicy — пороги и лимиты матчинга.
type MatchPolicy struct {
	Threshold  float64 // минимальный счёт кандидата
	TopN       int     // сколько совпадений фиксируем для found-объявления
	WindowDays float64 // горизонт временной близости
}

// DefaultMatchPolicy — продуктовые значения по умолчанию.
func DefaultMatchPolicy() MatchPolicy {
	return MatchPolicy{Threshold: 0.60, TopN: 3, WindowDays: matching.DefaultWindowDays}
}

// Candidate — кандидат-совпадение: объявление противоположного вида и счёт.
type Candidate struct {
	Item  model.Item     `json:"item"`
	Score matching.Score `json:"score"`
}

// MatchService — подбор совпадений для нового объявления.
//
// Направления нарочно асимметричны (продуктовое решение из исходной системы):
// found-объявление порождает записи Match и уведомления владельцам lost-пула,
// lost-объявление получает ранжированный список синхронно — его автор сам
// пойдёт отвечать на контрольный вопрос.
type MatchService struct {
	items    repo.ItemRepository
	matches  repo.MatchRepository
	notifier Notifier
	policy   MatchPolicy
	logger   *zap.SugaredLogger
}

func NewMatchService(
	items repo.ItemRepository,
	matches repo.MatchRepository,
	notifier Notifier,
	policy MatchPolicy,
	logger *zap.SugaredLogger,
) *MatchService {
	if policy.Threshold <= 0 {
		policy = DefaultMatchPolicy()
	}
	return &MatchService{items: items, matches: matches, notifier: notifier, policy: policy, logger: logger}
}

// rank оценивает пул кандидатов и возвращает прошедших порог по убыванию
// счёта. Сортировка стабильна: при равных счетах сохраняется порядок выборки.
func (s *MatchService) rank(item *model.Item, pool []model.Item) []Candidate {
	kept := make([]Candidate, 0, len(pool))
	for i := range pool {
		sc := matching.ScorePair(item, &pool[i], s.policy.WindowDays)
		if sc.Total >= s.policy.Threshold {
			kept = append(kept, Candidate{Item: pool[i], Score: sc})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score.Total > kept[j].Score.Total })
	return kept
}

// FindForFoundItem — матчинг нового found-объявления против активного
// lost-пула. Фиксирует top-N совпадений как записи Match и уведомляет
// владельцев lost-объявлений, что нужно ответить на контрольный вопрос.
// Контакты на этом этапе не раскрываются.
func (s *MatchService) FindForFoundItem(ctx context.Context, found *model.Item) ([]Candidate, error) {
	pool, err := s.items.ListActiveByKind(ctx, model.KindLost, false)
	if err != nil {
		return nil, fmt.Errorf("list lost pool: %w", err)
	}

	kept := s.rank(found, pool)
	if len(kept) > s.policy.TopN {
		kept = kept[:s.policy.TopN]
	}

	for _, c := range kept {
		m := &model.Match{
			ID:             uuid.NewString(),
			LostItemID:     c.Item.ID,
			FoundItemID:    found.ID,
			Score:          c.Score.Total,
			CategoryMatch:  c.Score.CategoryMatch,
			ColorMatch:     c.Score.ColorMatch,
			LocationMatch:  c.Score.LocationMatch,
			DateProximity:  c.Score.DateProximity,
			TextSimilarity: c.Score.TextSimilarity,
		}
		if err := s.matches.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("persist match: %w", err)
		}

		// уведомление fire-and-forget: неудача логируется и не ломает матчинг
		n := model.Notification{
			UserID: c.Item.UserID,
			Type:   model.NotificationMatch,
			Title:  "Potential Match Found!",
			Message: fmt.Sprintf(
				"A found item %q matches your lost item %q. Answer the finder's security question to get their contact.",
				found.Title, c.Item.Title,
			),
			RelatedItemID: found.ID,
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.logger.Errorw("match notification failed", "match_id", m.ID, "user_id", c.Item.UserID, "error", err)
			continue
		}
		if err := s.matches.MarkNotified(ctx, m.ID); err != nil {
			s.logger.Errorw("mark match notified failed", "match_id", m.ID, "error", err)
		}
	}

	return kept, nil
}

// FindForLostItem — матчинг нового lost-объявления против активных
// found-объявлений с контрольным вопросом. Ничего не сохраняет и не шлёт:
// список возвращается автору синхронно.
func (s *MatchService) FindForLostItem(ctx context.Context, lost *model.Item) ([]Candidate, error) {
	pool, err := s.items.ListActiveByKind(ctx, model.KindFound, true)
	if err != nil {
		return nil, fmt.Errorf("list found pool: %w", err)
	}
	return s.rank(lost, pool), nil
}

// ListForItem — сохранённые совпадения объявления, по убыванию счёта.
func (s *MatchService) ListForItem(ctx context.Context, itemID string) ([]model.Match, error) {
	return s.matches.ListForItem(ctx, itemID)
}
