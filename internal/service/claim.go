package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"LostFound/internal/model"
	"LostFound/internal/repo"

	"go.uber.org/zap"
)

// Исходы claim-попытки.
const (
	ClaimSuccess   = "success"
	ClaimFailure   = "failure"
	ClaimExhausted = "exhausted"
)

// ClaimResult — ответ на попытку claim.
type ClaimResult struct {
	Outcome           string `json:"outcome"` // success | failure | exhausted
	AttemptsRemaining int    `json:"attempts_remaining"`

	// Заполняются только при успехе: контакты обеих сторон.
	FinderContact   *model.Contact `json:"finder_contact,omitempty"`
	ClaimantContact *model.Contact `json:"claimant_contact,omitempty"`
	Note            string         `json:"note,omitempty"`
}

// AttemptStatus — текущее состояние лимита попыток пары (item, claimant).
type AttemptStatus struct {
	AttemptsUsed      int  `json:"attempts_used"`
	AttemptsRemaining int  `json:"attempts_remaining"`
	CanAttempt        bool `json:"can_attempt"`
}

// ClaimService — проверка ответа на контрольный вопрос и обмен контактами.
//
// Лимит попыток на пару (item, claimant) — жёсткий инвариант: проверка и
// запись попытки атомарны на уровне хранилища, инфраструктурная ошибка в
// этой секции прерывает claim целиком.
type ClaimService struct {
	items       repo.ItemRepository
	users       repo.UserRepository
	attempts    repo.AttemptRepository
	hasher      Hasher
	notifier    Notifier
	maxAttempts int
	logger      *zap.SugaredLogger
}

func NewClaimService(
	items repo.ItemRepository,
	users repo.UserRepository,
	attempts repo.AttemptRepository,
	hasher Hasher,
	notifier Notifier,
	maxAttempts int,
	logger *zap.SugaredLogger,
) *ClaimService {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &ClaimService{
		items:       items,
		users:       users,
		attempts:    attempts,
		hasher:      hasher,
		notifier:    notifier,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// NormalizeAnswer приводит ответ к канонической форме перед хешированием
// и сравнением.
func NormalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// AttemptClaim обрабатывает попытку claimant'а ответить на контрольный
// вопрос found-объявления.
func (s *ClaimService) AttemptClaim(ctx context.Context, itemID string, claimantID int64, answer string) (*ClaimResult, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load item: %w", err)
	}
	if item.Kind != model.KindFound {
		return nil, fmt.Errorf("%w: only found items can be claimed", ErrValidation)
	}
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: security answer is required", ErrValidation)
	}

	claimant, err := s.users.GetUserByID(ctx, claimantID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load claimant: %w", err)
	}

	// Исчерпанный лимит отсекается до сравнения хеша.
	used, err := s.attempts.CountForClaimant(ctx, itemID, claimantID)
	if err != nil {
		return nil, fmt.Errorf("count attempts: %w", err)
	}
	if used >= s.maxAttempts {
		return &ClaimResult{Outcome: ClaimExhausted, AttemptsRemaining: 0}, nil
	}

	// Объявление без контрольного вопроса — автоуспех (вопрос опционален).
	success := true
	if item.AnswerHash != "" {
		success = s.hasher.Compare(item.AnswerHash, NormalizeAnswer(answer))
	}

	// Попытка записывается безусловно, до формирования ответа. Проверка
	// лимита и вставка атомарны; проигрыш гонки на последнем слоте — exhausted.
	used, err = s.attempts.AppendIfUnderCap(ctx, itemID, claimantID, success, s.maxAttempts)
	if err != nil {
		if errors.Is(err, repo.ErrAttemptsExhausted) {
			return &ClaimResult{Outcome: ClaimExhausted, AttemptsRemaining: 0}, nil
		}
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	remaining := s.maxAttempts - used

	if !success {
		out := ClaimFailure
		if remaining == 0 {
			out = ClaimExhausted
		}
		return &ClaimResult{Outcome: out, AttemptsRemaining: remaining}, nil
	}

	// Контакты фиксируем на момент claim'а, до смены статуса.
	finder := model.ContactOf(item.User)
	claimer := model.ContactOf(claimant)

	if item.Status != model.StatusClaimed {
		if err := s.items.UpdateStatus(ctx, item.ID, model.StatusClaimed); err != nil {
			// статус best-effort: обмен контактами важнее
			s.logger.Errorw("set item claimed failed", "item_id", item.ID, "error", err)
		}
	}

	s.notifyExchange(ctx, item, claimant, finder, claimer)

	return &ClaimResult{
		Outcome:           ClaimSuccess,
		AttemptsRemaining: remaining,
		FinderContact:     &finder,
		ClaimantContact:   &claimer,
		Note:              "Both you and the finder have been notified with each other's contact details.",
	}, nil
}

// notifyExchange шлёт обеим сторонам контакты друг друга. Fire-and-forget.
func (s *ClaimService) notifyExchange(ctx context.Context, item *model.Item, claimant *model.User, finder, claimer model.Contact) {
	toFinder := model.Notification{
		UserID: item.UserID,
		Type:   model.NotificationClaim,
		Title:  "Item Owner Found!",
		Message: fmt.Sprintf(
			"The owner of the lost item answered your security question correctly for %q. Contact them: %s, Email: %s, Phone: %s",
			item.Title, claimer.Name, claimer.Email, orNotProvided(claimer.Phone),
		),
		RelatedItemID: item.ID,
	}
	if err := s.notifier.Notify(ctx, toFinder); err != nil {
		s.logger.Errorw("claim notification to finder failed", "item_id", item.ID, "error", err)
	}

	toClaimant := model.Notification{
		UserID: claimant.ID,
		Type:   model.NotificationClaim,
		Title:  "Correct Answer! Contact Finder",
		Message: fmt.Sprintf(
			"You correctly answered the finder's security question for %q. Finder details: %s, Email: %s, Phone: %s",
			item.Title, finder.Name, finder.Email, orNotProvided(finder.Phone),
		),
		RelatedItemID: item.ID,
	}
	if err := s.notifier.Notify(ctx, toClaimant); err != nil {
		s.logger.Errorw("claim notification to claimant failed", "item_id", item.ID, "error", err)
	}
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

// GetAttemptStatus — сколько попыток использовано и осталось у claimant'а.
func (s *ClaimService) GetAttemptStatus(ctx context.Context, itemID string, claimantID int64) (*AttemptStatus, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load item: %w", err)
	}

	used, err := s.attempts.CountForClaimant(ctx, itemID, claimantID)
	if err != nil {
		return nil, fmt.Errorf("count attempts: %w", err)
	}

	remaining := s.maxAttempts - used
	if remaining < 0 {
		remaining = 0
	}
	return &AttemptStatus{
		AttemptsUsed:      used,
		AttemptsRemaining: remaining,
		CanAttempt:        remaining > 0,
	}, nil
}
