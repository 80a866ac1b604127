package service

import (
	"context"

	"LostFound/internal/model"
	"LostFound/internal/repo"

	"go.uber.org/zap"
)

// Notifier — приёмник уведомлений для матчинга и claim-проверки.
// Доставка fire-and-forget: вызывающий код логирует ошибку и продолжает.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// NotificationService реализует Notifier поверх БД и отдаёт ленту
// уведомлений пользователю.
type NotificationService struct {
	repo   repo.NotificationRepository
	logger *zap.SugaredLogger
}

func NewNotificationService(r repo.NotificationRepository, logger *zap.SugaredLogger) *NotificationService {
	return &NotificationService{repo: r, logger: logger}
}

func (s *NotificationService) Notify(ctx context.Context, n model.Notification) error {
	return s.repo.Create(ctx, &n)
}

// Feed — уведомления пользователя и количество непрочитанных.
type Feed struct {
	Notifications []model.Notification
	UnreadCount   int
}

func (s *NotificationService) List(ctx context.Context, userID int64) (Feed, error) {
	list, err := s.repo.ListForUser(ctx, userID, 50)
	if err != nil {
		return Feed{}, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return Feed{}, err
	}
	return Feed{Notifications: list, UnreadCount: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id int64) error {
	err := s.repo.MarkRead(ctx, userID, id)
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}
