package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"LostFound/internal/config"
	"LostFound/internal/handlers"
	"LostFound/internal/middleware"
	"LostFound/internal/model"
	"LostFound/internal/repo"
	"LostFound/internal/service"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Моки репозиториев для хендлерных тестов

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, it *model.Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) List(ctx context.Context, f repo.ItemFilter) ([]model.Item, error) {
	args := m.Called(ctx, f)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Item, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) ListActiveByKind(ctx context.Context, kind string, withChallengeOnly bool) ([]model.Item, error) {
	args := m.Called(ctx, kind, withChallengeOnly)
	if v, ok := args.Get(0).([]model.Item); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemRepo) Update(ctx context.Context, it *model.Item) error {
	return m.Called(ctx, it).Error(0)
}
func (m *mockItemRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockItemRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

type mockMatchRepo struct{ mock.Mock }

func (m *mockMatchRepo) Create(ctx context.Context, mt *model.Match) error {
	return m.Called(ctx, mt).Error(0)
}
func (m *mockMatchRepo) ListForItem(ctx context.Context, itemID string) ([]model.Match, error) {
	args := m.Called(ctx, itemID)
	if v, ok := args.Get(0).([]model.Match); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMatchRepo) MarkNotified(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.MatchRepository = (*mockMatchRepo)(nil)

type mockAttemptRepo struct{ mock.Mock }

func (m *mockAttemptRepo) CountForClaimant(ctx context.Context, itemID string, userID int64) (int, error) {
	args := m.Called(ctx, itemID, userID)
	return args.Int(0), args.Error(1)
}
func (m *mockAttemptRepo) AppendIfUnderCap(ctx context.Context, itemID string, userID int64, success bool, cap int) (int, error) {
	args := m.Called(ctx, itemID, userID, success, cap)
	return args.Int(0), args.Error(1)
}
func (m *mockAttemptRepo) ListForClaimant(ctx context.Context, itemID string, userID int64) ([]model.ClaimAttempt, error) {
	args := m.Called(ctx, itemID, userID)
	if v, ok := args.Get(0).([]model.ClaimAttempt); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.AttemptRepository = (*mockAttemptRepo)(nil)

type mockNotificationRepo struct{ mock.Mock }

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *mockNotificationRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if v, ok := args.Get(0).([]model.Notification); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *mockNotificationRepo) MarkRead(ctx context.Context, userID int64, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

var _ repo.NotificationRepository = (*mockNotificationRepo)(nil)

// testMocks — полный набор моков, из которых собран тестовый роутер.
type testMocks struct {
	users         *mockUserRepo
	items         *mockItemRepo
	matches       *mockMatchRepo
	attempts      *mockAttemptRepo
	notifications *mockNotificationRepo
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (http.Handler, *testMocks) {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, MaxClaimAttempts: 3}
	logger := zap.NewNop().Sugar()

	m := &testMocks{
		users:         new(mockUserRepo),
		items:         new(mockItemRepo),
		matches:       new(mockMatchRepo),
		attempts:      new(mockAttemptRepo),
		notifications: new(mockNotificationRepo),
	}

	notifSvc := service.NewNotificationService(m.notifications, logger)
	matchSvc := service.NewMatchService(m.items, m.matches, notifSvc, service.DefaultMatchPolicy(), logger)
	userSvc := service.NewUserService(m.users)
	itemSvc := service.NewItemService(m.items, matchSvc, service.BcryptHasher{}, logger)
	claimSvc := service.NewClaimService(m.items, m.users, m.attempts, service.BcryptHasher{}, notifSvc, cfg.MaxClaimAttempts, logger)

	h := handlers.NewHandler(userSvc, itemSvc, claimSvc, notifSvc, logger, cfg)
	return h.Router, m
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}
