package main

import (
	"net/http"

	"LostFound/internal/config"
	"LostFound/internal/handlers"
	"LostFound/internal/middleware"
	"LostFound/internal/repo"
	"LostFound/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)
	matchRepo := repo.NewMatchRepository(gormDB)
	attemptRepo := repo.NewAttemptRepository(gormDB)
	notificationRepo := repo.NewNotificationRepository(gormDB)

	notificationService := service.NewNotificationService(notificationRepo, sugar)
	matchService := service.NewMatchService(itemRepo, matchRepo, notificationService, service.MatchPolicy{
		Threshold:  cfg.MatchThreshold,
		TopN:       cfg.MatchTopN,
		WindowDays: cfg.MatchWindowDays,
	}, sugar)
	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(itemRepo, matchService, service.BcryptHasher{}, sugar)
	claimService := service.NewClaimService(itemRepo, userRepo, attemptRepo, service.BcryptHasher{}, notificationService, cfg.MaxClaimAttempts, sugar)

	h := handlers.NewHandler(userService, itemService, claimService, notificationService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"MatchThreshold", cfg.MatchThreshold,
		"MatchTopN", cfg.MatchTopN,
		"MaxClaimAttempts", cfg.MaxClaimAttempts,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
