package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"clinicBack/internal/config"
	"clinicBack/internal/handlers"
	"clinicBack/internal/repositories"
	"clinicBack/internal/services"
	"clinicBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	tokens   *utils.Manager
	kioskHub *KioskHub

	userRepo *repositories.UserRepository

	treatmentHandler      *handlers.TreatmentHandler
	recommendationHandler *handlers.RecommendationHandler
	categoryHandler       *handlers.CategoryHandler
	caseHandler           *handlers.CaseHandler
	settingsHandler       *handlers.SettingsHandler
	userHandler           *handlers.UserHandler
	eventHandler          *handlers.EventHandler
}

func initializeApp(db *sql.DB, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	tokens, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}

	var storage *utils.Storage
	if cfg.Storage.Bucket != "" {
		storage, err = utils.NewStorage(cfg)
		if err != nil {
			return nil, err
		}
	} else {
		infoLog.Println("object storage not configured, image uploads disabled")
	}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// Repositories
	treatmentRepo := repositories.TreatmentRepository{DB: db}
	categoryRepo := repositories.CategoryRepository{DB: db}
	caseRepo := repositories.CaseRepository{DB: db}
	relationRepo := repositories.RelationRepository{DB: db}
	settingsRepo := repositories.SettingsRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}
	eventRepo := repositories.EventRepository{DB: db}

	// Services
	treatmentService := &services.TreatmentService{
		TreatmentRepo: &treatmentRepo,
		CaseRepo:      &caseRepo,
		RelationRepo:  &relationRepo,
		ErrorLog:      errorLog,
	}
	if storage != nil {
		treatmentService.Storage = storage
	}
	recommendationService := &services.RecommendationService{
		RelationRepo:  &relationRepo,
		TreatmentRepo: &treatmentRepo,
		Cache:         cache,
		CacheTTL:      time.Minute,
		ErrorLog:      errorLog,
	}
	categoryService := &services.CategoryService{CategoryRepo: &categoryRepo}
	caseService := &services.CaseService{
		CaseRepo:      &caseRepo,
		TreatmentRepo: &treatmentRepo,
		RelationRepo:  &relationRepo,
		ErrorLog:      errorLog,
	}
	settingsService := &services.SettingsService{SettingsRepo: &settingsRepo}
	userService := &services.UserService{
		UserRepo:  &userRepo,
		Tokens:    tokens,
		AccessTTL: time.Duration(cfg.Auth.AccessTTLHours) * time.Hour,
	}
	eventService := &services.EventService{EventRepo: &eventRepo}

	app := &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		db:       db,
		tokens:   tokens,
		userRepo: &userRepo,
	}

	// Admin writes invalidate the kiosk's recommendation cache and ping
	// connected displays.
	onContentChange := func(ctx context.Context) {
		recommendationService.InvalidateCache(ctx)
		if app.kioskHub != nil {
			app.kioskHub.Broadcast("content_updated")
		}
	}

	// Handlers
	treatmentHandler := &handlers.TreatmentHandler{Service: treatmentService, OnContentChange: onContentChange}
	recommendationHandler := &handlers.RecommendationHandler{Service: recommendationService}
	categoryHandler := &handlers.CategoryHandler{Service: categoryService, OnContentChange: onContentChange}
	caseHandler := &handlers.CaseHandler{Service: caseService, OnContentChange: onContentChange}
	settingsHandler := &handlers.SettingsHandler{Service: settingsService, OnContentChange: onContentChange}
	if storage != nil {
		categoryHandler.Storage = storage
		caseHandler.Storage = storage
		settingsHandler.Storage = storage
	}
	userHandler := &handlers.UserHandler{Service: userService}
	eventHandler := &handlers.EventHandler{Service: eventService, ErrorLog: errorLog}

	app.treatmentHandler = treatmentHandler
	app.recommendationHandler = recommendationHandler
	app.categoryHandler = categoryHandler
	app.caseHandler = caseHandler
	app.settingsHandler = settingsHandler
	app.userHandler = userHandler
	app.eventHandler = eventHandler

	return app, nil
}
