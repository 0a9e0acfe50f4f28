package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jira-dashboard-service/internal/config"
	"jira-dashboard-service/internal/domain"
	"jira-dashboard-service/internal/handler"
	"jira-dashboard-service/internal/jira"
	"jira-dashboard-service/internal/repository"
	"jira-dashboard-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// Клиент Jira
	var searchClient domain.SearchClient
	if cfg.JiraConfigured() {
		client := jira.NewClient(cfg.JiraBaseURL, cfg.JiraEmail, cfg.JiraToken, cfg.JiraTimeout, logger)
		searchClient = client

		probeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if who, err := client.TestConnection(probeCtx); err != nil {
			logger.Warnf("Jira connection check failed: %v", err)
		} else {
			logger.Infof("Connected to Jira as %s", who)
		}
		cancel()
	} else {
		logger.Warn("Jira credentials not configured, remote execution disabled")
	}

	// Предопределенный каталог запросов
	predefined := repository.PredefinedQueries(cfg.JiraProject)
	if cfg.QueriesFile != "" {
		extra, err := repository.LoadCatalogFile(cfg.QueriesFile)
		if err != nil {
			logger.Fatalf("Failed to load catalog file %s: %v", cfg.QueriesFile, err)
		}
		predefined = append(predefined, extra...)
		logger.Infof("Loaded %d extra predefined queries from %s", len(extra), cfg.QueriesFile)
	}

	// Хранилища
	queryRepo := repository.NewQueryRepository(predefined)
	cacheStore := repository.NewMemoryCacheStore(cfg.CacheTTL)
	statsTracker := repository.NewStatsTracker()

	// Use Cases
	queryUC := usecase.NewQueryUseCase(queryRepo, cacheStore, statsTracker, searchClient)
	executorUC := usecase.NewExecutorUseCase(queryRepo, cacheStore, statsTracker, searchClient)
	statsUC := usecase.NewStatsUseCase(statsTracker)

	// Echo + Handlers
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(queryUC, executorUC, statsUC, logger)
	handler.RegisterRoutes(e, apiHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":          "ok",
			"jira_configured": cfg.JiraConfigured(),
		})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
