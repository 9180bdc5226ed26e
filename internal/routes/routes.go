package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"worktrack-portal/internal/listeners"
	"worktrack-portal/internal/repositories"
	"worktrack-portal/internal/services"
	syncpkg "worktrack-portal/internal/sync"
	"worktrack-portal/pkg/config"
	"worktrack-portal/pkg/eventbus"
	"worktrack-portal/pkg/filestorage"
	"worktrack-portal/pkg/middleware"
	"worktrack-portal/pkg/service"
	"worktrack-portal/pkg/websocket"
)

// InitRouter собирает весь граф зависимостей и навешивает маршруты.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *websocket.Hub,
	bus *eventbus.Bus,
	logger *zap.Logger,
	cfg *config.Config,
) error {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	secureGroup := api.Group("", authMW.Auth)

	fileStorage, err := filestorage.NewLocalFileStorage(
		cfg.Storage.BasePath, cfg.Server.BaseURL, jwtSvc, cfg.Storage.SignedURLTTL,
	)
	if err != nil {
		return err
	}

	// --- 1. РЕПОЗИТОРИИ ---
	orderRepo := repositories.NewOrderRepository(dbConn)
	commentRepo := repositories.NewOrderCommentRepository(dbConn)
	fileRepo := repositories.NewOrderFileRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	profileRepo := repositories.NewCachedProfileRepository(
		repositories.NewProfileRepository(dbConn), cacheRepo, logger,
	)

	// --- 2. ПОДСИСТЕМА СИНХРОНИЗАЦИИ ---
	manager := syncpkg.NewManager(
		dbConn, cfg.Sync,
		orderRepo, commentRepo, fileRepo, profileRepo,
		bus, logger,
	)
	listeners.NewUIListener(hub, logger).Register(bus)

	// --- 3. СЕРВИСЫ ---
	orderService := services.NewOrderService(orderRepo, logger)
	commentService := services.NewOrderCommentService(commentRepo, orderService, logger)
	fileService := services.NewOrderFileService(fileRepo, orderService, fileStorage, jwtSvc, logger)

	// --- 4. МАРШРУТЫ ---
	runSessionRouter(api, secureGroup, manager, jwtSvc, profileRepo, logger)
	runNotificationRouter(secureGroup, manager, logger)
	runOrderRouter(secureGroup, orderService, logger)
	runOrderCommentRouter(secureGroup, commentService, logger)
	runOrderFileRouter(api, secureGroup, fileService, logger)
	runReportRouter(secureGroup, orderService, logger)
	runWebSocketRouter(api, hub, jwtSvc, logger)

	logger.Info("InitRouter: Маршруты созданы")
	return nil
}
