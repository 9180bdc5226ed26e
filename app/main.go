package main

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"worktrack-portal/internal/routes"
	"worktrack-portal/migrations"
	"worktrack-portal/pkg/config"
	"worktrack-portal/pkg/database/postgresql"
	apperrors "worktrack-portal/pkg/errors"
	"worktrack-portal/pkg/eventbus"
	applogger "worktrack-portal/pkg/logger"
	"worktrack-portal/pkg/service"
	"worktrack-portal/pkg/utils"
	"worktrack-portal/pkg/websocket"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Паника в обработчике запроса",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173", cfg.Server.BaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	e.Validator = utils.NewValidator(validator.New())

	if cfg.MigrateOnStart {
		if err := migrations.Up(cfg.Postgres.DSN); err != nil {
			logger.Fatal("Миграции не применились", zap.Error(err))
		}
		logger.Info("Миграции применены")
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	hub := websocket.NewHub()
	go hub.Run()

	bus := eventbus.New(logger)

	if err := routes.InitRouter(e, dbConn, redisClient, jwtSvc, hub, bus, logger, cfg); err != nil {
		logger.Fatal("Ошибка инициализации маршрутов", zap.Error(err))
	}

	addr := ":" + cfg.Server.Port
	logger.Info("Сервер запущен", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
