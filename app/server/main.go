package main

import (
	"context"
	"fmt"
	"log"

	"campus-connect/app/server/constants"
	"campus-connect/app/server/handlers"
	"campus-connect/app/server/inits"
	"campus-connect/app/server/jwt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	l.Debug("logger initialized")

	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	mdb, err := inits.Mongo(cfg.System.MongoConnectionString, cfg.System.MongoDatabase)
	if err != nil {
		l.Fatal("error initializing Mongo connection", zap.Error(err))
	}

	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	j, err := jwt.New(cfg.Security.SignatureSecretKey, constants.AuthTokenDuration)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	verifier, err := inits.Identity(context.Background(), cfg.System.FirebaseCredentialsFile)
	if err != nil {
		l.Fatal("error initializing identity verifier", zap.Error(err))
	}

	handlerApp := handlers.NewApp(l, db, mdb, rdb, j, verifier, cfg)

	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.System.CORSOrigins,
		AllowCredentials: true,
	}))

	handlerApp.RegisterRoutes(e)

	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
