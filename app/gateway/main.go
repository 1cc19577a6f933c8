package main

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"campus-connect/app/gateway/inits"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// The gateway is the single public entry point: the campus API and the
// anonymous feedback service stay unreachable behind it. Anonymous
// traffic is proxied with the /anonymous prefix stripped so the
// feedback service never learns it is mounted under a prefix.
func main() {
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	l, err := inits.Logger(!cfg.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	l.Debug("logger initialized")

	apiURL, err := url.Parse(cfg.APIEndpoint)
	if err != nil {
		l.Fatal("error parsing API endpoint", zap.String("endpoint", cfg.APIEndpoint), zap.Error(err))
	}
	anonymousURL, err := url.Parse(cfg.AnonymousEndpoint)
	if err != nil {
		l.Fatal("error parsing anonymous endpoint", zap.String("endpoint", cfg.AnonymousEndpoint), zap.Error(err))
	}

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
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "online"})
	})

	apiProxy := middleware.Proxy(middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{
		{URL: apiURL},
	}))
	e.Group("/api").Use(apiProxy)
	e.Group("/administrator").Use(apiProxy)

	e.Group("/anonymous").Use(middleware.ProxyWithConfig(middleware.ProxyConfig{
		Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{
			{URL: anonymousURL},
		}),
		Rewrite: map[string]string{
			"/anonymous/*": "/$1",
		},
	}))

	if err := e.Start(cfg.Listen); err != nil {
		l.Fatal("shutting down the gateway", zap.Error(err))
	}
}
