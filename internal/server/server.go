package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/peoplegraph/internal/bootstrap"
	"github.com/OFFIS-RIT/peoplegraph/internal/config"
	mid "github.com/OFFIS-RIT/peoplegraph/internal/server/middleware"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// New creates the echo instance with middlewares and routes for app.
func New(app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("64K"))

	RegisterRoutes(e)
	return e
}

// Init loads the dataset, serves the HTTP API and blocks until SIGINT or
// SIGTERM. A dataset that cannot be loaded is fatal.
func Init(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := bootstrap.NewAIClient(cfg.AI)
	if err != nil {
		logger.Fatal("Failed to create AI client", "err", err)
	}

	engine, err := bootstrap.NewEngine(ctx, cfg, client, nil)
	if err != nil {
		logger.Fatal("Failed to load dataset", "err", err)
	}

	app := &mid.App{
		Engine:       engine,
		MasterAPIKey: cfg.Server.MasterAPIKey,
	}

	if cfg.Server.AuthURL != "" {
		jwksUrl := cfg.Server.AuthURL + "/jwks"
		k, err := keyfunc.NewDefault([]string{jwksUrl})
		if err != nil {
			logger.Fatal("Failed to load jwks keys", "err", err)
		}
		app.Key = &k
	}
	if app.AuthDisabled() {
		logger.Warn("No MASTER_API_KEY or AUTH_URL configured, the API is open to everyone")
	}

	e := New(app)

	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
