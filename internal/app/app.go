package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BilawalArif/redfin-clone/internal/config"
	"github.com/BilawalArif/redfin-clone/internal/handler"
	"github.com/BilawalArif/redfin-clone/internal/mail"
	"github.com/BilawalArif/redfin-clone/internal/oauth"
	"github.com/BilawalArif/redfin-clone/internal/repository"
	"github.com/BilawalArif/redfin-clone/internal/service"
	"github.com/BilawalArif/redfin-clone/internal/utils"
	"github.com/BilawalArif/redfin-clone/pkg/observability"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	serviceName     = "redfin-clone"
	shutdownTimeout = 5 * time.Second
)

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	repos := repository.NewRepositories(infra.Postgres())

	metrics, err := observability.NewMetrics(infra.MeterProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)
	mailer := mail.NewMailer(cfg.Mail, cfg.BaseURL, infra.Logger())

	var google handler.OAuthProvider
	if cfg.Google.Enabled() {
		google = oauth.NewGoogleProvider(cfg.Google)
	} else {
		infra.Logger().Info("Google sign-in disabled, GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}

	authService := service.NewAuthService(
		repos.User,
		repos.OAuthProvider,
		jwtManager,
		mailer,
		metrics,
		infra.Logger(),
		cfg.Security.BCryptCost,
	)
	userService := service.NewUserService(repos.User)
	propertyService := service.NewPropertyService(repos.Property, metrics)
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	handlers := Handlers{
		Auth:     handler.NewAuthHandler(authService, google),
		User:     handler.NewUserHandler(userService),
		Property: handler.NewPropertyHandler(propertyService),
	}

	router, err := newRouter(infra.Logger(), cfg.CORS, cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}
	router.GET("/metrics", observability.PrometheusHandler(infra.MetricsHandler()))
	router.GET("/health", healthChecker.Handler)

	rateLimit := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.RouteAndIPKey,
		infra.Logger(),
	)
	registerRoutes(router, routeTable(handlers), authService, rateLimit)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

// newRouter builds the engine with the shared middleware chain. The error
// boundary wraps recovery so recovered panics render like any other error.
// Forwarding headers count only from trustedProxies.
func newRouter(logger *zap.Logger, cors config.CORSConfig, trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(handler.ErrorMiddleware(logger))
	router.Use(gin.CustomRecoveryWithWriter(io.Discard, handler.RecoveryHandler(logger)))
	router.Use(handler.CORSMiddleware(cors))
	return router, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Drain requests before closing the pools they use
	serverErr := a.server.Shutdown(ctx)
	infraErr := a.infra.Shutdown(ctx)

	err := errors.Join(serverErr, infraErr)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
