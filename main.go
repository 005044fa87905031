package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
	"gitlab.com/s.izotov81/eventapi/internal/config"
	"gitlab.com/s.izotov81/eventapi/internal/core/auth"
	"gitlab.com/s.izotov81/eventapi/internal/core/controller"
	"gitlab.com/s.izotov81/eventapi/internal/core/repository"
	"gitlab.com/s.izotov81/eventapi/internal/core/service"
	"gitlab.com/s.izotov81/eventapi/internal/core/validation"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/cache"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/db"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/db/adapter"
	"gitlab.com/s.izotov81/eventapi/internal/infrastructure/metrics"
	"gitlab.com/s.izotov81/eventapi/internal/logger"
	"gitlab.com/s.izotov81/eventapi/pkg/responder"
	"go.uber.org/zap"

	_ "gitlab.com/s.izotov81/eventapi/docs"
)

// @title Events API
// @version 1.0
// @description API пользователей и их событий
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

var rootCmd = &cobra.Command{
	Use:           "eventapi",
	Short:         "Events API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// без подкоманды запускаем сервер
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap читает окружение и поднимает логгер и подключение к БД
func bootstrap(ctx context.Context) (*config.Config, *zap.Logger, *sqlx.DB, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	dbConn, err := db.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, log, dbConn, nil
}

func serve(ctx context.Context) error {
	cfg, log, dbConn, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer dbConn.Close()

	if err := db.RunMigrations(ctx, dbConn); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	sqlAdapter := adapter.NewSQLAdapter(dbConn)
	userRepo := repository.NewUserRepository(sqlAdapter)
	eventRepo := repository.NewEventRepository(sqlAdapter)

	sessionCache := cache.NewInMemoryCache(ctx, time.Minute, log)
	resolver, err := newCredentialResolver(cfg, userRepo, auth.NewSessionStore(sessionCache, cfg.Auth.SessionTTL))
	if err != nil {
		return err
	}

	r := setupRouter(routerDeps{
		users:    userRepo,
		events:   eventRepo,
		resolver: resolver,
		strategy: cfg.Auth.Strategy,
		bcrypt:   cfg.BcryptCost,
		health:   dbConn.PingContext,
		logger:   log,
	})

	listener, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", cfg.HTTP.Addr), zap.String("auth_strategy", cfg.Auth.Strategy))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serveErr:
		return fmt.Errorf("could not start server: %w", err)
	}
	log.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped gracefully")
	return nil
}

type routerDeps struct {
	users    repository.UserRepository
	events   repository.EventRepository
	resolver auth.CredentialResolver
	strategy string
	bcrypt   int
	health   func(ctx context.Context) error
	logger   *zap.Logger
}

func setupRouter(deps routerDeps) *chi.Mux {
	jsonResponder := responder.NewJSONResponder()
	validator := validation.New()

	userService := service.NewUserService(deps.users, deps.events, validator, deps.bcrypt, deps.logger)
	sessionService := service.NewSessionService(deps.users, deps.logger)
	eventService := service.NewEventService(deps.events, validator, deps.logger)

	userController := controller.NewUserController(userService, deps.resolver, jsonResponder, deps.logger)
	sessionController := controller.NewSessionController(sessionService, deps.resolver, jsonResponder, deps.logger)
	eventController := controller.NewEventController(eventService, jsonResponder, deps.logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger(deps.logger))
	// Добавляем middleware для метрик HTTP
	r.Use(metrics.HTTPMetricsMiddleware)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.health(r.Context()); err != nil {
			deps.logger.Warn("health check failed", zap.Error(err))
			jsonResponder.Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		jsonResponder.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		// Без аутентификации: logout сам определяет пользователя
		r.Group(func(r chi.Router) {
			r.Post("/registration", userController.Register)
			r.Post("/login", sessionController.Login)
			r.Delete("/logout", sessionController.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(deps.resolver, jsonResponder, deps.strategy, deps.logger))

			r.Get("/users", userController.Show)
			r.Put("/users", userController.Update)
			r.Patch("/users", userController.Update)
			r.Delete("/users", userController.Destroy)

			r.Get("/events", eventController.Index)
			r.Post("/events", eventController.Create)
			r.Get("/events/{id}", eventController.Show)
			r.Put("/events/{id}", eventController.Update)
			r.Patch("/events/{id}", eventController.Update)
			r.Delete("/events/{id}", eventController.Destroy)
		})
	})

	return r
}
