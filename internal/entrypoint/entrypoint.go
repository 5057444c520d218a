package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/qotd/internal/auth"
	"github.com/mrlokans/qotd/internal/config"
	"github.com/mrlokans/qotd/internal/dailypick"
	"github.com/mrlokans/qotd/internal/database"
	"github.com/mrlokans/qotd/internal/database/categories"
	"github.com/mrlokans/qotd/internal/database/questions"
	"github.com/mrlokans/qotd/internal/dataclient/local"
	http_controllers "github.com/mrlokans/qotd/internal/http"
	"github.com/mrlokans/qotd/internal/scheduler"
	"github.com/mrlokans/qotd/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App is a fully wired API server that has not started listening yet.
type App struct {
	Router *gin.Engine

	db          *database.Database
	taskClient  *tasks.Client
	taskCancel  context.CancelFunc
	limiter     *auth.RateLimiter
	dailyPicker *scheduler.DailyPickScheduler
}

// NewApp opens the database and wires every server component.
// Background workers start only when Start is called.
func NewApp(cfg *config.Config, version string) (*App, error) {
	if cfg.DailyPick.Enabled {
		if err := scheduler.ValidateCronSchedule(cfg.DailyPick.Schedule); err != nil {
			return nil, fmt.Errorf("invalid DAILY_PICK_SCHEDULE %q: %w", cfg.DailyPick.Schedule, err)
		}
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Printf("Database: %s", cfg.Database.Path)

	app := &App{db: db}

	var clientOpts []local.Option
	if cfg.Tasks.Enabled {
		app.taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.taskClient.RegisterMaintenance(
			categories.NewRepository(db.DB),
			questions.NewRepository(db.DB),
		)
		clientOpts = append(clientOpts, local.WithAfterDelete(app.taskClient.EnqueueCategoryCleanup))
	} else {
		log.Printf("Task queue: disabled")
	}

	routerCfg := http_controllers.RouterConfig{
		Client:     local.NewWithDatabase(db, clientOpts...),
		Database:   db,
		TaskClient: app.taskClient,
		HSTS:       cfg.HTTP.HSTS,
		ReadOnly:   cfg.HTTP.ReadOnly,
		Version:    version,
	}
	if cfg.HTTP.ReadOnly {
		log.Printf("Read-only mode: API writes are rejected")
	}

	picker := dailypick.NewPicker(db.DB, cfg.DailyPick.History)
	if cfg.DailyPick.Enabled {
		routerCfg.Picker = picker
	} else {
		log.Printf("Daily pick: disabled")
	}
	app.dailyPicker = scheduler.NewDailyPickScheduler(picker, cfg.DailyPick)

	if cfg.Auth.Mode == config.AuthModeNone {
		log.Printf("Authentication mode: none (no authentication required)")
	} else {
		log.Printf("Authentication mode: %s", cfg.Auth.Mode)
		service := auth.NewService(db.DB, cfg.Auth)
		app.limiter = auth.NewRateLimiter(auth.RateLimitConfig{
			MaxAttempts:     cfg.Auth.MaxFailedAttempts,
			WindowDuration:  cfg.Auth.RateLimitWindow,
			LockoutDuration: cfg.Auth.LockoutDuration,
		})
		routerCfg.AuthMiddleware = auth.NewMiddleware(service, app.limiter, cfg.Auth)

		hasKeys, err := service.HasKeys(context.Background())
		if err != nil {
			log.Printf("WARNING: could not count API keys: %v", err)
		} else if !hasKeys && cfg.Auth.StaticKey == "" {
			log.Printf("WARNING: no API keys exist. Create one with 'qotd apikey create <name>' or set API_KEY.")
		}
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Start launches the task workers and the daily pick scheduler.
func (a *App) Start(ctx context.Context) error {
	if a.taskClient != nil {
		var taskCtx context.Context
		taskCtx, a.taskCancel = context.WithCancel(ctx)
		go a.taskClient.Start(taskCtx)

		if err := a.taskClient.EnqueueNormsBackfill(); err != nil {
			log.Printf("WARNING: %v", err)
		}
	}
	return a.dailyPicker.Start(ctx)
}

// Shutdown stops background work and closes the database.
func (a *App) Shutdown(ctx context.Context) {
	a.dailyPicker.Stop()

	if a.taskClient != nil {
		a.taskClient.Stop(ctx)
		if a.taskCancel != nil {
			a.taskCancel()
		}
		if err := a.taskClient.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}

	if a.limiter != nil {
		a.limiter.Stop()
	}

	if err := a.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// Serve listens until SIGINT/SIGTERM, then shuts the server down gracefully.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-listenErr:
		if onShutdown != nil {
			onShutdown(context.Background())
		}
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := srv.Shutdown(ctx)

	// In-flight requests are done; release the queue and database
	if onShutdown != nil {
		onShutdown(ctx)
	}
	if err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server exiting")
	return nil
}

// Run starts the API server and blocks until it is stopped.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting qotd server v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		app.Shutdown(context.Background())
		return err
	}

	return Serve(app.Router, cfg, app.Shutdown)
}
