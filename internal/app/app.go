package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study_buddy_backend/internal/config"
	"study_buddy_backend/internal/controller"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/repository/memory"
	"study_buddy_backend/internal/service"
	"study_buddy_backend/internal/util"
	"study_buddy_backend/pkg/configwatcher"
	"study_buddy_backend/pkg/database"
	"study_buddy_backend/pkg/logger"
	"study_buddy_backend/pkg/monitoring"
	"study_buddy_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	// ctx scopes background goroutines started while building the app.
	ctx    context.Context
	cancel context.CancelFunc

	stores          repository.Stores
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	ai          *service.AIService
	generator   *service.PlanGenerator
	storage     *service.StorageService
	user        *service.UserService
	goal        *service.GoalService
	task        *service.TaskService
	achievement *service.AchievementService
	dashboard   *service.DashboardService
	insight     *service.InsightService
	reminder    *service.ReminderService
}

type controllers struct {
	health      *controller.HealthController
	dashboard   *controller.DashboardController
	goal        *controller.GoalController
	task        *controller.TaskController
	achievement *controller.AchievementController
	insight     *controller.InsightController
	user        *controller.UserController
	reminder    *controller.ReminderController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initStores() (repository.Stores, error) {
	if a.Config.Database.Driver == util.DriverMemory {
		logger.Log.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewStore().Stores(), nil
	}

	db, err := database.InitDB(&a.Config.Database, a.Config.Server.Mode == gin.DebugMode)
	if err != nil {
		return repository.Stores{}, err
	}
	a.DB = db
	return repository.NewGormStores(db), nil
}

func (a *App) initServices(stores repository.Stores) (*services, error) {
	cfg := a.Config

	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	var archiver service.Archiver
	if storage != nil {
		archiver = storage
	}

	var cache service.InsightCache
	if a.Redis != nil {
		cache = service.NewRedisInsightCache(a.Redis)
	}

	ai := service.NewAIService(cfg.AI)
	generator := service.NewPlanGenerator(ai, service.SettingsFromConfig(cfg.AI))
	achievement := service.NewAchievementService(stores, service.DefaultAchievementRules...)

	return &services{
		ai:          ai,
		generator:   generator,
		storage:     storage,
		user:        service.NewUserService(stores, archiver),
		goal:        service.NewGoalService(stores, generator, nil),
		task:        service.NewTaskService(stores, achievement),
		achievement: achievement,
		dashboard:   service.NewDashboardService(stores),
		insight:     service.NewInsightService(stores, generator, cache, time.Duration(cfg.Redis.InsightTTLMinutes)*time.Minute),
		reminder:    service.NewReminderService(stores),
	}, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		health:      controller.NewHealthController(a.DB, a.Redis),
		dashboard:   controller.NewDashboardController(s.dashboard),
		goal:        controller.NewGoalController(s.goal),
		task:        controller.NewTaskController(s.task),
		achievement: controller.NewAchievementController(s.achievement),
		insight:     controller.NewInsightController(s.insight),
		user:        controller.NewUserController(s.user),
		reminder:    controller.NewReminderController(s.reminder),
	}
}

// NewApp connects storage, builds the services and registers the routes.
// With MigrateOnly set it stops after the schema migration.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{Config: cfg, ctx: ctx, cancel: cancel}

	stores, err := app.initStores()
	if err != nil {
		cancel()
		return nil, err
	}
	app.stores = stores
	if cfg.MigrateOnly {
		return app, nil
	}

	if cfg.Database.SeedDemo {
		if err := database.SeedDemo(context.Background(), stores.Users, stores.Reminders); err != nil {
			return nil, err
		}
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(context.Background(), &cfg.Redis)
		if err != nil {
			// Insights still work uncached.
			logger.Log.Warn("Redis unavailable, insight cache disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	svcs, err := app.initServices(stores)
	if err != nil {
		return nil, err
	}
	app.services = svcs

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		svcs.ai.ApplyConfig(newCfg.AI)
		svcs.generator.ApplySettings(service.SettingsFromConfig(newCfg.AI))
	})

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router)
	app.registerRoutes(router, app.initControllers(svcs))

	return app, nil
}

// watchConfig applies config file edits to every registered callback.
func (a *App) watchConfig(ctx context.Context) {
	if a.Config.Path == "" {
		return
	}
	if _, err := os.Stat(a.Config.Path); err != nil {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.Path, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.watchConfig(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
	return nil
}

// Close stops background work and releases the tracer, cache and database
// connections.
func (a *App) Close(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
