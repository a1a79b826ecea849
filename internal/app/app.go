package app

import (
	"campus_voice_backend/internal/config"
	"campus_voice_backend/internal/controller"
	"campus_voice_backend/internal/repository"
	"campus_voice_backend/internal/service"
	"campus_voice_backend/internal/util"
	"campus_voice_backend/pkg/cache"
	"campus_voice_backend/pkg/configwatcher"
	"campus_voice_backend/pkg/database"
	"campus_voice_backend/pkg/logger"
	"campus_voice_backend/pkg/mail"
	"campus_voice_backend/pkg/monitoring"
	"campus_voice_backend/pkg/security"
	"campus_voice_backend/pkg/tracing"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	stop            context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	category     *repository.CategoryRepository
	notification *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	category     *service.CategoryService
	feedback     *service.FeedbackService
	notification *service.NotificationService
}

type controllers struct {
	auth         *controller.AuthController
	category     *controller.CategoryController
	feedback     *controller.FeedbackController
	notification *controller.NotificationController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) cacheStore() cache.Store {
	if a.Redis != nil {
		return cache.NewRedisStore(a.Redis)
	}
	return cache.NewMemoryStore(a.Config.Cache.LocalSize, a.Config.Cache.CategoryTTL)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		category:     repository.NewCategoryRepository(db, a.cacheStore(), a.Config.Cache.CategoryTTL),
		notification: repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, storage service.StorageProvider, mailer mail.Mailer) *services {
	return &services{
		auth:         service.NewAuthService(db, cfg),
		category:     service.NewCategoryService(repos.category),
		feedback:     service.NewFeedbackService(db, repos.category, storage, mailer, cfg),
		notification: service.NewNotificationService(repos.notification, cfg),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		category:     controller.NewCategoryController(s.category),
		feedback:     controller.NewFeedbackController(s.feedback),
		notification: controller.NewNotificationController(s.notification),
		dashboard:    controller.NewDashboardController(s.feedback),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure(cfg.Server.IsRelease()))
	router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(cfg.Tracing.ServiceName))
	}

	router.Use(monitoring.MetricsMiddleware())
}

// Build assembles the HTTP application on top of an opened database.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage service.StorageProvider, mailer mail.Mailer) *App {
	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	bgCtx, stop := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		stop:   stop,
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, db, storage, mailer)
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.Upload.MaxFileSize * int64(cfg.Upload.MaxFiles)
	app.Router = router

	app.setupMiddlewares(bgCtx, router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
	})

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.String("type", cfg.Storage.Type), zap.Error(err))
	}

	app := Build(cfg, db, rdb, storage, mail.NewSMTPMailer(cfg.Mail))

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(context.Background(), cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	logger.Log.Info("Application initialized",
		zap.String("database", cfg.Database.Driver),
		zap.String("storage", cfg.Storage.Type),
		zap.Bool("redis", rdb != nil),
		zap.Bool("mail", cfg.Mail.Enabled),
	)
	return app
}

// Close stops the background workers started by Build.
func (a *App) Close() {
	if a.stop != nil {
		a.stop()
	}
}

func (a *App) watchConfig(ctx context.Context) {
	if a.Config.ConfigFile == "" {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.watchConfig(ctx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close()

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}
