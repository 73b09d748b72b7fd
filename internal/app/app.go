package app

import (
	"context"
	"errors"
	"hiphop_roadmap_backend/internal/config"
	"hiphop_roadmap_backend/internal/controller"
	"hiphop_roadmap_backend/internal/repository"
	"hiphop_roadmap_backend/internal/service"
	"hiphop_roadmap_backend/internal/util"
	"hiphop_roadmap_backend/pkg/configwatcher"
	"hiphop_roadmap_backend/pkg/database"
	"hiphop_roadmap_backend/pkg/logger"
	"hiphop_roadmap_backend/pkg/monitoring"
	"hiphop_roadmap_backend/pkg/security"
	"hiphop_roadmap_backend/pkg/tracing"
	"net/http"
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
	services        *services
	limiter         *security.RateLimiter
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user            *repository.UserRepository
	skill           *repository.SkillRepository
	skillCache      *repository.SkillCache
	tokenBlacklist  *repository.TokenBlacklist
	progress        *repository.ProgressRepository
	personalization *repository.PersonalizationRepository
}

type services struct {
	auth            *service.AuthService
	user            *service.UserService
	storage         *service.StorageService
	skill           *service.SkillService
	progress        *service.ProgressService
	personalization *service.PersonalizationService
}

type controllers struct {
	auth            *controller.AuthController
	skill           *controller.SkillController
	progress        *controller.ProgressController
	personalization *controller.PersonalizationController
	health          *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:            repository.NewUserRepository(db),
		skill:           repository.NewSkillRepository(db),
		skillCache:      repository.NewSkillCache(rdb, cfg.Redis.CatalogTTL()),
		tokenBlacklist:  repository.NewTokenBlacklist(rdb),
		progress:        repository.NewProgressRepository(db),
		personalization: repository.NewPersonalizationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, repos.tokenBlacklist, cfg)
	s.skill = service.NewSkillService(repos.skill, repos.skillCache, s.storage)
	s.progress = service.NewProgressService(repos.progress, repos.skill)
	s.personalization = service.NewPersonalizationService(repos.personalization, s.skill)
	s.user = service.NewUserService(repos.user, s.auth, s.progress, s.personalization)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:            controller.NewAuthController(s.auth, s.user, a.Config.Server.Mode == gin.ReleaseMode),
		skill:           controller.NewSkillController(s.skill),
		progress:        controller.NewProgressController(s.progress),
		personalization: controller.NewPersonalizationController(s.personalization),
		health:          controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(cfg.Tracing.ServiceName))
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 初始化日志、数据库、Redis 和追踪，并组装路由
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, err
	}

	// release 模式默认跳过自动迁移，需要显式 --migrate
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	app := newApp(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(context.Background(), cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracerProvider = tp
		}
	}

	return app, nil
}

func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 热更新：日志级别和限流参数
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		app.limiter.SetLimit(newCfg.RateLimit.MaxRequests, newCfg.RateLimit.Window())
		app.Config.Log = newCfg.Log
		app.Config.RateLimit = newCfg.RateLimit
		logger.Log.Info("Runtime settings updated",
			zap.String("logLevel", logger.Level().String()),
			zap.Int("rateLimit", newCfg.RateLimit.MaxRequests),
		)
	})

	return app
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

// Seed 导入内置技能目录
func (a *App) Seed(ctx context.Context) (int, error) {
	skills, err := a.services.skill.Seed(ctx)
	return len(skills), err
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.Config.ConfigFile != "" {
		if err := configwatcher.Watch(ctx, a.Config.ConfigFile, a.applyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	// 等待请求处理完成（最多5秒）
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	return nil
}

// Close 释放追踪、Redis 和数据库连接
func (a *App) Close(ctx context.Context) {
	a.limiter.Stop()
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	_ = logger.Log.Sync()
}
