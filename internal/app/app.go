package app

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/controller"
	"ai_interview_backend/internal/repository"
	"ai_interview_backend/internal/service"
	"ai_interview_backend/pkg/configwatcher"
	"ai_interview_backend/pkg/database"
	"ai_interview_backend/pkg/logger"
	"ai_interview_backend/pkg/monitoring"
	"ai_interview_backend/pkg/security"
	"ai_interview_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Mongo  *mongo.Client
	Redis  *redis.Client

	tracer          *sdktrace.TracerProvider
	ctx             context.Context
	cancel          context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	interview *repository.InterviewRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	interview   *service.InterviewService
	interviewer *service.InterviewerService
}

type controllers struct {
	auth        *controller.AuthController
	candidate   *controller.CandidateController
	interviewer *controller.InterviewerController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(ctx context.Context) (*repositories, error) {
	interviews, err := repository.NewInterviewRepository(ctx, a.Mongo, a.Config.Mongo.Database, a.Config.Mongo.Collection)
	if err != nil {
		return nil, err
	}
	return &repositories{
		user:      repository.NewUserRepository(a.DB),
		interview: interviews,
	}, nil
}

// initServices 所有协作者都由显式配置构造，任何一个失败都终止启动
func (a *App) initServices(ctx context.Context, repos *repositories) (*services, error) {
	cfg := a.Config

	storage, err := service.NewStorageService(ctx, &cfg.Storage)
	if err != nil {
		return nil, err
	}

	gemini, err := service.NewGeminiService(ctx, &cfg.AI, &http.Client{Timeout: 2 * time.Minute})
	if err != nil {
		return nil, err
	}

	var alerts service.FailureReporter = service.LogAlertReporter{}
	if a.Redis != nil {
		alerts = service.NewRedisAlertReporter(a.Redis, cfg.Redis.AlertChannel, cfg.Redis.AlertList)
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, &cfg.JWT)
	s.interview = service.NewInterviewService(cfg, service.InterviewDeps{
		Interviews: repos.interview,
		Resumes:    service.NewResumeService(cfg.Upload.MaxBytes),
		Archive:    storage,
		Generator:  gemini,
		Scorer:     gemini,
		Summaries:  gemini,
		Notifier:   service.NewMailService(&cfg.Mail),
		Alerts:     alerts,
	})
	s.interviewer = service.NewInterviewerService(repos.interview, repos.user, storage)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		candidate:   controller.NewCandidateController(s.interview, a.Config.Upload),
		interviewer: controller.NewInterviewerController(s.interview, s.interviewer),
		health:      controller.NewHealthController(repos.user, repos.interview),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{Config: cfg, DB: db, ctx: ctx, cancel: cancel}
	if cfg.MigrateOnly {
		return app, nil
	}

	if err := app.init(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) init() error {
	cfg := a.Config
	initCtx, cancel := context.WithTimeout(a.ctx, 30*time.Second)
	defer cancel()

	mongoClient, err := database.InitMongo(initCtx, &cfg.Mongo)
	if err != nil {
		return fmt.Errorf("init mongo: %w", err)
	}
	a.Mongo = mongoClient

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(initCtx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		a.Redis = rdb
	}

	if cfg.Upload.TempDir != "" {
		if err := os.MkdirAll(cfg.Upload.TempDir, 0755); err != nil {
			return fmt.Errorf("create upload temp dir: %w", err)
		}
	}

	repos, err := a.initRepositories(initCtx)
	if err != nil {
		return err
	}
	services, err := a.initServices(initCtx, repos)
	if err != nil {
		return err
	}
	controllers := a.initControllers(services, repos)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("ai-interview-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		a.tracer = tp
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	a.Router = router

	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, controllers, repos)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.ApplyMode(newCfg.Server.Mode)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})
	if cfg.File != "" {
		go func() {
			err := configwatcher.Watch(a.ctx, cfg.File, func(newCfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(newCfg)
				}
			})
			if err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	return nil
}

// Close 释放外部连接，可重复调用
func (a *App) Close() {
	a.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
		a.tracer = nil
	}
	if a.Mongo != nil {
		if err := a.Mongo.Disconnect(shutdownCtx); err != nil {
			logger.Log.Error("Failed to disconnect mongo", zap.Error(err))
		}
		a.Mongo = nil
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
		a.Redis = nil
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
		a.DB = nil
	}
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.Close()
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(ctx)
	a.Close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
