package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/controller"
	"weblearn_backend/internal/repository"
	"weblearn_backend/internal/service"
	"weblearn_backend/pkg/database"
	"weblearn_backend/pkg/logger"
	"weblearn_backend/pkg/monitoring"
	"weblearn_backend/pkg/security"
	"weblearn_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 组装整个平台。远端库与缓存都是可选组件：
// 初始化失败或未配置只降低能力，进程照常启动。
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
	stopSync        chan struct{}
}

type repositories struct {
	user     *repository.UserRepository
	section  *repository.SectionRepository
	progress *repository.ProgressRepository
	response *repository.ResponseRepository
	cache    *repository.ProgressCache
}

type services struct {
	storage  *service.StorageService
	record   *service.RecordService
	sync     *service.SyncService
	learning *service.LearningService
	sample   *service.SampleService
	stats    *service.StatsService
	export   *service.ExportService
	auth     *service.AuthService
}

type controllers struct {
	auth     *controller.AuthController
	content  *controller.ContentController
	learning *controller.LearningController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口。只替换可以安全热切换的部分。
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config.Export = cfg.Export
	a.Config.Demo = cfg.Demo
	a.Config.Cache.SyncIntervalMinutes = cfg.Cache.SyncIntervalMinutes

	// 示例生成器的种子在构造时就定死了，演示配置变了要整个重建
	if a.services != nil {
		a.services.sample = service.NewSampleService(&a.Config.Demo)
		a.services.stats.Sample = a.services.sample
	}

	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("配置已热更新")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		section:  repository.NewSectionRepository(db),
		progress: repository.NewProgressRepository(db),
		response: repository.NewResponseRepository(db),
		cache:    repository.NewProgressCache(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.record = service.NewRecordService(db, repos.user, repos.section, repos.progress, repos.response)
	s.sync = service.NewSyncService(repos.cache, s.record)
	s.learning = service.NewLearningService(repos.cache, s.record, s.sync)
	s.sample = service.NewSampleService(&cfg.Demo)
	s.stats = service.NewStatsService(s.record, s.sample, cfg)
	s.export = service.NewExportService(s.storage, &cfg.Export)
	s.auth = service.NewAuthService(repos.user, repos.cache, s.record, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		content:  controller.NewContentController(),
		learning: controller.NewLearningController(s.learning, s.sync),
		admin:    controller.NewAdminController(s.stats, s.export),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(&cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(&cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 周期性把缓存里的进度推送到远端库。
// 库或缓存任一不可用时本轮直接跳过。
func (a *App) startBackgroundTasks(s *services, repos *repositories, cfg *config.Config) {
	if cfg.Cache.SyncIntervalMinutes <= 0 {
		return
	}

	interval := time.Duration(cfg.Cache.SyncIntervalMinutes) * time.Minute
	a.stopSync = make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !s.record.IsAvailable() || !repos.cache.Available() {
					continue
				}
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				s.sync.FlushPending(ctx)
				cancel()
			case <-a.stopSync:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	var db *gorm.DB
	if cfg.Database.Configured() {
		var err error
		db, err = database.InitDB(&cfg.Database)
		if err != nil {
			logger.Log.Warn("远端记录库连接失败，进入纯缓存模式", zap.Error(err))
			db = nil
		}
	} else {
		logger.Log.Info("远端记录库未配置，进入纯缓存模式")
	}

	var rdb *redis.Client
	if cfg.Cache.Configured() {
		var err error
		rdb, err = database.InitCache(&cfg.Cache)
		if err != nil {
			logger.Log.Warn("进度缓存连接失败，缓存读写降级为空操作", zap.Error(err))
			rdb = nil
		}
	} else {
		logger.Log.Info("进度缓存未配置，缓存读写降级为空操作")
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, db)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("weblearn-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Warn("追踪初始化失败", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" && cfg.Storage.LocalPath != "" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services, repos, cfg)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.stopSync != nil {
		close(a.stopSync)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
