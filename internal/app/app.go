package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"rizhub_backend/internal/config"
	"rizhub_backend/internal/controller"
	"rizhub_backend/internal/repository"
	"rizhub_backend/internal/service"
	"rizhub_backend/pkg/database"
	"rizhub_backend/pkg/logger"
	"rizhub_backend/pkg/monitoring"
	"rizhub_backend/pkg/security"
	"rizhub_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	kabanata     *repository.KabanataRepository
	quiz         *repository.QuizRepository
	guessWord    *repository.GuessWordRepository
	video        *repository.VideoRepository
	gallery      *repository.GalleryRepository
	progress     *repository.ProgressRepository
	notification *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	kabanata     *service.KabanataService
	gallery      *service.GalleryService
	progress     *service.ProgressService
	notification *service.NotificationService
	content      *service.ContentService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	kabanata     *controller.KabanataController
	gallery      *controller.GalleryController
	progress     *controller.ProgressController
	notification *controller.NotificationController
	content      *controller.ContentController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		kabanata:     repository.NewKabanataRepository(db),
		quiz:         repository.NewQuizRepository(db),
		guessWord:    repository.NewGuessWordRepository(db),
		video:        repository.NewVideoRepository(db),
		gallery:      repository.NewGalleryRepository(db),
		progress:     repository.NewProgressRepository(db),
		notification: repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	var mailer service.Mailer
	if cfg.Email.Enabled {
		mailer = service.NewSMTPMailer(&cfg.Email)
	}

	stager := service.NewRedisStagingStore(rdb)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.progress, storage, db)
	s.kabanata = service.NewKabanataService(repos.kabanata, repos.quiz, repos.guessWord, repos.video, repos.progress)
	s.gallery = service.NewGalleryService(repos.gallery, repos.progress, db)
	s.notification = service.NewNotificationService(repos.notification, repos.gallery, repos.user, repos.kabanata, mailer)
	s.progress = service.NewProgressService(repos.progress, repos.quiz, repos.guessWord, repos.video, repos.kabanata, stager, s.notification, db)
	s.content = service.NewContentService(repos.kabanata, repos.quiz, repos.guessWord, repos.video, repos.gallery, storage, db)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		kabanata:     controller.NewKabanataController(s.kabanata),
		gallery:      controller.NewGalleryController(s.gallery),
		progress:     controller.NewProgressController(s.progress),
		notification: controller.NewNotificationController(s.notification),
		content:      controller.NewContentController(s.content),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("rizhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ApplyConfig hot-applies the reloadable sections of a freshly read config.
// Anything bound at startup (routes, middleware limits, storage) needs a
// restart and is deliberately left alone.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.JWT = cfg.JWT
	a.Config.Email = cfg.Email
	logger.Log.Info("Config reloaded", zap.Strings("sections", []string{"jwt", "email"}))
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
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
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
}
