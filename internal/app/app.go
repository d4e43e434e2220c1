package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"practice_hub_backend/internal/config"
	"practice_hub_backend/internal/controller"
	"practice_hub_backend/internal/form"
	"practice_hub_backend/internal/repository"
	"practice_hub_backend/internal/service"
	"practice_hub_backend/pkg/database"
	"practice_hub_backend/pkg/logger"
	"practice_hub_backend/pkg/monitoring"
	"practice_hub_backend/pkg/security"
	"practice_hub_backend/pkg/session"
	"practice_hub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions *session.Manager
}

type repositories struct {
	user       *repository.UserRepository
	tag        *repository.QuestionTagRepository
	question   *repository.QuestionRepository
	answer     *repository.AnswerRepository
	comment    *repository.CommentRepository
	evaluation *repository.EvaluationRepository
	audit      *repository.AuditLogRepository
}

type services struct {
	storage    service.StorageProvider
	auth       *service.AuthService
	user       *service.UserService
	question   *service.QuestionService
	answer     *service.AnswerService
	comment    *service.CommentService
	evaluation *service.EvaluationService
	tag        *service.QuestionTagService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	question   *controller.QuestionController
	comment    *controller.CommentController
	evaluation *controller.EvaluationController
	tag        *controller.QuestionTagController
	health     *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		tag:        repository.NewQuestionTagRepository(db),
		question:   repository.NewQuestionRepository(db),
		answer:     repository.NewAnswerRepository(db),
		comment:    repository.NewCommentRepository(db),
		evaluation: repository.NewEvaluationRepository(db),
		audit:      repository.NewAuditLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	s := &services{storage: storage}
	s.auth = service.NewAuthService(repos.user, a.Sessions, cfg)
	s.user = service.NewUserService(repos.user, repos.question, repos.audit, a.Sessions)
	s.question = service.NewQuestionService(repos.question, repos.tag, repos.audit, storage)
	s.answer = service.NewAnswerService(repos.answer)
	s.comment = service.NewCommentService(repos.comment, repos.audit)
	s.evaluation = service.NewEvaluationService(repos.evaluation, repos.comment, repos.question, repos.audit)
	s.tag = service.NewQuestionTagService(repos.tag)
	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, capsules form.CapsuleStore) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, a.Sessions, capsules),
		user:       controller.NewUserController(s.user, a.Sessions, capsules),
		question:   controller.NewQuestionController(s.question, s.answer, s.comment, a.Sessions, capsules),
		comment:    controller.NewCommentController(s.comment, a.Sessions),
		evaluation: controller.NewEvaluationController(s.evaluation, s.question, repos.comment, a.Sessions, capsules),
		tag:        controller.NewQuestionTagController(s.tag, a.Sessions, capsules),
		health:     controller.NewHealthController(a.DB),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Sessions: session.NewManager(rdb, cfg.Session.TTL),
	}

	repos := initRepositories(db)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	capsules := form.NewRedisCapsuleStore(rdb)
	controllers := app.initControllers(services, repos, capsules)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("practice-hub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type != "minio" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, os.ModePerm)
		}
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ReloadConfig swaps in a freshly loaded config, keeping the runtime
// flags the process was started with.
func (a *App) ReloadConfig(cfg *config.Config) {
	cfg.ForceMigrate = a.Config.ForceMigrate
	cfg.MigrateOnly = a.Config.MigrateOnly
	*a.Config = *cfg
	logger.Log.Info("Configuration reloaded")
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
