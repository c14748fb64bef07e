package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stremini.backend/internal/config"
	"stremini.backend/internal/infrastructure/dataservice"
	"stremini.backend/internal/infrastructure/datasources/postgres"
	"stremini.backend/internal/infrastructure/email"
	"stremini.backend/internal/infrastructure/repositories"
	"stremini.backend/internal/interfaces/http/handlers"
	"stremini.backend/internal/interfaces/http/middleware"
	"stremini.backend/internal/usecases"
	"stremini.backend/pkg/jwt"
	"stremini.backend/pkg/logger"
	"stremini.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig, env string) (*gorm.DB, error) {
		sqlDB, err := postgres.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewGorm(sqlDB, env)
	}
	migrateDB       = dataservice.Migrate
	newSessionStore = redis.NewSessionStore
	runServer       = serveHTTP
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

// serveHTTP blocks until the server fails or ctx is cancelled, then drains in-flight requests.
func serveHTTP(ctx context.Context, r *gin.Engine, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database, cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	logger.Info(ctx, "Connected to PostgreSQL via GORM")

	if cfg.Database.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info(ctx, "Database migrated")
	}

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Remote data service: the normal client enforces row-level rules, the elevated one bypasses them
	authService := dataservice.NewAuthService(db, sessionStore, jwtService, cfg.Security.SessionTTL)
	dataClient := dataservice.NewClient(db)
	elevatedClient := dataservice.NewElevatedClient(db)
	uow := dataservice.NewUnitOfWork(db)

	waitlistRepo := repositories.NewWaitlistRepository(dataClient)
	teamRepo := repositories.NewTeamRepository(dataClient)
	blogRepo := repositories.NewBlogRepository(dataClient)

	emailClient := email.NewClient(cfg.Email.Endpoint, cfg.Email.Timeout)

	dashboards := usecases.NewDashboardRegistry(authService, waitlistRepo, teamRepo, blogRepo)
	defer dashboards.Close()

	authUsecase := usecases.NewAuthUsecase(authService, dashboards)
	invitationUsecase := usecases.NewInvitationUsecase(authService, elevatedClient)
	signupUsecase := usecases.NewWaitlistSignupUsecase(waitlistRepo, emailClient, cfg.Email)
	contentUsecase := usecases.NewContentUsecase(teamRepo, blogRepo, cfg.Blog.PageSize)

	if cfg.Bootstrap.AdminEmail != "" && cfg.Bootstrap.AdminPassword != "" {
		bootstrap := usecases.NewBootstrapUsecase(elevatedClient, uow)
		if _, err := bootstrap.EnsureSuperAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
			return fmt.Errorf("failed to bootstrap superadmin: %w", err)
		}
	}

	handlers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       handlers.NewAuthHandler(authUsecase, cfg.Security.SessionTTL, cfg.Server.Env == "production"),
		publicHandler:     handlers.NewPublicHandler(signupUsecase, contentUsecase),
		dashboardHandler:  handlers.NewDashboardHandler(dashboards),
		invitationHandler: handlers.NewInvitationHandler(invitationUsecase),
		sessionMiddleware: middleware.SessionMiddleware(authUsecase),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Stremini backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api/v1"),
	)
	if err := runServer(sigCtx, r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}
