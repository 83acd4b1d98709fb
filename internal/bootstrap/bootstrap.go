package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	appControllers "github.com/mertc/notebook/internal/app/controllers"
	appMigrations "github.com/mertc/notebook/internal/app/migrations"
	appRepos "github.com/mertc/notebook/internal/app/repositories"
	appRoutes "github.com/mertc/notebook/internal/app/routes"
	appServices "github.com/mertc/notebook/internal/app/services"
	"github.com/mertc/notebook/internal/config"
	"github.com/mertc/notebook/internal/db"
	appMiddleware "github.com/mertc/notebook/internal/middleware"
	pkgAuth "github.com/mertc/notebook/internal/pkg/auth"
	"github.com/mertc/notebook/internal/pkg/filestorage"
	"github.com/mertc/notebook/internal/pkg/helpers"
	"github.com/mertc/notebook/internal/pkg/logger"
	"github.com/mertc/notebook/internal/pkg/summarizer"
	"github.com/mertc/notebook/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    filestorage.Storage
	Summarizer     *summarizer.Client
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	logger.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		logger.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool); err != nil {
		// Seeding problems should not keep the server from starting
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// newFileStorage builds the configured storage backend.
func newFileStorage(cfg *config.Config) (filestorage.Storage, error) {
	switch cfg.Storage.Backend {
	case "remote":
		logger.Info().Str("endpoint", cfg.Storage.RemoteEndpoint).Str("bucket", cfg.Storage.RemoteBucket).Msg("Using remote file storage")
		return filestorage.NewRemoteStorage(cfg.Storage.RemoteEndpoint, cfg.Storage.RemoteBucket, cfg.Storage.RemoteAPIKey), nil
	default:
		baseURL := cfg.Server.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:" + cfg.Server.Port
		}
		// Must match the static file route registered by the server
		storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local file storage: %w", err)
		}
		logger.Info().Str("path", cfg.Server.StoragePath).Msg("Using local file storage")
		return storage, nil
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = appRepos.NewRepositories(dbPool)

	fileStorage, err := newFileStorage(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, err
	}
	deps.FileStorage = fileStorage

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Summarizer = summarizer.NewClient(summarizer.Config{
		APIKey:  cfg.Summarizer.APIKey,
		BaseURL: cfg.Summarizer.BaseURL,
		Model:   cfg.Summarizer.Model,
	})
	if !deps.Summarizer.Configured() {
		logger.Warn().Msg("Summarizer API key not set; summarization endpoints will be unavailable")
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.FileStorage, deps.Summarizer, deps.JWTService)
	deps.Controllers = appControllers.NewControllers(deps.Services)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))
	// Leave headroom for multipart framing on top of the file cap
	router.Use(appMiddleware.MaxBodySize(filestorage.MaxFileSize + 1<<20))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
