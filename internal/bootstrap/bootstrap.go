package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	appControllers "github.com/yigit/mototransporte/internal/app/controllers"
	"github.com/yigit/mototransporte/internal/app/models"
	appRepos "github.com/yigit/mototransporte/internal/app/repositories"
	appRoutes "github.com/yigit/mototransporte/internal/app/routes"
	appServices "github.com/yigit/mototransporte/internal/app/services"
	"github.com/yigit/mototransporte/internal/config"
	"github.com/yigit/mototransporte/internal/db"
	appMiddleware "github.com/yigit/mototransporte/internal/middleware"
	"github.com/yigit/mototransporte/internal/pkg/filestorage"
	"github.com/yigit/mototransporte/internal/pkg/logger"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/seed"
	"github.com/yigit/mototransporte/internal/storage"
)

// DefaultConfigPath is read when no other path is given.
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Facade      storage.Facade
	Validator   *validation.Validator
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	FileStorage *filestorage.LocalStorage
	Locale      language.Tag
	Logger      zerolog.Logger
}

// Interaction carries the operator collaborators of the running front end.
type Interaction struct {
	Confirmer appServices.Confirmer
	Notifier  appServices.Notifier
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured key-value backend, wrapped with the quota.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (storage.KeyValueStore, error) {
	var store storage.KeyValueStore
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store = storage.NewMemoryStore()
	case config.StorageBolt:
		bolt, err := storage.OpenBolt(cfg.Storage.Path)
		if err != nil {
			lgr.Error().Err(err).Str("path", cfg.Storage.Path).Msg("Failed to open bolt store")
			return nil, err
		}
		store = bolt
	case config.StorageSQLite:
		sqlDB, err := db.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			lgr.Error().Err(err).Str("path", cfg.Storage.Path).Msg("Failed to open sqlite store")
			return nil, err
		}
		store = storage.NewSQLStore(sqlDB)
	case config.StoragePostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")
		store = storage.NewPostgresStore(database.Pool)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	lgr.Info().
		Str("driver", cfg.Storage.Driver).
		Int64("quotaBytes", cfg.Storage.QuotaBytes).
		Dur("latency", cfg.Storage.Latency).
		Msg("Storage ready")
	return storage.WithQuota(store, cfg.Storage.QuotaBytes), nil
}

// ParseLocale returns the supported language closest to s, Spanish when s is empty.
func ParseLocale(s string) language.Tag {
	if strings.TrimSpace(s) == "" {
		return language.Spanish
	}
	return validation.MatchLocale(s, language.Spanish)
}

// BuildDependencies starts the storage facade, loads every collection and wires
// repositories and services. The facade takes ownership of store.
func BuildDependencies(ctx context.Context, cfg *config.Config, store storage.KeyValueStore, in Interaction, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Locale: ParseLocale(cfg.Validation.DefaultLocale),
		Logger: lgr,
	}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Export.Directory)
	if err != nil {
		_ = store.Close()
		lgr.Error().Err(err).Msg("Failed to initialize export directory")
		return nil, fmt.Errorf("failed to initialize export directory: %w", err)
	}

	deps.Facade = storage.NewLocalFacade(store, cfg.Storage.Latency, logger.Component(lgr, "storage"))
	deps.Validator = validation.New(validation.Options{
		StrictNationalIDSuffix: cfg.Validation.StrictNationalIDSuffix,
	})
	deps.Repos = appRepos.NewRepositories(deps.Facade, deps.Validator, logger.Component(lgr, "repositories"))

	for name, err := range deps.Repos.LoadAll(ctx) {
		lgr.Warn().Err(err).Str("collection", name).Msg("Collection unreadable, starting empty")
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.Facade, deps.Validator, appServices.Options{
		Confirmer: in.Confirmer,
		Notifier:  in.Notifier,
		Locale:    deps.Locale,
		Logger:    logger.Component(lgr, "services"),
	})

	if cfg.Seed.OnStart {
		if err := seed.CreateDefaultData(ctx, deps.Services, deps.Validator, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return deps, nil
}

// Close drains pending storage operations and releases the backend.
func (d *Dependencies) Close() error {
	if d == nil || d.Facade == nil {
		return nil
	}
	return d.Facade.Close()
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component(lgr, "http")))
	router.Use(appMiddleware.Localize(deps.Locale))

	svc := deps.Services
	appRoutes.SetupRouter(router, appRoutes.Controllers{
		Students:  appControllers.NewEntityController(svc.StudentService, models.CollectionStudents),
		Drivers:   appControllers.NewEntityController(svc.DriverService, models.CollectionDrivers),
		Vehicles:  appControllers.NewEntityController(svc.VehicleService, models.CollectionVehicles),
		Routes:    appControllers.NewEntityController(svc.RouteService, models.CollectionRoutes),
		Dashboard: appControllers.NewDashboardController(svc.DashboardService),
		Backup:    appControllers.NewBackupController(svc.BackupService),
	})

	return router
}
