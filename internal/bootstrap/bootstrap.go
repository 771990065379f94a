package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/gradebook/internal/app/controllers"
	appMigrations "github.com/yigit/gradebook/internal/app/migrations"
	appRepos "github.com/yigit/gradebook/internal/app/repositories"
	appRoutes "github.com/yigit/gradebook/internal/app/routes"
	appServices "github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/config"
	"github.com/yigit/gradebook/internal/db"
	appMiddleware "github.com/yigit/gradebook/internal/middleware"
	pkgAuth "github.com/yigit/gradebook/internal/pkg/auth"
	"github.com/yigit/gradebook/internal/pkg/helpers"
	"github.com/yigit/gradebook/internal/pkg/logger"
	"github.com/yigit/gradebook/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Hasher         *pkgAuth.PasswordHasher
	JWTService     *pkgAuth.JWTService
	AuthService    *appServices.AuthService
	StudentService *appServices.StudentService
	GradeService   *appServices.GradeService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration from CONFIG_PATH (default
// configs/config.yaml) and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	return cfg, SetupLogger(cfg), nil
}

// SetupLogger configures the global zerolog logger from cfg and returns it
func SetupLogger(cfg *config.Config) zerolog.Logger {
	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return lgr
}

// SetupDatabase opens the configured database and applies migrations
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (db.Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrator, err := appMigrations.NewMigrator(database)
	if err != nil {
		database.Close()
		return nil, err
	}
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, and
// controllers, then seeds default data when enabled.
func BuildDependencies(ctx context.Context, cfg *config.Config, database db.Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)
	deps.Hasher = pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, pkgAuth.DefaultAccessTokenTTL),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.Hasher, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.GradeService = appServices.NewGradeService(deps.Repos.GradeRepository, deps.Repos.StudentRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.AuthService, lgr),
		User:    appControllers.NewUserController(deps.AuthService, lgr),
		Student: appControllers.NewStudentController(deps.StudentService, lgr),
		Grade:   appControllers.NewGradeController(deps.GradeService, lgr),
		Health:  appControllers.NewHealthController(database),
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, deps.Repos, deps.Hasher, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
