package main

import (
	"context"

	"github.com/irfanbayu/keydash/internal"
	"github.com/irfanbayu/keydash/internal/handler"
	"github.com/irfanbayu/keydash/internal/service"
	"github.com/irfanbayu/keydash/internal/settings"
	"github.com/irfanbayu/keydash/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "modernc.org/sqlite"
)

func main() {
	settings.ReadDotenv(internal.DotEnvPath)
	settings.Settings = settings.NewSettings()

	var apiKeyStore store.APIKeyStore
	switch settings.Settings.DatabaseDriver {
	case settings.DriverPostgres:
		migrationDB := store.InitPostgresMigrationDB()
		store.RunMigrations(migrationDB, settings.DriverPostgres)
		migrationDB.Close()

		pool := store.InitPostgresPool(context.Background())
		defer pool.Close()
		apiKeyStore = store.NewAPIKeyPostgresStore(pool)
	default:
		rdb := store.InitDatabase(true)
		defer rdb.Close()
		rwdb := store.InitDatabase(false)
		defer rwdb.Close()
		store.RunMigrations(rwdb, settings.DriverSQLite)
		apiKeyStore = store.NewAPIKeySQLiteStore(rdb, rwdb)
	}

	apiKeySvc := service.NewAPIKeyService(apiKeyStore, service.NewRandomKeyGen())
	githubSvc := service.NewGitHubService(
		settings.Settings.GitHubAPIURL,
		settings.Settings.HTTPTimeout,
	)

	e := setupEcho()
	api := e.Group("/api")
	handler.SetupAPIKeyRoutes(api, apiKeySvc)
	handler.SetupValidationRoutes(api, apiKeySvc)
	handler.SetupGitHubSummarizerRoutes(api, apiKeySvc, githubSvc)

	internal.GracefulShutdown(e, settings.Settings.Port)
}

func setupEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(
		middleware.CORSWithConfig(internal.GetCORSConfig()),
		middleware.Recover(),
	)
	return e
}
