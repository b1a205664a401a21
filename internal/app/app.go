package app

import (
	"context"
	"net/http"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
	"surety/internal/config"
	"surety/internal/db"
	analyticsdomain "surety/internal/domain/analytics"
	assetsdomain "surety/internal/domain/assets"
	backupdomain "surety/internal/domain/backup"
	insurersdomain "surety/internal/domain/insurers"
	membersdomain "surety/internal/domain/members"
	policiesdomain "surety/internal/domain/policies"
	settingsdomain "surety/internal/domain/settings"
	assetsrepo "surety/internal/repository/sqlite/assets"
	backuprepo "surety/internal/repository/sqlite/backup"
	insurersrepo "surety/internal/repository/sqlite/insurers"
	membersrepo "surety/internal/repository/sqlite/members"
	policiesrepo "surety/internal/repository/sqlite/policies"
	settingsrepo "surety/internal/repository/sqlite/settings"
	"surety/internal/transport/httpserver"
	"surety/internal/transport/httpserver/handler"
	"surety/internal/transport/mcpserver"
	"surety/pkg/logger"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	db         *gorm.DB
	httpServer *http.Server
	mcpServer  *mcpsdk.Server
	backup     *backupdomain.Service
}

// New opens and migrates the database and wires every service, the MCP
// server and the HTTP server on top of it.
func New(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database", "path", cfg.DB.Path, "profile", cfg.DB.Profile)
	dbConn, err := db.NewSQLite(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}
	sqlDB, err := dbConn.DB()
	if err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}

	memberRepo := membersrepo.NewSQLite(dbConn)
	insurerRepo := insurersrepo.NewSQLite(dbConn)
	assetRepo := assetsrepo.NewSQLite(dbConn)
	policyRepo := policiesrepo.NewSQLite(dbConn)
	settingRepo := settingsrepo.NewSQLite(dbConn)

	settingsService := settingsdomain.NewService(settingRepo)
	analyticsService := analyticsdomain.NewService(memberRepo, policyRepo, assetRepo, insurerRepo)
	backupService := backupdomain.NewService(backuprepo.NewSQLite(dbConn))

	log.Info("app: initializing mcp server", "name", cfg.MCP.Name, "version", cfg.MCP.Version)
	guard := mcpserver.NewGuard(settingsService, cfg.MCP.SettingsURL)
	mcpServer := mcpserver.New(cfg.MCP, analyticsService, guard, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, "surety"),
	)

	handlers := handler.New(handler.Services{
		Members:   membersdomain.NewService(memberRepo),
		Insurers:  insurersdomain.NewService(insurerRepo),
		Assets:    assetsdomain.NewService(assetRepo),
		Policies:  policiesdomain.NewService(policyRepo),
		Settings:  settingsService,
		Backup:    backupService,
		Analytics: analyticsService,
		Ping: func(ctx context.Context) error {
			return sqlDB.PingContext(ctx)
		},
		Version: cfg.MCP.Version,
	}, log.With("component", "http"))

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, httpserver.Options{
		MCP:      mcpserver.HTTPHandler(mcpServer),
		Registry: registry,
	})

	return &App{
		cfg:        cfg,
		log:        log,
		db:         dbConn,
		httpServer: httpserver.New(cfg, router),
		mcpServer:  mcpServer,
		backup:     backupService,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) MCPServer() *mcpsdk.Server {
	return a.mcpServer
}

func (a *App) Backup() *backupdomain.Service {
	return a.backup
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return db.Close(a.db)
}
