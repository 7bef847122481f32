// Package daemon boots the service: logging, database, schema migration,
// seeding and the web service.
package daemon

import (
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/cleardesk/cleardesk/internal/config"
	"github.com/cleardesk/cleardesk/internal/db/dsn"
	"github.com/cleardesk/cleardesk/internal/db/models"
	"github.com/cleardesk/cleardesk/internal/logger"
	"github.com/cleardesk/cleardesk/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(d.cfg.ListenAddr())
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logging")
		return nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.Organization{},
		&models.ClearingAccount{},
		&models.Desk{},
		&models.User{},
		&models.Role{},
		&models.RoleAssignment{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db),
	}
}

func openDialector(cfg *config.Config) gorm.Dialector {
	if cfg.DB.GormEngine == config.EngineSQLite {
		return sqlite.Open(cfg.DB.File)
	}

	return gormmysql.Open(dsn.Create(cfg))
}
