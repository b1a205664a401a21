package handler

import (
	"context"
	"time"

	analyticsdomain "surety/internal/domain/analytics"
	assetsdomain "surety/internal/domain/assets"
	backupdomain "surety/internal/domain/backup"
	insurersdomain "surety/internal/domain/insurers"
	membersdomain "surety/internal/domain/members"
	policiesdomain "surety/internal/domain/policies"
	settingsdomain "surety/internal/domain/settings"
	"surety/pkg/logger"
)

// Pinger reports whether the database is reachable.
type Pinger func(ctx context.Context) error

type Services struct {
	Members   *membersdomain.Service
	Insurers  *insurersdomain.Service
	Assets    *assetsdomain.Service
	Policies  *policiesdomain.Service
	Settings  *settingsdomain.Service
	Backup    *backupdomain.Service
	Analytics *analyticsdomain.Service
	Ping      Pinger
	// Version is reported by /live.
	Version string
	// MaxBackupBytes caps restore uploads; zero means DefaultMaxBackupBytes.
	MaxBackupBytes int64
}

type Handlers struct {
	Members   *membersdomain.Service
	Insurers  *insurersdomain.Service
	Assets    *assetsdomain.Service
	Policies  *policiesdomain.Service
	Settings  *settingsdomain.Service
	Backup    *backupdomain.Service
	Analytics *analyticsdomain.Service
	ping      Pinger
	log       logger.Logger

	version        string
	startedAt      time.Time
	maxBackupBytes int64
}

func New(services Services, log logger.Logger) *Handlers {
	maxBackupBytes := services.MaxBackupBytes
	if maxBackupBytes <= 0 {
		maxBackupBytes = DefaultMaxBackupBytes
	}
	return &Handlers{
		Members:   services.Members,
		Insurers:  services.Insurers,
		Assets:    services.Assets,
		Policies:  services.Policies,
		Settings:  services.Settings,
		Backup:    services.Backup,
		Analytics: services.Analytics,
		ping:      services.Ping,
		log:       log,

		version:        services.Version,
		startedAt:      time.Now(),
		maxBackupBytes: maxBackupBytes,
	}
}
