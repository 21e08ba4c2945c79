package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vitalog/vitalog/internal/api"
	"github.com/vitalog/vitalog/internal/app"
	"github.com/vitalog/vitalog/internal/app/maintenance"
	"github.com/vitalog/vitalog/internal/database"
	"github.com/vitalog/vitalog/internal/notify"
	"github.com/vitalog/vitalog/internal/realtime"
	"github.com/vitalog/vitalog/internal/services"
	"github.com/vitalog/vitalog/pkg/logger"
	"github.com/vitalog/vitalog/pkg/mail"
)

// runtimeStack bundles long-lived components used by the HTTP server.
type runtimeStack struct {
	DB        *gorm.DB
	Hub       *realtime.Hub
	Scheduler *notify.Scheduler
	Cleaner   *maintenance.Cleaner
	Router    *gin.Engine
}

// bootstrapRuntime initialises the database, the reminder pipeline, background
// maintenance and the HTTP router.
func bootstrapRuntime(cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	users, err := services.NewUserService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise user service: %w", err)
	}
	settings, err := services.NewSettingsService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise settings service: %w", err)
	}
	store, err := services.NewNotificationService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise notification service: %w", err)
	}
	activities, err := services.NewActivityService(stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise activity service: %w", err)
	}
	snapshots, err := services.NewContextService(stack.DB, activities)
	if err != nil {
		return nil, fmt.Errorf("initialise context service: %w", err)
	}

	stack.Hub = realtime.NewHub()

	mailer := buildMailer(cfg, log)
	dispatcher := notify.NewDispatcher(
		[]notify.Channel{
			notify.NewInAppChannel(stack.Hub),
			notify.NewEmailChannel(mailer),
		},
		notify.WithSendTimeout(cfg.Notifications.SendTimeout),
	)

	dedup := notify.NewDedupCache(cfg.Notifications.DedupWindow)
	generator := notify.NewGenerator(dedup)

	stack.Scheduler, err = notify.NewScheduler(
		users, settings, snapshots, store, generator, dispatcher,
		notify.WithWorkers(cfg.Notifications.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("initialise scheduler: %w", err)
	}

	if cfg.Maintenance.Enabled {
		stack.Cleaner = maintenance.NewCleaner(dedup, store,
			maintenance.WithRetentionDays(cfg.Maintenance.RetentionDays),
		)
		if err := stack.Cleaner.Start(); err != nil {
			return nil, fmt.Errorf("start maintenance jobs: %w", err)
		}
	}

	stack.Router, err = api.NewRouter(stack.DB, stack.Scheduler, dispatcher, stack.Hub)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	if cfg.Notifications.Enabled {
		stack.Scheduler.Start(cfg.Notifications.IntervalMinutes)
	}

	success = true
	return stack, nil
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Scheduler != nil {
		s.Scheduler.Stop()
	}

	if s.Cleaner != nil {
		stopCtx := s.Cleaner.Stop()
		if stopCtx != nil {
			ctx = stopCtx
		}
		if err := s.Cleaner.RunOnce(ctx); err != nil {
			log.Warn("maintenance shutdown cleanup failed", zap.Error(err))
		}
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

// buildMailer returns the SMTP mailer when configured, otherwise a log-only
// substitute so email delivery stays observable in development.
func buildMailer(cfg *app.Config, log *zap.Logger) mail.Mailer {
	if cfg.Email.SMTP.Enabled {
		mailer, err := mail.NewSMTPMailer(cfg.Email.SMTPSettings())
		if err == nil {
			return mailer
		}
		log.Warn("smtp configuration invalid; falling back to log-only mailer", zap.Error(err))
	}
	return mail.NewLogMailer(logger.WithModule("mail"))
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	logger.WithModule("database").Info("database connected",
		zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))),
	)

	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:   strings.TrimSpace(cfg.Database.Path),
		DSN:    strings.TrimSpace(cfg.Database.DSN),
	}

	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		dbCfg.Host = strings.TrimSpace(cfg.Database.Postgres.Host)
		dbCfg.Port = cfg.Database.Postgres.Port
		dbCfg.Name = strings.TrimSpace(cfg.Database.Postgres.Database)
		dbCfg.User = strings.TrimSpace(cfg.Database.Postgres.Username)
		dbCfg.Password = strings.TrimSpace(cfg.Database.Postgres.Password)
	case "mysql":
		dbCfg.Host = strings.TrimSpace(cfg.Database.MySQL.Host)
		dbCfg.Port = cfg.Database.MySQL.Port
		dbCfg.Name = strings.TrimSpace(cfg.Database.MySQL.Database)
		dbCfg.User = strings.TrimSpace(cfg.Database.MySQL.Username)
		dbCfg.Password = strings.TrimSpace(cfg.Database.MySQL.Password)
	default:
		// Leave driver as-is to surface unsupported driver error during open.
	}

	return dbCfg
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
