package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	emailPkg "attendci/internal/adapters/email"
	web "attendci/internal/adapters/http"
	"attendci/internal/adapters/storage"
	accountStore "attendci/internal/adapters/storage/account"
	classStore "attendci/internal/adapters/storage/class"
	enrollmentStore "attendci/internal/adapters/storage/enrollment"
	outboxStorePkg "attendci/internal/adapters/storage/outbox"
	paymentStore "attendci/internal/adapters/storage/payment"
	studentStore "attendci/internal/adapters/storage/student"
	teacherStore "attendci/internal/adapters/storage/teacher"
	"attendci/internal/adapters/uploads"
	"attendci/internal/application/orchestrators"
	"attendci/internal/config"
	"attendci/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Dir); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db, cfg.Database.Driver); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}
	slog.Info("database_ready", "driver", cfg.Database.Driver)

	acctStore := accountStore.NewSQLStore(db)
	outboxStore := outboxStorePkg.NewSQLStore(db)
	stores := &web.Stores{
		AccountStore:    acctStore,
		StudentStore:    studentStore.NewSQLStore(db),
		TeacherStore:    teacherStore.NewSQLStore(db),
		ClassStore:      classStore.NewSQLStore(db),
		EnrollmentStore: enrollmentStore.NewSQLStore(db),
		PaymentStore:    paymentStore.NewSQLStore(db),
	}

	// Seed the first admin account on an empty login table only.
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps,
		cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	artifacts, err := uploads.NewDir(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("failed to prepare uploads dir: %v", err)
	}

	var sender emailPkg.Sender
	if cfg.Email.APIKey != "" {
		sender = emailPkg.NewResendSender(cfg.Email.APIKey, cfg.Email.From)
		slog.Info("email_sender_ready", "kind", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.Env == "production" {
			slog.Warn("email_delivery_disabled", "reason", "ATTENDCI_RESEND_KEY not set")
		} else {
			slog.Info("email_sender_ready", "kind", "noop")
		}
	}
	dispatcher := &orchestrators.Dispatcher{
		Store:   outboxStore,
		Sender:  sender,
		ReplyTo: cfg.Email.ReplyTo,
	}

	// Background retries for emails whose first send attempt failed.
	retryDeps := orchestrators.OutboxRetryDeps{OutboxStore: outboxStore, Sender: sender}
	stopRetries := orchestrators.StartOutboxRetryScheduler(context.Background(), retryDeps,
		orchestrators.DefaultOutboxRetryConfig())
	defer stopRetries()

	web.SetProductionCookies(cfg.Env == "production")
	handler := web.NewMux(stores, artifacts, dispatcher, web.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimitPerSecond,
	})

	slog.Info("server_listening", "addr", cfg.Addr, "version", version)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
