package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"campusgate/internal/auth"
	"campusgate/internal/config"
	"campusgate/internal/db"
	"campusgate/internal/degreecourses"
	"campusgate/internal/httpserver"
	"campusgate/internal/logging"
	"campusgate/internal/students"
	"campusgate/internal/users"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.LogFormat)

	dbConn, err := db.Open(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()

	if err := db.ApplySchema(ctx, dbConn, "sql/schema.sql"); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	userStore := auth.NewStore(dbConn)
	if cfg.SeedPath != "" {
		if err := userStore.SeedFromFile(ctx, cfg.SeedPath); err != nil {
			log.Fatalf("seed users: %v", err)
		}
	}
	bootstrapAdmin(ctx, cfg, userStore, logger)

	authSvc := auth.NewService(userStore, cfg.JWTSecret, cfg.TokenTTL)

	userHandler := users.NewHandler(userStore, logger)
	courseHandler := degreecourses.NewHandler(degreecourses.NewStore(dbConn), logger)
	studentHandler := students.NewHandler(students.NewStore(dbConn), logger)

	handler := httpserver.NewRouter(logger, cfg, authSvc, userHandler, courseHandler, studentHandler)
	server := httpserver.New(cfg, handler, logger)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// bootstrapAdmin makes sure an administrator account exists. Without a
// configured password it generates one in development (logged once) and does
// nothing in production.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, store *auth.Store, logger *slog.Logger) {
	password := cfg.BootstrapAdminPassword
	generated := false
	if password == "" {
		if cfg.IsProduction() {
			logger.Info("bootstrap admin skipped, BOOTSTRAP_ADMIN_PASSWORD not set")
			return
		}
		password = randomPassword()
		generated = true
	}
	created, err := store.EnsureAdmin(ctx, cfg.BootstrapAdmin, password)
	if err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}
	if created && generated {
		logger.Warn("bootstrap administrator created with generated password",
			"userID", cfg.BootstrapAdmin, "password", password)
	} else if created {
		logger.Info("bootstrap administrator created", "userID", cfg.BootstrapAdmin)
	}
}

func randomPassword() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generate bootstrap password: %v", err)
	}
	return hex.EncodeToString(buf)
}
