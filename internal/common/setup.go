package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"novares-ledger-go/internal/authority"
	"novares-ledger-go/internal/compose"
	"novares-ledger-go/internal/database"
	"novares-ledger-go/internal/ledger"
	"novares-ledger-go/internal/metrics"
	"novares-ledger-go/internal/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	DbService *database.Service
	Ledger    *ledger.Service
	Metrics   *metrics.Collector
	Composer  *compose.MailComposer
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices opens the database, loads the ledger and seeds the
// founding members when the ledger is still empty.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector("")
	admin := authority.New(cfg.Admin)
	if !admin.Configured() {
		zap.L().Warn("Administrator credentials are not configured, admin operations will be refused")
	}

	ledgerService, err := ledger.New(ctx, dbService,
		ledger.WithAuthority(admin),
		ledger.WithMetrics(collector),
		ledger.WithStarterBalance(cfg.Ledger.StarterBalance))
	if err != nil {
		dbService.Close()
		return nil, err
	}

	if cfg.Ledger.SeedFile != "" {
		members, err := LoadFoundingMembers(cfg.Ledger.SeedFile)
		if err != nil {
			dbService.Close()
			return nil, err
		}
		created, err := ledgerService.SeedFoundingMembers(ctx, members)
		if err != nil {
			dbService.Close()
			return nil, fmt.Errorf("unable to seed founding members: %w", err)
		}
		zap.L().Info("Seed file processed", zap.String("file", cfg.Ledger.SeedFile), zap.Int("created", created))
	}

	return &Services{
		DbService: dbService,
		Ledger:    ledgerService,
		Metrics:   collector,
		Composer:  compose.NewMailComposer(cfg.Ledger.SupportEmail),
	}, nil
}

// InitializeDatabaseOnly initializes just the database service without the ledger engine.
// Useful for read-only reports
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	return database.NewService(ctx, cfg.Database)
}

// AdminContext authenticates the administrator and returns a context carrying the session
func (cs *Services) AdminContext(ctx context.Context, username, password, securityCode string) (context.Context, error) {
	session, err := cs.Ledger.AuthenticateAdmin(username, password, securityCode)
	if err != nil {
		return nil, err
	}
	return authority.WithSession(ctx, session), nil
}

func (cs *Services) Close() {
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
