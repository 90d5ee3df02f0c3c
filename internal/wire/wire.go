// Package wire provides dependency injection for the minutes application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/minutes/internal/adapters/cli"
	"github.com/example/minutes/internal/adapters/extractor"
	"github.com/example/minutes/internal/adapters/license"
	"github.com/example/minutes/internal/adapters/sqlite"
	"github.com/example/minutes/internal/app"
	"github.com/example/minutes/internal/config"
	"github.com/example/minutes/internal/db"
	"github.com/example/minutes/internal/ports/primary"
)

var (
	cfg               *config.Config
	logger            *zap.Logger
	licenseGate       *license.Gate
	meetingService    primary.MeetingService
	noteService       primary.NoteService
	actionService     primary.ActionService
	agendaService     primary.AgendaService
	extractionService primary.ExtractionService
	once              sync.Once
)

// MeetingService returns the singleton MeetingService instance.
func MeetingService() primary.MeetingService {
	once.Do(initServices)
	return meetingService
}

// NoteService returns the singleton NoteService instance.
func NoteService() primary.NoteService {
	once.Do(initServices)
	return noteService
}

// ActionService returns the singleton ActionService instance.
func ActionService() primary.ActionService {
	once.Do(initServices)
	return actionService
}

// AgendaService returns the singleton AgendaService instance.
func AgendaService() primary.AgendaService {
	once.Do(initServices)
	return agendaService
}

// ExtractionService returns the singleton ExtractionService instance.
func ExtractionService() primary.ExtractionService {
	once.Do(initServices)
	return extractionService
}

// LicenseGate returns the singleton license gate, for the license commands.
func LicenseGate() *license.Gate {
	once.Do(initServices)
	return licenseGate
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.Dir()
	if err != nil {
		log.Fatalf("failed to locate config directory: %v", err)
	}
	cfg, err = config.Load(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger = buildLogger()

	database, err := db.Open(filepath.Join(cfg.DataDir, "minutes.db"))
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) - sqlite adapters with injected DB
	meetingRepo := sqlite.NewMeetingRepository(database)
	noteRepo := sqlite.NewNoteRepository(database)
	actionRepo := sqlite.NewActionRepository(database)
	agendaRepo := sqlite.NewAgendaRepository(database)
	ledgerRepo := sqlite.NewLedgerRepository(database)
	pendingRepo := sqlite.NewPendingRepository(database)

	licenseGate = license.NewGate(dir, cfg.TrialDays, nil)
	remote := extractor.NewClient(cfg.ServiceURL, licenseGate, logger)
	status := cliadapter.NewStatusSurface(os.Stdout)

	extractionService = app.NewExtractionService(
		meetingRepo, noteRepo, actionRepo, agendaRepo, ledgerRepo, pendingRepo,
		licenseGate, remote, status, nil, logger,
		app.ExtractionConfig{
			Debounce:    cfg.Debounce(),
			MaxAttempts: cfg.MaxAttempts,
			RetryDelays: cfg.RetryDelays(),
		},
	)

	meetingService = app.NewMeetingService(meetingRepo, ledgerRepo, pendingRepo, nil, logger)
	noteService = app.NewNoteService(meetingRepo, noteRepo, extractionService, nil, logger)
	actionService = app.NewActionService(actionRepo, nil, logger)
	agendaService = app.NewAgendaService(meetingRepo, agendaRepo, nil, logger)
}

// buildLogger creates the process logger. Logs go to stderr so they never
// interleave with command output; MINUTES_DEBUG=1 enables debug level.
func buildLogger() *zap.Logger {
	if os.Getenv("MINUTES_DEBUG") == "" {
		return zap.NewNop()
	}
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{"stderr"}
	l, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
