// Package wire provides dependency injection for the lifeassist application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/RobotsBuildingEducation/life-assistant-sub000/internal/adapters/cli"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/adapters/httpapi"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/adapters/push"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/adapters/sqlite"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/app"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/config"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/db"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

var (
	configPath string

	cfg            *config.Config
	logger         *log.Logger
	userService    primary.UserService
	choreService   primary.ChoreService
	sessionService primary.SessionService
	sweepService   primary.SweepService
	once           sync.Once
)

// SetConfigPath selects the config file used on first initialization.
// It has no effect once services exist.
func SetConfigPath(path string) {
	configPath = path
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the shared operational logger.
func Logger() *log.Logger {
	once.Do(initServices)
	return logger
}

// UserService returns the singleton UserService instance.
func UserService() primary.UserService {
	once.Do(initServices)
	return userService
}

// ChoreService returns the singleton ChoreService instance.
func ChoreService() primary.ChoreService {
	once.Do(initServices)
	return choreService
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	once.Do(initServices)
	return sessionService
}

// SweepService returns the singleton SweepService instance.
func SweepService() primary.SweepService {
	once.Do(initServices)
	return sweepService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	logger = log.New(os.Stderr, "lifeassist: ", log.LstdFlags)

	loaded, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg = loaded

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	logWriter := sqlite.NewLogWriterAdapter(sqlite.NewActivityLogRepository(database))
	userRepo := sqlite.NewUserRepository(database, logWriter)
	choreRepo := sqlite.NewChoreRepository(database, logWriter)
	sessionRepo := sqlite.NewSessionRepository(database, logWriter)

	clock := secondary.SystemClock{}
	executor := app.NewEffectExecutor(newDispatcher(cfg.Push), sessionRepo, logger)

	// Create services (primary ports implementation)
	userService = app.NewUserService(userRepo, clock)
	choreService = app.NewChoreService(choreRepo, userRepo, clock)
	sessionService = app.NewSessionService(sessionRepo, userRepo, executor, clock)
	sweepService = app.NewSweepService(userRepo, sessionRepo, executor, clock, cfg.Sweep.ExpiryThreshold, logger)
}

func newDispatcher(pc config.PushConfig) secondary.PushDispatcher {
	if pc.Driver == config.PushDriverHTTP {
		return push.NewHTTPDispatcher(pc.Endpoint, pc.AuthToken, pc.Timeout)
	}
	return push.NewConsoleDispatcher(os.Stdout)
}

// HTTPServer returns a new gin API server over the singleton services.
func HTTPServer() *httpapi.Server {
	once.Do(initServices)
	return httpapi.NewServer(userService, choreService, sessionService, sweepService)
}

// UserAdapter returns a new UserAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func UserAdapter() *cliadapter.UserAdapter {
	return UserAdapterWithOutput(os.Stdout)
}

// UserAdapterWithOutput returns a new UserAdapter writing to the given output.
func UserAdapterWithOutput(out io.Writer) *cliadapter.UserAdapter {
	once.Do(initServices)
	return cliadapter.NewUserAdapter(userService, out)
}

// ChoreAdapter returns a new ChoreAdapter writing to stdout.
func ChoreAdapter() *cliadapter.ChoreAdapter {
	return ChoreAdapterWithOutput(os.Stdout)
}

// ChoreAdapterWithOutput returns a new ChoreAdapter writing to the given output.
func ChoreAdapterWithOutput(out io.Writer) *cliadapter.ChoreAdapter {
	once.Do(initServices)
	return cliadapter.NewChoreAdapter(choreService, out)
}

// SessionAdapter returns a new SessionAdapter writing to stdout.
func SessionAdapter() *cliadapter.SessionAdapter {
	return SessionAdapterWithOutput(os.Stdout)
}

// SessionAdapterWithOutput returns a new SessionAdapter writing to the given output.
func SessionAdapterWithOutput(out io.Writer) *cliadapter.SessionAdapter {
	once.Do(initServices)
	return cliadapter.NewSessionAdapter(sessionService, out)
}

// SweepAdapter returns a new SweepAdapter writing to stdout.
func SweepAdapter() *cliadapter.SweepAdapter {
	return SweepAdapterWithOutput(os.Stdout)
}

// SweepAdapterWithOutput returns a new SweepAdapter writing to the given output.
func SweepAdapterWithOutput(out io.Writer) *cliadapter.SweepAdapter {
	once.Do(initServices)
	return cliadapter.NewSweepAdapter(sweepService, out)
}
