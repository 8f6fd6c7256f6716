// Package tasklane wires the HTTP API of the project management service:
// authentication, workspaces, projects, the requirement hierarchy, tasks,
// sprints, team membership, invitations, leave, time tracking and the
// websocket notification feed. The persistence backend is chosen at startup
// and everything above it talks to the store interface.
package tasklane

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"tasklane/pkg/mail"
	"tasklane/pkg/models"
	"tasklane/pkg/store"
	"tasklane/pkg/store/memory"
	"tasklane/pkg/store/postgres"
	"tasklane/pkg/store/surrealdb"
)

// Config holds application configuration, populated from flags and the
// environment by Parse.
type Config struct {
	// Database configuration
	Backend       string // "surrealdb", "postgres" or "memory"
	PostgresDSN   string
	SurrealDBURL  string
	SurrealDBNS   string
	SurrealDBDB   string
	SurrealDBUser string
	SurrealDBPass string

	// Auth
	JWTSecret string

	// Mail
	SMTPAddr string
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	// BaseURL is the externally visible URL used in invitation links.
	BaseURL string

	ServerPort string
	ReadOnly   bool
}

// App holds the application state shared by every handler.
type App struct {
	store  store.Store
	config *Config
	log    zerolog.Logger
	mailer mail.Mailer
	hub    *Hub

	// sessions maps bearer tokens to authenticated users.
	sessions   map[string]*models.User
	sessionsMu sync.RWMutex
}

// New creates the application: connects the configured store backend, sets up
// the mailer and the notification hub.
func New(config *Config) (*App, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "tasklane").Logger()

	var appStore store.Store
	var err error

	switch config.Backend {
	case "surrealdb":
		appStore, err = surrealdb.New(
			config.SurrealDBURL,
			config.SurrealDBNS,
			config.SurrealDBDB,
			config.SurrealDBUser,
			config.SurrealDBPass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
		}
		logger.Info().Str("url", config.SurrealDBURL).Msg("connected to SurrealDB")
	case "postgres":
		appStore, err = postgres.New(config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		logger.Info().Msg("connected to PostgreSQL")
	case "memory":
		appStore = memory.New()
		logger.Warn().Msg("using in-memory store, data will not survive restart")
	default:
		return nil, fmt.Errorf("unknown backend: %s", config.Backend)
	}

	if config.ReadOnly {
		appStore = store.NewReadOnlyStore(appStore)
		logger.Info().Msg("store wrapped read-only")
	}

	var mailer mail.Mailer
	if config.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(config.SMTPAddr, config.SMTPFrom, config.SMTPUser, config.SMTPPass)
	} else {
		mailer = mail.NewLogMailer(logger)
	}

	app := &App{
		store:    appStore,
		config:   config,
		log:      logger,
		mailer:   mailer,
		hub:      NewHub(logger),
		sessions: make(map[string]*models.User),
	}
	return app, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store exposes the underlying store, used by tests to seed data.
func (a *App) Store() store.Store {
	return a.store
}

// getEnv returns the environment variable or a default when unset or empty.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
