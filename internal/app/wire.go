package app

import (
	"log"
	"net/http"
	"os"

	"passdrop/internal/client"
	"passdrop/internal/domain"
	"passdrop/internal/reaper"
	"passdrop/internal/registry"
	"passdrop/internal/server"
	"passdrop/internal/store"
	"passdrop/internal/transfer"
)

// Daemon bundles the server-side dependency graph.
type Daemon struct {
	Registry domain.Registry
	Reaper   *reaper.Reaper
	Handler  http.Handler
	Log      *log.Logger
}

// NewDaemon constructs the daemon graph from cfg.
func NewDaemon(cfg Config) (*Daemon, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, err
	}
	logger := log.New(os.Stderr, "passdropd ", log.LstdFlags)

	blobs := transfer.NewStore(cfg.DataDir, cfg.MaxUploadBytes)
	reg := registry.New(blobs, logger)
	rp := reaper.New(reg, cfg.SessionTTL, cfg.SweepInterval, logger)
	srv := server.New(reg, cfg.MaxUploadBytes, logger)

	return &Daemon{
		Registry: reg,
		Reaper:   rp,
		Handler:  srv.Handler(),
		Log:      logger,
	}, nil
}

// CLI bundles what the command tree needs.
type CLI struct {
	API      *client.Client
	Sessions domain.ClientSessionStore
}

// NewCLI constructs the client-side graph from cfg.
func NewCLI(cfg Config) (*CLI, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}
	return &CLI{
		API:      client.New(cfg.ServerURL, cfg.HTTP),
		Sessions: store.NewSessionFileStore(cfg.Home),
	}, nil
}
