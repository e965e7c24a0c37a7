package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"passdrop/internal/app"
)

func main() {
	cfg := app.LoadConfig()
	flag.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "listen address")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "file content directory")
	flag.DurationVar(&cfg.SessionTTL, "ttl", cfg.SessionTTL, "session time-to-live")
	flag.DurationVar(&cfg.SweepInterval, "sweep", cfg.SweepInterval, "expiry sweep interval")
	flag.Parse()

	d, err := app.NewDaemon(cfg)
	if err != nil {
		os.Stderr.WriteString("passdropd: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go d.Reaper.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           d.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	d.Log.Printf("listening on %s (ttl %s, sweep %s)", cfg.ListenAddr, cfg.SessionTTL, cfg.SweepInterval)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		d.Log.Fatal(err)
	}
}
