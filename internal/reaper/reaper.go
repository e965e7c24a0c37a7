package reaper

import (
	"context"
	"log"
	"time"
)

// Sweeper is the slice of the registry the reaper needs.
type Sweeper interface {
	CloseExpired(cutoff time.Time) int
}

// Reaper periodically closes sessions older than TTL.
type Reaper struct {
	reg      Sweeper
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	log      *log.Logger
}

// New returns a Reaper sweeping reg every interval with the given ttl.
func New(reg Sweeper, ttl, interval time.Duration, logger *log.Logger) *Reaper {
	return &Reaper{
		reg:      reg,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		log:      logger,
	}
}

// RunOnce performs a single sweep and returns how many sessions it closed.
func (r *Reaper) RunOnce() int {
	closed := r.reg.CloseExpired(r.now().Add(-r.ttl))
	if closed > 0 {
		r.log.Printf("reaper: closed %d expired session(s)", closed)
	}
	return closed
}

// Run sweeps immediately, then on every tick until ctx is done.
func (r *Reaper) Run(ctx context.Context) {
	r.RunOnce()

	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.RunOnce()
		}
	}
}
