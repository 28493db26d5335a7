package database

import (
	"context"
	"time"
)

// Pinger is any backing service that can report its reachability.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// CheckAll pings every dependency and returns the failures keyed by name.
func CheckAll(ctx context.Context, timeout time.Duration, deps ...Pinger) map[string]error {
	failures := make(map[string]error)
	for _, dep := range deps {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		if err := dep.Ping(pctx); err != nil {
			failures[dep.Name()] = err
		}
		cancel()
	}
	return failures
}
