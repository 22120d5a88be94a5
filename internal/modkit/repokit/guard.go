package repokit

import (
	"context"
	"fmt"
	"time"

	"reviewsense/internal/platform/store"
)

// Pinger is a dependency that can prove it is reachable
type Pinger = store.Pinger

// Guarder checks every enabled store at once
type Guarder interface {
	Guard(context.Context) error
}

// DefaultPingTimeout bounds MustPing when ctx carries no deadline
const DefaultPingTimeout = 5 * time.Second

// MustPing panics naming the dependency when p is nil or does not answer
func MustPing(ctx context.Context, name string, p Pinger) {
	if p == nil {
		panic(fmt.Sprintf("%s: nil dependency", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPingTimeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		panic(fmt.Sprintf("%s ping failed: %v", name, err))
	}
}

// MustGuard panics when any store fails its startup check
func MustGuard(ctx context.Context, g Guarder) {
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
