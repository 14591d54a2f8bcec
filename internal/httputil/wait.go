// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the provider client and
// the research queries.
package httputil

import (
	"context"
	"time"
)

// Waiter paces successive requests to the same provider. Implementations
// must return ctx.Err() if the context is cancelled while waiting.
type Waiter interface {
	Wait(ctx context.Context) error
}

// WaitFunc adapts an ordinary function to the Waiter interface.
type WaitFunc func(ctx context.Context) error

// Wait calls f(ctx).
func (f WaitFunc) Wait(ctx context.Context) error { return f(ctx) }

// FixedDelay waits for the same duration on every call.
type FixedDelay time.Duration

// Wait blocks for d or until ctx is done.
func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoWait never blocks. Tests use it to paginate without real delays.
var NoWait Waiter = WaitFunc(func(ctx context.Context) error { return ctx.Err() })
