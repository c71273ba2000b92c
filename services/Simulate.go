package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Simulate stands in for a remote call: it waits d and then runs fn. Only
// the success path exists today, but fn returns an error so a real backend
// can fail through the same seam. Cancelling ctx abandons the wait.
func Simulate[T any](ctx context.Context, d time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return zero, err
	}
	return fn()
}

// InFlight is the "disabled button" of a simulated operation.
type InFlight struct {
	busy atomic.Bool
}

func (f *InFlight) Begin() bool {
	return f.busy.CompareAndSwap(false, true)
}

func (f *InFlight) End() {
	f.busy.Store(false)
}

func (f *InFlight) Busy() bool {
	return f.busy.Load()
}

type guards struct {
	m sync.Map
}

func (g *guards) For(key any) *InFlight {
	v, _ := g.m.LoadOrStore(key, &InFlight{})
	return v.(*InFlight)
}

func (g *guards) Drop(key any) {
	g.m.Delete(key)
}

// Delays of the simulated backend calls.
type Delays struct {
	Login     time.Duration
	AddToCart time.Duration
	Payment   time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Login:     time.Second,
		AddToCart: 500 * time.Millisecond,
		Payment:   2 * time.Second,
	}
}
