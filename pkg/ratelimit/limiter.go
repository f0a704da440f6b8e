// Package ratelimit throttles outbound calls with a sliding window quota and a
// minimum spacing between consecutive calls. Callers are delayed, never rejected.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type Config struct {
	// Calls is the quota of grants inside any rolling Period. Zero disables the window.
	Calls  int
	Period time.Duration
	// MinInterval is the minimum gap between two consecutive grants. Zero disables it.
	MinInterval time.Duration
}

func NewDefaultConfig() Config {
	return Config{
		Calls:       10,
		Period:      time.Minute,
		MinInterval: time.Second,
	}
}

type Option func(*Limiter)

func WithClock(c Clock) Option {
	return func(l *Limiter) {
		l.clock = c
	}
}

type Limiter struct {
	cfg   Config
	clock Clock

	// turn is held for the whole Acquire, sleeps included, so waiting callers
	// are served one at a time. Taking it honours ctx.
	turn chan struct{}

	mu      sync.Mutex
	calls   []time.Time
	spacing *rate.Limiter
}

func New(cfg Config, opts ...Option) *Limiter {
	l := &Limiter{
		cfg:   cfg,
		clock: systemClock{},
		turn:  make(chan struct{}, 1),
	}
	if cfg.MinInterval > 0 {
		l.spacing = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire blocks until a call is allowed by both the window quota and the
// minimum spacing, then records it. The only error is ctx being done.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.turn <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.turn }()

	if err := l.waitWindow(ctx); err != nil {
		return err
	}
	if err := l.waitSpacing(ctx); err != nil {
		return err
	}

	if l.cfg.Calls > 0 {
		l.mu.Lock()
		l.calls = append(l.calls, l.clock.Now())
		l.mu.Unlock()
	}
	return nil
}

// InWindow returns how many grants are inside the current window.
func (l *Limiter) InWindow() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(l.clock.Now())
	return len(l.calls)
}

func (l *Limiter) waitWindow(ctx context.Context) error {
	if l.cfg.Calls <= 0 {
		return nil
	}

	for {
		wait := l.windowWait()
		if wait <= 0 {
			return nil
		}
		if err := l.clock.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

func (l *Limiter) waitSpacing(ctx context.Context) error {
	if l.spacing == nil {
		return nil
	}

	now := l.clock.Now()
	r := l.spacing.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}

	if err := l.clock.Sleep(ctx, delay); err != nil {
		r.CancelAt(l.clock.Now())
		return err
	}
	return nil
}

// windowWait is how long until the window has room, zero when it has now.
func (l *Limiter) windowWait() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.evict(now)
	if len(l.calls) < l.cfg.Calls {
		return 0
	}
	// the oldest grant leaves the window at calls[0]+Period
	return max(l.calls[0].Add(l.cfg.Period).Sub(now), time.Nanosecond)
}

// evict drops grants that are no longer inside (now-Period, now].
func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-l.cfg.Period)
	i := 0
	for i < len(l.calls) && !l.calls[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.calls = append(l.calls[:0], l.calls[i:]...)
	}
}
