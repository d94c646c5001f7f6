// Package ratelimit throttles the stage routes per client with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Decision describes the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// bucket refills continuously at rate tokens per second up to capacity.
type bucket struct {
	capacity float64
	rate     float64
	tokens   float64
	last     time.Time
}

func (b *bucket) take(now time.Time) (ok bool, remaining int, full time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.last).Seconds()*b.rate)
	b.last = now
	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}
	full = now.Add(time.Duration((b.capacity - b.tokens) / b.rate * float64(time.Second)))
	return ok, int(b.tokens), full
}

// nextToken is the wait until one token is available again.
func (b *bucket) nextToken() time.Duration {
	if b.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
}

type entry struct {
	bucket   *bucket
	lastSeen time.Time
}

// Limiter keeps one bucket per client, method and path.
type Limiter struct {
	cfg *Config
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter. A nil config disables limiting.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{}
	}
	l := &Limiter{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*entry),
		stop:    make(chan struct{}),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.sweepLoop(cfg.CleanupInterval)
	}
	return l
}

// Allow records a request from clientID and reports whether it may proceed.
func (l *Limiter) Allow(clientID, method, path string) Decision {
	if !l.cfg.Enabled || l.cfg.Allow[clientID] {
		return Decision{Allowed: true}
	}
	if l.cfg.Deny[clientID] {
		return Decision{}
	}
	rule, limited := l.cfg.ruleFor(method, path)
	if !limited {
		return Decision{Allowed: true}
	}

	key := clientID + " " + method + " " + path
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{bucket: &bucket{
			capacity: float64(rule.Burst),
			rate:     float64(rule.Limit) / rule.Window.Seconds(),
			tokens:   float64(rule.Burst),
			last:     now,
		}}
		l.entries[key] = e
	}
	e.lastSeen = now

	allowed, remaining, full := e.bucket.take(now)
	d := Decision{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetAt:   full,
	}
	if !allowed {
		d.RetryAfter = e.bucket.nextToken()
	}
	return d
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets idle for longer than IdleTTL (one hour by default).
func (l *Limiter) sweep() {
	ttl := l.cfg.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}
