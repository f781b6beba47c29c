// Package ratelimit limits requests per client using golang.org/x/time/rate token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int // requests per minute; 0 when unlimited
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	perMin   int
	lastSeen time.Time
}

// Limiter manages one token bucket per client, endpoint and method.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a new rate limiter. A nil config allows 60 requests per
// minute with a burst of 20. When enabled, a background goroutine evicts idle
// visitors until Stop is called.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:           true,
			RequestsPerMinute: 60,
			Burst:             20,
			CleanupInterval:   5 * time.Minute,
			IdleTimeout:       time.Hour,
		}
	}

	l := &Limiter{
		config:   config,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.stop = make(chan struct{})
		l.done = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}

	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	key := clientID
	if ec == nil {
		ec = &EndpointConfig{RequestsPerMinute: l.config.RequestsPerMinute, Burst: l.config.Burst}
	} else {
		// Overridden endpoints get their own bucket.
		key = clientID + ":" + method + ":" + ec.Path
	}
	if ec.RequestsPerMinute <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	v := l.visitor(key, ec, now)

	allowed := v.limiter.AllowN(now, 1)
	tokens := v.limiter.TokensAt(now)
	perSecond := float64(v.limiter.Limit())

	info := Info{
		Allowed:   allowed,
		Limit:     v.perMin,
		Remaining: max(int(tokens), 0),
		ResetTime: now,
	}
	if missing := float64(v.limiter.Burst()) - tokens; missing > 0 {
		info.ResetTime = now.Add(time.Duration(missing / perSecond * float64(time.Second)))
	}
	if !allowed {
		info.RetryAfter = time.Duration((1 - tokens) / perSecond * float64(time.Second))
	}
	return allowed, info
}

func (l *Limiter) visitor(key string, ec *EndpointConfig, now time.Time) *visitor {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		burst := ec.Burst
		if burst <= 0 {
			burst = ec.RequestsPerMinute
		}
		v = &visitor{
			limiter: rate.NewLimiter(rate.Limit(float64(ec.RequestsPerMinute)/60), burst),
			perMin:  ec.RequestsPerMinute,
		}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v
}

func (l *Limiter) cleanup(interval time.Duration) {
	defer close(l.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops visitors that have not been seen within the idle timeout.
func (l *Limiter) evictIdle() {
	idle := l.config.IdleTimeout
	if idle <= 0 {
		idle = time.Hour
	}
	cutoff := l.now().Add(-idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
}

// Len returns the number of tracked visitors.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Stop stops the cleanup goroutine and waits for it to exit. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.stop != nil {
			close(l.stop)
			<-l.done
		}
	})
}
