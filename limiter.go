package vizboard

import (
	"sync"
	"time"
)

// LoginLimiter rate-limits failed admin logins per IP address.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoginLimiter creates a LoginLimiter that allows max failures per window.
// Call Stop to end its background sweep.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *LoginLimiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			for ip := range l.attempts {
				if l.pruneLocked(ip) == 0 {
					delete(l.attempts, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

// pruneLocked drops expired attempts for ip and returns how many remain.
func (l *LoginLimiter) pruneLocked(ip string) int {
	cutoff := l.now().Add(-l.window)
	hits := l.attempts[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.attempts[ip] = kept
	return len(kept)
}

// Check reports whether ip may attempt a login. It does not record anything.
func (l *LoginLimiter) Check(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pruneLocked(ip) < l.max
}

// Record registers a failed login attempt for ip.
func (l *LoginLimiter) Record(ip string) {
	l.mu.Lock()
	l.attempts[ip] = append(l.attempts[ip], l.now())
	l.mu.Unlock()
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
