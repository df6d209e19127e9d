// Package notice holds the transient banner shown after user actions. A notice
// is visible until its TTL elapses; there is no history.
package notice

import (
	"sync"
	"time"
)

type Kind string

const (
	// KindAlert is the message banner ("Your cart is empty.", storage failures).
	KindAlert Kind = "alert"
	// KindBump acknowledges an item being added to the cart.
	KindBump Kind = "bump"
)

const (
	DefaultAlertTTL = 3 * time.Second
	DefaultBumpTTL  = 300 * time.Millisecond
)

type Notice struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Board keeps the latest notice of each kind.
type Board struct {
	mu      sync.Mutex
	now     func() time.Time
	ttl     map[Kind]time.Duration
	current map[Kind]Notice
}

// NewBoard builds a board whose alerts last alertTTL. clock may be nil.
func NewBoard(alertTTL time.Duration, clock func() time.Time) *Board {
	if alertTTL <= 0 {
		alertTTL = DefaultAlertTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &Board{
		now:     clock,
		ttl:     map[Kind]time.Duration{KindAlert: alertTTL, KindBump: DefaultBumpTTL},
		current: make(map[Kind]Notice),
	}
}

// Post replaces the notice of the given kind.
func (b *Board) Post(kind Kind, message string) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	ttl, ok := b.ttl[kind]
	if !ok {
		ttl = DefaultAlertTTL
	}
	n := Notice{Kind: kind, Message: message, ExpiresAt: b.now().Add(ttl)}
	b.current[kind] = n
	return n
}

// Alert posts a KindAlert notice.
func (b *Board) Alert(message string) Notice {
	return b.Post(KindAlert, message)
}

// Active returns the unexpired notice of kind, dropping it once expired.
func (b *Board) Active(kind Kind) (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.current[kind]
	if !ok {
		return Notice{}, false
	}
	if !b.now().Before(n.ExpiresAt) {
		delete(b.current, kind)
		return Notice{}, false
	}
	return n, true
}

// All returns every active notice, alerts first.
func (b *Board) All() []Notice {
	out := []Notice{}
	for _, kind := range []Kind{KindAlert, KindBump} {
		if n, ok := b.Active(kind); ok {
			out = append(out, n)
		}
	}
	return out
}
