package admin

import (
	"sync"
	"time"
)

// SuccessTTL is how long a success message stays visible.
const SuccessTTL = 3 * time.Second

// Banner is a transient success message. Every Set schedules its own clear,
// and each clear empties the banner regardless of later Sets.
type Banner struct {
	mu    sync.Mutex
	msg   string
	ttl   time.Duration
	after func(time.Duration, func())
}

func NewBanner(ttl time.Duration, after func(time.Duration, func())) *Banner {
	if after == nil {
		after = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	return &Banner{ttl: ttl, after: after}
}

func (b *Banner) Set(msg string) {
	b.mu.Lock()
	b.msg = msg
	b.mu.Unlock()
	b.after(b.ttl, func() {
		b.mu.Lock()
		b.msg = ""
		b.mu.Unlock()
	})
}

func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg
}
