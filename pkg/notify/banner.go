package notify

import (
	"sync"
	"time"
)

// Banner is a single status line that hides itself [BannerTimeout] after the
// last message was shown.
type Banner struct {
	now     func() time.Time
	current Notification
	mu      sync.Mutex
	shown   bool
}

// NewBanner creates a [Banner]. When now is nil, [time.Now] is used.
func NewBanner(now func() time.Time) *Banner {
	if now == nil {
		now = time.Now
	}

	return &Banner{now: now}
}

// Show replaces the banner message.
func (b *Banner) Show(message string, level Level) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now
	if b.now != nil {
		now = b.now
	}

	b.current = Notification{Message: message, Level: level, At: now()}
	b.shown = true
}

// Notify implements [Notifier].
func (b *Banner) Notify(message string, level Level) {
	b.Show(message, level)
}

// Current returns the visible message at time now.
func (b *Banner) Current(now time.Time) (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.shown || now.Sub(b.current.At) >= BannerTimeout {
		return Notification{}, false
	}

	return b.current, true
}

// Hide clears the banner.
func (b *Banner) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shown = false
}
