package contactclient

import (
	"sync"
	"time"
)

// Kind distinguishes success and error toasts.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Notification is a single toast.
type Notification struct {
	Kind        Kind
	Title       string
	Description string
	ShownAt     time.Time
}

// Notifier displays outcome notifications.
type Notifier interface {
	Notify(n Notification)
}

// Toaster keeps at most one notification visible. A new notification
// replaces the current one; nothing is queued.
type Toaster struct {
	mu      sync.Mutex
	current *Notification
	ttl     time.Duration
	now     func() time.Time
	shown   int
}

// ToasterOption configures a Toaster.
type ToasterOption func(*Toaster)

// WithToasterClock overrides the clock used to expire notifications.
func WithToasterClock(now func() time.Time) ToasterOption {
	return func(t *Toaster) { t.now = now }
}

// NewToaster returns a Toaster whose notifications expire after ttl.
// A ttl of zero keeps a notification until it is replaced or dismissed.
func NewToaster(ttl time.Duration, opts ...ToasterOption) *Toaster {
	t := &Toaster{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Notify shows n, replacing whatever was visible.
func (t *Toaster) Notify(n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n.ShownAt = t.now()
	t.current = &n
	t.shown++
}

// Current returns the visible notification, if any.
func (t *Toaster) Current() (Notification, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Notification{}, false
	}
	if t.ttl > 0 && t.now().Sub(t.current.ShownAt) >= t.ttl {
		t.current = nil
		return Notification{}, false
	}
	return *t.current, true
}

// Dismiss hides the visible notification.
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	t.current = nil
	t.mu.Unlock()
}

// Shown reports how many notifications have been displayed in total.
func (t *Toaster) Shown() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shown
}
