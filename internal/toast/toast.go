// Package toast keeps the queue of short-lived notifications shown to the
// storefront user after catalog actions.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

const DefaultDuration = 5 * time.Second

type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"type"`
	Visible   bool      `json:"show"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue is safe for concurrent use. Each toast removes itself after its
// duration unless it was removed earlier.
type Queue struct {
	mu     sync.Mutex
	toasts []Toast
	timers map[string]*time.Timer

	defaultDuration time.Duration
	newID           func() string
	now             func() time.Time
	log             *zap.Logger
}

type Option func(*Queue)

func WithDefaultDuration(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.defaultDuration = d
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(q *Queue) {
		if log != nil {
			q.log = log
		}
	}
}

func WithIDFunc(fn func() string) Option {
	return func(q *Queue) { q.newID = fn }
}

func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		timers:          map[string]*time.Timer{},
		defaultDuration: DefaultDuration,
		newID:           uuid.NewString,
		now:             time.Now,
		log:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Show appends a toast. An empty severity means success and a non-positive
// duration means the queue default.
func (q *Queue) Show(message string, severity Severity, d time.Duration) Toast {
	if severity == "" {
		severity = SeveritySuccess
	}
	if d <= 0 {
		d = q.defaultDuration
	}

	t := Toast{
		ID:        q.newID(),
		Message:   message,
		Severity:  severity,
		Visible:   true,
		CreatedAt: q.now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.toasts = append(q.toasts, t)
	if old, ok := q.timers[t.ID]; ok {
		old.Stop()
	}
	q.timers[t.ID] = time.AfterFunc(d, func() { q.expire(t.ID) })

	q.log.Debug("toast shown",
		zap.String("toast_id", t.ID),
		zap.String("severity", string(severity)),
		zap.Duration("duration", d),
	)
	return t
}

func (q *Queue) Success(message string) Toast { return q.Show(message, SeveritySuccess, 0) }
func (q *Queue) Error(message string) Toast   { return q.Show(message, SeverityError, 0) }

// Remove drops the first toast with the given id; unknown ids are ignored.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	q.removeLocked(id)
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.timers, id)
	q.removeLocked(id)
}

func (q *Queue) removeLocked(id string) {
	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}

func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

// Close stops every pending removal timer. Toasts already queued stay listed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
}
