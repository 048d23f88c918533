package reminder

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todo-tracker/internal/model"
)

// Event is a tea.Msg emitted when a todo enters the due-soon window.
// At most one event is ever emitted per todo id for the lifetime of the
// scheduler.
type Event struct {
	TodoID int64
	Title  string
	DueAt  time.Time
}

// Default cadence and window for due-date checks.
const (
	DefaultInterval = time.Minute
	DefaultWindow   = 5 * time.Minute
)

// Scheduler runs a recurring background check over the todo collection and
// emits a one-time Event for every incomplete todo whose deadline is within
// the due-soon window. It reads todos through a snapshot function and keeps
// only its own notified-set as state, so it needs no coordination with the
// domain store beyond that snapshot.
type Scheduler struct {
	snapshot func() []model.Todo
	interval time.Duration
	window   time.Duration
	now      func() time.Time

	eventCh chan Event
	stopCh  chan struct{}

	mu       sync.Mutex
	notified map[int64]struct{}
	running  bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval overrides the tick cadence.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithWindow overrides the due-soon window.
func WithWindow(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithClock injects a time source, letting tests drive tick evaluation
// without real waiting.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Scheduler reading todos through the snapshot function.
func New(snapshot func() []model.Todo, opts ...Option) *Scheduler {
	s := &Scheduler{
		snapshot: snapshot,
		interval: DefaultInterval,
		window:   DefaultWindow,
		now:      time.Now,
		eventCh:  make(chan Event, 16),
		stopCh:   make(chan struct{}),
		notified: make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the ticking goroutine and returns a tea.Cmd that waits on
// the event channel, delivering Event messages to the Bubble Tea runtime.
// Calling Start while running is a no-op; after Stop the scheduler can be
// started again, keeping its notified-set.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	// Fresh channel per run; the previous one is closed.
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	go s.run(stopCh)

	return s.waitForEvent()
}

// Stop halts the ticking goroutine. The notified-set is retained; it only
// exists to suppress duplicate notifications.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
}

// WaitForNextEvent returns a tea.Cmd that waits for the next reminder.
// This should be called after processing an Event to keep listening.
func (s *Scheduler) WaitForNextEvent() tea.Cmd {
	return s.waitForEvent()
}

// run evaluates the collection once immediately, then on every tick until
// stopCh closes. The channel is passed in so a restarted scheduler's new
// channel never reaches an older goroutine.
func (s *Scheduler) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.check(s.now())

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.check(s.now())
		}
	}
}

// check scans the current snapshot and emits an Event for every todo that
// is incomplete, not yet notified, and due within (0, window] of now.
// Overdue and far-future deadlines are left alone so later ticks can
// re-evaluate them.
func (s *Scheduler) check(now time.Time) {
	for _, todo := range s.snapshot() {
		if todo.Completed {
			continue
		}
		due, ok := todo.DueTime()
		if !ok {
			continue
		}
		if s.hasNotified(todo.ID) {
			continue
		}

		remaining := due.Sub(now)
		if remaining <= 0 || remaining > s.window {
			continue
		}

		s.markNotified(todo.ID)
		s.sendEvent(Event{
			TodoID: todo.ID,
			Title:  todo.Title,
			DueAt:  due,
		})
	}
}

func (s *Scheduler) hasNotified(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.notified[id]
	return ok
}

func (s *Scheduler) markNotified(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified[id] = struct{}{}
}

// sendEvent delivers an Event without blocking the ticking goroutine.
func (s *Scheduler) sendEvent(ev Event) {
	select {
	case s.eventCh <- ev:
	default:
		// Drop if the channel is full; the UI is not consuming.
	}
}

// waitForEvent returns a tea.Cmd that blocks on the event channel.
func (s *Scheduler) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-s.eventCh
		if !ok {
			return nil
		}
		return ev
	}
}
