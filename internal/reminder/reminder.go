// Package reminder schedules the morning and evening check-in notifications.
package reminder

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Kind is the reminder window.
type Kind string

const (
	Morning Kind = "morning"
	Evening Kind = "evening"
)

// Windows are the local hours that trigger reminders. The morning window is
// the single hour MorningHour; the evening window is [EveningStart, EveningEnd).
type Windows struct {
	MorningHour  int
	EveningStart int
	EveningEnd   int
}

// DefaultWindows returns 8:00 for morning and 18:00 to 20:00 for evening.
func DefaultWindows() Windows {
	return Windows{MorningHour: 8, EveningStart: 18, EveningEnd: 20}
}

// Reminder is one notification to deliver.
type Reminder struct {
	Kind      Kind
	Title     string
	Body      string
	DedupeKey string
}

// Due returns the reminder for now's local hour, if any.
func Due(now time.Time, w Windows) (Reminder, bool) {
	hour := now.Hour()
	date := now.Format("2006-01-02")
	switch {
	case hour == w.MorningHour:
		return Reminder{
			Kind:      Morning,
			Title:     "Morning Alignment",
			Body:      "The sun rises. Define your intent for the day.",
			DedupeKey: date + "_" + string(Morning),
		}, true
	case hour >= w.EveningStart && hour < w.EveningEnd:
		return Reminder{
			Kind:      Evening,
			Title:     "Evening Review",
			Body:      "The day ends. Log your discipline and reflect.",
			DedupeKey: date + "_" + string(Evening),
		}, true
	default:
		return Reminder{}, false
	}
}

// Notifier delivers a notification.
type Notifier interface {
	Notify(ctx context.Context, title, body, dedupeKey string) error
}

// WriterNotifier prints notifications to a writer.
type WriterNotifier struct {
	W io.Writer
}

// Notify implements Notifier.
func (n WriterNotifier) Notify(_ context.Context, title, body, _ string) error {
	_, err := fmt.Fprintf(n.W, "Komorebi OS: %s\n  %s\n", title, body)
	return err
}

// Scheduler delivers each dedupe key at most once per process.
type Scheduler struct {
	notifier Notifier
	windows  Windows
	now      func() time.Time
	log      *zap.Logger

	mu   sync.Mutex
	sent map[string]bool
}

// NewScheduler builds a scheduler. now defaults to time.Now.
func NewScheduler(n Notifier, w Windows, now func() time.Time, log *zap.Logger) *Scheduler {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{notifier: n, windows: w, now: now, log: log, sent: map[string]bool{}}
}

// Check delivers the current reminder unless its key was already delivered.
// A failed delivery is retried on the next check.
func (s *Scheduler) Check(ctx context.Context) (Reminder, bool, error) {
	r, ok := Due(s.now(), s.windows)
	if !ok {
		return Reminder{}, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sent[r.DedupeKey] {
		return r, false, nil
	}
	if err := s.notifier.Notify(ctx, r.Title, r.Body, r.DedupeKey); err != nil {
		return r, false, fmt.Errorf("notify %s: %w", r.DedupeKey, err)
	}
	s.sent[r.DedupeKey] = true
	s.log.Debug("reminder delivered", zap.String("key", r.DedupeKey))
	return r, true, nil
}

// Run checks immediately and then every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, _, err := s.Check(ctx); err != nil {
			s.log.Warn("reminder delivery failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
