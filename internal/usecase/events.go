package usecase

import (
	"sync"
	"time"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

// eventLog stamps events, keeps a copy for the run artifact and forwards them.
type eventLog struct {
	mu     sync.Mutex
	next   ports.Diagnostics
	now    func() time.Time
	events []domain.Event
}

func newEventLog(next ports.Diagnostics, now func() time.Time) *eventLog {
	if next == nil {
		next = ports.NopDiagnostics{}
	}
	return &eventLog{next: next, now: now, events: []domain.Event{}}
}

func (l *eventLog) Emit(ev domain.Event) {
	if ev.Time.IsZero() {
		ev.Time = l.now().UTC()
	}
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
	l.next.Emit(ev)
}

func (l *eventLog) info(code, locus, msg string, fields map[string]any) {
	l.Emit(domain.Event{Level: domain.LevelInfo, Code: code, Locus: locus, Message: msg, Fields: fields})
}

func (l *eventLog) warn(code, locus, msg string, fields map[string]any) {
	l.Emit(domain.Event{Level: domain.LevelWarn, Code: code, Locus: locus, Message: msg, Fields: fields})
}

func (l *eventLog) snapshot() []domain.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Event, len(l.events))
	copy(out, l.events)
	return out
}
