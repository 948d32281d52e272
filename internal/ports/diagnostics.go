package ports

import "github.com/traeki/mismatch-crispri/internal/domain"

// Diagnostics receives events from the selection engine and use cases.
type Diagnostics interface {
	Emit(ev domain.Event)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

func (NopDiagnostics) Emit(domain.Event) {}
