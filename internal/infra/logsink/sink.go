// Package logsink forwards selection diagnostics to a slog.Logger.
package logsink

import (
	"context"
	"log/slog"
	"sort"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

type Sink struct {
	log *slog.Logger
}

var _ ports.Diagnostics = (*Sink)(nil)

func New(l *slog.Logger) *Sink {
	if l == nil {
		l = slog.Default()
	}
	return &Sink{log: l}
}

// Emit logs ev under its code, with the message, the locus and the event fields as attributes.
func (s *Sink) Emit(ev domain.Event) {
	attrs := make([]slog.Attr, 0, len(ev.Fields)+2)
	attrs = append(attrs, slog.String("message", ev.Message))
	if ev.Locus != "" {
		attrs = append(attrs, slog.String("locus", ev.Locus))
	}

	keys := make([]string, 0, len(ev.Fields))
	for k := range ev.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, ev.Fields[k]))
	}

	s.log.LogAttrs(context.Background(), level(ev.Level), ev.Code, attrs...)
}

func level(l domain.EventLevel) slog.Level {
	switch l {
	case domain.LevelDebug:
		return slog.LevelDebug
	case domain.LevelWarn:
		return slog.LevelWarn
	case domain.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
