package domain

import "time"

// EventLevel mirrors slog levels without importing log/slog into the domain.
type EventLevel string

const (
	LevelDebug EventLevel = "debug"
	LevelInfo  EventLevel = "info"
	LevelWarn  EventLevel = "warn"
	LevelError EventLevel = "error"
)

// Event codes emitted by the selection engine and the design use case.
const (
	EventFamilyEmpty      = "family.empty"
	EventBinShortfall     = "bin.shortfall"
	EventLocusShort       = "locus.short"
	EventLocusEmpty       = "locus.empty"
	EventLocusSkipped     = "locus.skipped"
	EventLocusDone        = "locus.done"
	EventParentRepeated   = "parent.repeated"
	EventParentNoOffset   = "parent.no_offset"
	EventRequestUneven    = "request.uneven"
	EventScoringStarted   = "scoring.started"
	EventScoringUnscored  = "scoring.unscored"
	EventTargetsFiltered  = "targets.filtered"
	EventMutationSpace    = "mutation.space"
	EventLocusNotInTarget = "locus.not_in_targets"
)

// Event is one diagnostic emitted during a design run.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   EventLevel     `json:"level"`
	Code    string         `json:"code"`
	Locus   string         `json:"locus,omitempty"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}
