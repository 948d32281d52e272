package domain

import "time"

// ChosenRow is one line of the design output.
type ChosenRow struct {
	Variant  string   `json:"variant"`
	Original string   `json:"original"`
	LocusTag string   `json:"locus_tag"`
	PAM      string   `json:"pam"`
	YPred    *float64 `json:"y_pred"`
}

// RowFromPair converts a scored pair to an output row.
func RowFromPair(p ScoredPair) ChosenRow {
	row := ChosenRow{
		Variant:  p.Variant,
		Original: p.Original,
		LocusTag: p.LocusTag,
		PAM:      p.PAM,
	}
	if p.Prediction.Valid {
		v := p.Prediction.Value
		row.YPred = &v
	}
	return row
}

// ParentCount records how many allocation instances a picked parent received.
type ParentCount struct {
	Sequence string `json:"sequence"`
	Offset   int    `json:"offset"`
	Count    int    `json:"count"`
}

// LocusReport summarizes the outcome for one locus.
type LocusReport struct {
	Locus      string        `json:"locus"`
	Candidates int           `json:"candidates"`
	Parents    []ParentCount `json:"parents"`
	Requested  int           `json:"requested"`
	Chosen     int           `json:"chosen"`
	Shortfall  bool          `json:"shortfall"`
	Skipped    string        `json:"skipped,omitempty"`
}

// DesignRun is the persisted artifact of one design invocation.
type DesignRun struct {
	ID string `json:"id"`

	TargetsPath string `json:"targets_path"`
	LociPath    string `json:"loci_path"`
	Scorer      string `json:"scorer"`

	Request SelectionRequest `json:"request"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Loci   []LocusReport `json:"loci"`
	Chosen []ChosenRow   `json:"chosen"`
	Events []Event       `json:"events"`
}

// Shortfalls counts loci that received fewer variants than requested.
func (r DesignRun) Shortfalls() int {
	n := 0
	for _, l := range r.Loci {
		if l.Shortfall || l.Skipped != "" {
			n++
		}
	}
	return n
}

// WorkspaceSpec describes a workspace to initialize.
type WorkspaceSpec struct {
	Root string
}
