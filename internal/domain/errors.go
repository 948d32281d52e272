package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidConfig          = errors.New("invalid config")
	ErrInvalidInput           = errors.New("invalid input")
	ErrMixedLoci              = errors.New("candidates span multiple loci")
	ErrInsufficientPopulation = errors.New("no eligible candidates")
	ErrInvariant              = errors.New("invariant violated")
	ErrExecution              = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound               ErrorKind = "not_found"
	KindInvalidConfig          ErrorKind = "invalid_config"
	KindInvalidInput           ErrorKind = "invalid_input"
	KindUsage                  ErrorKind = "usage"
	KindInsufficientPopulation ErrorKind = "insufficient_population"
	KindInvariant              ErrorKind = "invariant"
	KindExecution              ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op    string
	Kind  ErrorKind
	Path  string // Optional: relevant file path
	Locus string // Optional: locus tag being processed
	Err   error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Locus != "" {
		base += fmt.Sprintf(" (locus=%s)", e.Locus)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// IsFatal reports whether err must abort a design run instead of being
// downgraded to a per-locus warning.
func IsFatal(err error) bool {
	return IsKind(err, KindUsage) || IsKind(err, KindInvariant)
}

// ExitCode maps an error to the process exit status for its category.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var oe *OpError
	if !errors.As(err, &oe) {
		return 1
	}
	switch oe.Kind {
	case KindUsage:
		return 2
	case KindInvariant:
		return 3
	case KindInsufficientPopulation:
		return 4
	case KindInvalidInput:
		return 5
	case KindInvalidConfig:
		return 6
	case KindNotFound:
		return 7
	default:
		return 1
	}
}
