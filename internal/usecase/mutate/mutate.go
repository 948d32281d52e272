// Package mutate enumerates the single-mismatch mutation space of parent sequences.
package mutate

import (
	"fmt"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// PerParent is the number of variants produced for one parent.
const PerParent = domain.TargetLength * (len(domain.Bases) - 1)

// AllSingleVariants returns every pair whose variant differs from its parent at
// exactly one position. Output order is parent order, then position, then base.
func AllSingleVariants(parents []string) ([]domain.Pair, error) {
	out := make([]domain.Pair, 0, len(parents)*PerParent)
	for _, parent := range parents {
		if err := checkParent(parent); err != nil {
			return nil, err
		}
		out = appendVariants(out, domain.Target{Sequence: parent})
	}
	return out, nil
}

// BuildPairs enumerates the mutation space of the target rows and carries
// locus, PAM and offset over from each parent.
func BuildPairs(targets []domain.Target) ([]domain.Pair, error) {
	out := make([]domain.Pair, 0, len(targets)*PerParent)
	for _, t := range targets {
		if err := checkParent(t.Sequence); err != nil {
			return nil, &domain.OpError{
				Op:    "mutate.build_pairs",
				Kind:  domain.KindInvalidInput,
				Locus: t.LocusTag,
				Err:   err,
			}
		}
		out = appendVariants(out, t)
	}
	return out, nil
}

func appendVariants(out []domain.Pair, parent domain.Target) []domain.Pair {
	seq := parent.Sequence
	buf := []byte(seq)
	for i := 0; i < len(seq); i++ {
		orig := seq[i]
		for j := 0; j < len(domain.Bases); j++ {
			b := domain.Bases[j]
			if b == orig {
				continue
			}
			buf[i] = b
			out = append(out, domain.Pair{
				Variant:  string(buf),
				Original: seq,
				LocusTag: parent.LocusTag,
				PAM:      parent.PAM,
				Offset:   parent.Offset,
				Position: i,
				From:     orig,
				To:       b,
			})
		}
		buf[i] = orig
	}
	return out
}

func checkParent(seq string) error {
	if len(seq) != domain.TargetLength {
		return &domain.OpError{
			Op:   "mutate.check_parent",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("%w: parent %q has length %d, want %d", domain.ErrInvalidInput, seq, len(seq), domain.TargetLength),
		}
	}
	for i := 0; i < len(seq); i++ {
		if !domain.IsBase(seq[i]) {
			return &domain.OpError{
				Op:   "mutate.check_parent",
				Kind: domain.KindInvalidInput,
				Err:  fmt.Errorf("%w: parent %q has symbol %q at %d outside %s", domain.ErrInvalidInput, seq, seq[i], i, domain.Bases),
			}
		}
	}
	return nil
}
