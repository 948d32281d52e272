package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
	"github.com/traeki/mismatch-crispri/internal/usecase/filter"
	"github.com/traeki/mismatch-crispri/internal/usecase/mutate"
)

// Inputs names the tables a use case reads. Loci, when set, replaces the loci file.
type Inputs struct {
	TargetsPath string
	LociPath    string
	Loci        []string
}

// prepared is the filtered parent population and its mutation space.
type prepared struct {
	rows     []domain.Target
	loci     []string
	eligible []domain.Target
	pairs    []domain.Pair
}

func prepare(ctx context.Context, ts ports.TargetSource, ls ports.LociSource, in Inputs, antisense string, log *eventLog) (prepared, error) {
	if err := ctx.Err(); err != nil {
		return prepared{}, err
	}

	loci := in.Loci
	if len(loci) == 0 {
		if in.LociPath == "" {
			return prepared{}, &domain.OpError{
				Op:   "usecase.prepare",
				Kind: domain.KindUsage,
				Err:  errors.New("a loci file or an explicit locus list is required"),
			}
		}
		var err error
		loci, err = ls.LoadLoci(in.LociPath)
		if err != nil {
			return prepared{}, err
		}
	}
	loci = uniqueInOrder(loci)

	rows, err := ts.LoadTargets(in.TargetsPath)
	if err != nil {
		return prepared{}, err
	}

	eligible := filter.Targets(rows, loci, filter.Options{Antisense: antisense})
	log.info(domain.EventTargetsFiltered, "",
		fmt.Sprintf("kept %d of %d target rows for %d loci", len(eligible), len(rows), len(loci)),
		map[string]any{"rows": len(rows), "eligible": len(eligible), "loci": len(loci)})

	pairs, err := mutate.BuildPairs(eligible)
	if err != nil {
		return prepared{}, err
	}
	log.info(domain.EventMutationSpace, "",
		fmt.Sprintf("built %d single-mismatch pairs", len(pairs)),
		map[string]any{"pairs": len(pairs), "parents": len(eligible)})

	return prepared{rows: rows, loci: loci, eligible: eligible, pairs: pairs}, nil
}

func uniqueInOrder(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
