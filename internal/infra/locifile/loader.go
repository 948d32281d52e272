// Package locifile reads the list of loci to design for.
package locifile

import (
	"bufio"
	"os"
	"strings"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.LociSource = (*Loader)(nil)

// LoadLoci returns the first tab-separated field of every line, in file order.
// Blank lines and lines starting with '#' are skipped. Duplicates are kept.
func (l *Loader) LoadLoci(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "locifile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer func() { _ = fh.Close() }()

	var out []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		tag, _, _ := strings.Cut(line, "\t")
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "locifile.load",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  err,
		}
	}
	return out, nil
}
