// Package tsvtable reads tab-separated files whose first row is a header.
package tsvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

// Table is a header-indexed TSV file held in memory.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string
	Lines  []int // 1-based file line of each row

	index map[string]int
}

// Read parses the whole file. Headers are matched case-insensitively.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "tsvtable.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "tsvtable.read",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  errors.Join(domain.ErrInvalidInput, err),
		}
	}
	t.Path = path
	return t, nil
}

func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty table")
		}
		return nil, err
	}

	t := &Table{Header: header, index: map[string]int{}}
	for i, h := range header {
		key := normalize(h)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		t.Rows = append(t.Rows, rec)
		t.Lines = append(t.Lines, line)
	}
	return t, nil
}

// Column returns the index of the first header matching any of names.
func (t *Table) Column(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := t.index[normalize(n)]; ok {
			return i, true
		}
	}
	return -1, false
}

// Require resolves one column per entry; each entry lists accepted aliases.
func (t *Table) Require(cols ...[]string) ([]int, error) {
	out := make([]int, len(cols))
	var missing []string
	for i, names := range cols {
		idx, ok := t.Column(names...)
		if !ok {
			missing = append(missing, strings.Join(names, "|"))
			continue
		}
		out[i] = idx
	}
	if len(missing) > 0 {
		return nil, &domain.OpError{
			Op:   "tsvtable.require",
			Kind: domain.KindInvalidInput,
			Path: t.Path,
			Err:  fmt.Errorf("%w: missing columns %s", domain.ErrInvalidInput, strings.Join(missing, ", ")),
		}
	}
	return out, nil
}

// Cell returns the trimmed field at col, or "" when the row is short.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}
