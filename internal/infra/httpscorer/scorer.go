// Package httpscorer scores pairs through a remote JSON service.
//
// Each batch is POSTed as {"pairs":[{"variant":..,"original":..}, ...]} and
// the predictions are read from the response with a JSONPath expression that
// must yield one number (or null) per pair, in request order.
package httpscorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/httpclient"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

const defaultBatchSize = 500

type Scorer struct {
	exec      *httpclient.Executor
	url       string
	scorePath string
	batchSize int
	identity  float64
	headers   map[string]string
}

type Option func(*Scorer)

func WithBatchSize(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithScorePath sets the JSONPath expression locating the score list.
func WithScorePath(expr string) Option {
	return func(s *Scorer) {
		if strings.TrimSpace(expr) != "" {
			s.scorePath = strings.TrimSpace(expr)
		}
	}
}

func WithIdentityScore(v float64) Option {
	return func(s *Scorer) { s.identity = v }
}

func WithHeader(k, v string) Option {
	return func(s *Scorer) { s.headers[k] = v }
}

func New(exec *httpclient.Executor, url string, opts ...Option) *Scorer {
	if exec == nil {
		exec = httpclient.NewExecutor()
	}
	s := &Scorer{
		exec:      exec,
		url:       url,
		scorePath: "$.scores",
		batchSize: defaultBatchSize,
		identity:  1.0,
		headers:   map[string]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Scorer = (*Scorer)(nil)

func (s *Scorer) Name() string { return "http" }

type wirePair struct {
	Variant  string `json:"variant"`
	Original string `json:"original"`
}

type wireRequest struct {
	Pairs []wirePair `json:"pairs"`
}

// Score skips identity pairs and sends the rest in batches.
func (s *Scorer) Score(ctx context.Context, pairs []domain.Pair) ([]domain.Prediction, error) {
	out := make([]domain.Prediction, len(pairs))

	idx := make([]int, 0, len(pairs))
	for i, p := range pairs {
		if p.IsIdentity() {
			out[i] = domain.Scored(s.identity)
			continue
		}
		idx = append(idx, i)
	}

	for start := 0; start < len(idx); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+s.batchSize, len(idx))

		batch := wireRequest{Pairs: make([]wirePair, 0, end-start)}
		for _, i := range idx[start:end] {
			batch.Pairs = append(batch.Pairs, wirePair{Variant: pairs[i].Variant, Original: pairs[i].Original})
		}

		preds, err := s.scoreBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		for j, i := range idx[start:end] {
			out[i] = preds[j]
		}
	}
	return out, nil
}

func (s *Scorer) scoreBatch(ctx context.Context, batch wireRequest) ([]domain.Prediction, error) {
	req, err := httpclient.BuildJSONRequest(ctx, s.url, s.headers, batch)
	if err != nil {
		return nil, err
	}

	resp, err := s.exec.Do(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, s.execError(err)
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, s.execError(fmt.Errorf("status %d: %s", resp.Status, snippet(resp.BodyBytes)))
	}

	preds, err := s.extract(resp.BodyBytes)
	if err != nil {
		return nil, s.execError(err)
	}
	if len(preds) != len(batch.Pairs) {
		return nil, s.execError(fmt.Errorf("got %d scores for %d pairs", len(preds), len(batch.Pairs)))
	}
	return preds, nil
}

func (s *Scorer) extract(body []byte) ([]domain.Prediction, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}

	val, err := jsonpath.Get(s.scorePath, doc)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %s: %w", s.scorePath, err)
	}
	arr, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("jsonpath %s: want an array, got %T", s.scorePath, val)
	}

	out := make([]domain.Prediction, len(arr))
	for i, v := range arr {
		switch t := v.(type) {
		case nil:
			out[i] = domain.Prediction{}
		case float64:
			out[i] = domain.Scored(t)
		default:
			return nil, fmt.Errorf("jsonpath %s: score %d is %T, want a number or null", s.scorePath, i, v)
		}
	}
	return out, nil
}

func (s *Scorer) execError(err error) error {
	return &domain.OpError{
		Op:   "httpscorer.score",
		Kind: domain.KindExecution,
		Path: s.url,
		Err:  errors.Join(domain.ErrExecution, err),
	}
}

func snippet(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
