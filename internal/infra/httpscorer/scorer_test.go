package httpscorer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/httpclient"
	"github.com/traeki/mismatch-crispri/internal/usecase/mutate"
)

const parent = "ACGTACGTACGTACGTACGT"

func testPairs(t *testing.T) []domain.Pair {
	t.Helper()
	pairs, err := mutate.AllSingleVariants([]string{parent})
	if err != nil {
		t.Fatalf("AllSingleVariants: %v", err)
	}
	return pairs
}

// echoServer scores each pair by its mismatch position, and returns null for position 0.
func echoServer(t *testing.T, calls *int32, wrap func([]any) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		var req wireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		scores := make([]any, len(req.Pairs))
		for i, p := range req.Pairs {
			pos := -1
			for k := range p.Variant {
				if p.Variant[k] != p.Original[k] {
					pos = k
					break
				}
			}
			if pos == 0 {
				scores[i] = nil
				continue
			}
			scores[i] = float64(pos) / 20
		}
		_ = json.NewEncoder(w).Encode(wrap(scores))
	}))
}

func TestScore_BatchesAndOrders(t *testing.T) {
	var calls int32
	srv := echoServer(t, &calls, func(s []any) any { return map[string]any{"scores": s} })
	defer srv.Close()

	pairs := testPairs(t)
	pairs = append(pairs, domain.Pair{Variant: parent, Original: parent})

	sc := New(httpclient.NewExecutor(), srv.URL, WithBatchSize(25), WithIdentityScore(0.99))
	preds, err := sc.Score(context.Background(), pairs)
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if len(preds) != len(pairs) {
		t.Fatalf("expected %d predictions, got %d", len(pairs), len(preds))
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 batches for 60 pairs, got %d", calls)
	}
	for i, p := range pairs[:60] {
		if p.Position == 0 {
			if preds[i].Valid {
				t.Fatalf("expected null score for position 0, got %+v", preds[i])
			}
			continue
		}
		if !preds[i].Valid || preds[i].Value != float64(p.Position)/20 {
			t.Fatalf("pair %d: unexpected prediction %+v", i, preds[i])
		}
	}
	if last := preds[60]; !last.Valid || last.Value != 0.99 {
		t.Fatalf("expected identity score, got %+v", last)
	}
}

func TestScore_CustomScorePath(t *testing.T) {
	var calls int32
	srv := echoServer(t, &calls, func(s []any) any {
		return map[string]any{"result": map[string]any{"y_pred": s}}
	})
	defer srv.Close()

	sc := New(nil, srv.URL, WithScorePath("$.result.y_pred"))
	preds, err := sc.Score(context.Background(), testPairs(t))
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if len(preds) != 60 {
		t.Fatalf("expected 60 predictions, got %d", len(preds))
	}
}

func TestScore_ServerErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		},
		"short": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"scores":[]}`))
		},
		"not array": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"scores":"0.5"}`))
		},
		"bad member": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"scores":["x"]}`))
		},
	}
	pairs := testPairs(t)[:1]
	for name, h := range cases {
		srv := httptest.NewServer(h)
		_, err := New(nil, srv.URL).Score(context.Background(), pairs)
		srv.Close()
		if !domain.IsKind(err, domain.KindExecution) || !errors.Is(err, domain.ErrExecution) {
			t.Fatalf("%s: expected execution error, got %v", name, err)
		}
	}
}

func TestScore_OnlyIdentityMakesNoRequest(t *testing.T) {
	var calls int32
	srv := echoServer(t, &calls, func(s []any) any { return map[string]any{"scores": s} })
	defer srv.Close()

	preds, err := New(nil, srv.URL).Score(context.Background(), []domain.Pair{{Variant: parent, Original: parent}})
	if err != nil {
		t.Fatalf("Score error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 || len(preds) != 1 || preds[0].Value != 1.0 {
		t.Fatalf("unexpected calls=%d preds=%+v", calls, preds)
	}
}

func TestScore_CanceledContext(t *testing.T) {
	var calls int32
	srv := echoServer(t, &calls, func(s []any) any { return map[string]any{"scores": s} })
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(nil, srv.URL).Score(ctx, testPairs(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestScore_MissingURL(t *testing.T) {
	if _, err := New(nil, "").Score(context.Background(), testPairs(t)); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}
