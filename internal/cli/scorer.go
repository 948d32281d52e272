package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/httpclient"
	"github.com/traeki/mismatch-crispri/internal/infra/httpscorer"
	"github.com/traeki/mismatch-crispri/internal/infra/linearscorer"
	"github.com/traeki/mismatch-crispri/internal/infra/tablescorer"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

func buildScorer(ws *workspaceCtx, v *viper.Viper, flags *pflag.FlagSet) (ports.Scorer, error) {
	identity := ws.cfg.Scorer.IdentityScore
	kind := strings.ToLower(strings.TrimSpace(v.GetString("scorer")))

	switch kind {
	case "linear":
		path := ws.resolvePath(v.GetString("model"), fromFlag(flags, "model"))
		if path == "" {
			return nil, scorerUsage("--model is required for the linear scorer")
		}
		m, err := linearscorer.LoadModel(path)
		if err != nil {
			return nil, err
		}
		return linearscorer.New(m, identity), nil

	case "table":
		path := ws.resolvePath(v.GetString("scores"), fromFlag(flags, "scores"))
		if path == "" {
			return nil, scorerUsage("--scores is required for the table scorer")
		}
		ts, err := tablescorer.Load(path, identity)
		if err != nil {
			return nil, err
		}
		return ts, nil

	case "http":
		url := strings.TrimSpace(v.GetString("scorer-url"))
		if url == "" {
			return nil, scorerUsage("--scorer-url is required for the http scorer")
		}
		exec := httpclient.NewExecutor(httpclient.WithTimeout(v.GetDuration("scorer-timeout")))
		return httpscorer.New(exec, url,
			httpscorer.WithBatchSize(v.GetInt("batch-size")),
			httpscorer.WithScorePath(v.GetString("score-path")),
			httpscorer.WithIdentityScore(identity),
		), nil

	default:
		return nil, scorerUsage(fmt.Sprintf("unsupported scorer %q (expected linear|table|http)", kind))
	}
}

func scorerUsage(msg string) error {
	return &domain.OpError{Op: "cli.scorer", Kind: domain.KindUsage, Err: errors.New(msg)}
}

func addScorerFlags(f *pflag.FlagSet) {
	f.String("scorer", "", "Scorer kind: linear|table|http (default from mmdesign.yaml, else linear)")
	f.String("model", "", "Linear model YAML (linear scorer)")
	f.String("scores", "", "Precomputed predictions TSV (table scorer)")
	f.String("scorer-url", "", "Scoring service URL (http scorer)")
	f.String("score-path", "", "JSONPath to the score list in the service response")
	f.Int("batch-size", 0, "Pairs per scoring request (http scorer)")
	f.Duration("scorer-timeout", 30*time.Second, "Timeout per scoring request (http scorer)")
}
