package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/traeki/mismatch-crispri/internal/domain"
)

const envPrefix = "MMDESIGN"

// newSettings layers command flags over MMDESIGN_* environment variables over
// the workspace config. Flag names double as keys: MMDESIGN_SCORER_URL sets --scorer-url.
func newSettings(flags *pflag.FlagSet, cfg domain.Config) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("n", cfg.Defaults.N)
	v.SetDefault("families", cfg.Defaults.Families)
	v.SetDefault("divide-evenly", cfg.Defaults.DivideEvenly)
	v.SetDefault("seed", cfg.Defaults.Seed)

	v.SetDefault("scorer", cfg.Scorer.Kind)
	v.SetDefault("model", cfg.Scorer.ModelPath)
	v.SetDefault("scores", cfg.Scorer.ScoresPath)
	v.SetDefault("scorer-url", cfg.Scorer.URL)
	v.SetDefault("score-path", cfg.Scorer.ScorePath)
	v.SetDefault("batch-size", cfg.Scorer.BatchSize)

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

// fromFlag reports whether key was set on the command line or in the
// environment rather than taken from the workspace file.
func fromFlag(flags *pflag.FlagSet, key string) bool {
	if f := flags.Lookup(key); f != nil && f.Changed {
		return true
	}
	_, ok := lookupEnv(key)
	return ok
}

func request(v *viper.Viper, loci []string) domain.SelectionRequest {
	return domain.SelectionRequest{
		Loci:         loci,
		N:            v.GetInt("n"),
		Families:     v.GetInt("families"),
		DivideEvenly: v.GetBool("divide-evenly"),
		Seed:         v.GetUint64("seed"),
	}
}
