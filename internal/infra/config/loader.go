package config

import (
	"os"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadWorkspace reads a workspace file and applies it on top of domain.DefaultConfig().
func LoadWorkspace(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load_workspace",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLWorkspace
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return cfg, &domain.OpError{
			Op:   "config.load_workspace",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapWorkspace(path, dto, cfg)
}
