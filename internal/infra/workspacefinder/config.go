package workspacefinder

import (
	"path/filepath"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/config"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

// LoadConfig loads mmdesign.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	return config.LoadWorkspace(filepath.Join(root, ConfigFile))
}

// Resolve finds the workspace above startDir and loads its config. Outside a
// workspace it returns an empty root and the defaults without error.
func Resolve(loc ports.WorkspaceLocator, startDir string) (string, domain.Config, error) {
	root, err := loc.FindRoot(startDir)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return "", domain.DefaultConfig(), nil
		}
		return "", domain.DefaultConfig(), err
	}
	cfg, err := LoadConfig(root)
	return root, cfg, err
}
