package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/infra/locifile"
	"github.com/traeki/mismatch-crispri/internal/infra/runstore"
	"github.com/traeki/mismatch-crispri/internal/infra/tsvtargets"
	"github.com/traeki/mismatch-crispri/internal/infra/workspacefinder"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

// workspaceCtx holds the adapters shared by every command. Outside a
// workspace root is empty, cfg holds the defaults and runs are not saved.
type workspaceCtx struct {
	root string
	base string // directory relative paths resolve against
	cfg  domain.Config

	targets ports.TargetSource
	loci    ports.LociSource
	store   ports.RunStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	ws := &workspaceCtx{
		targets: tsvtargets.NewLoader(),
		loci:    locifile.NewLoader(),
	}

	if strings.TrimSpace(workspaceFlag) != "" {
		root, err := resolveWorkspaceRoot(workspaceFlag)
		if err != nil {
			return nil, err
		}
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			if !domain.IsKind(err, domain.KindNotFound) {
				return nil, err
			}
			cfg = domain.DefaultConfig()
		}
		ws.root, ws.base, ws.cfg = root, root, cfg
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		root, cfg, err := workspacefinder.Resolve(workspacefinder.NewFinder(), wd)
		if err != nil {
			return nil, err
		}
		ws.root, ws.cfg = root, cfg
		ws.base = root
		if root == "" {
			ws.base = wd
		}
	}

	if ws.root != "" {
		ws.store = runstore.NewJSONStore(ws.root, ws.cfg, runstore.WithIndex(true))
	}
	return ws, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return workspacefinder.NewFinder().FindRoot(wd)
}

// resolvePath anchors a relative config path at the workspace. Paths given
// on the command line are left relative to the working directory.
func (ws *workspaceCtx) resolvePath(p string, fromFlag bool) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "-" || filepath.IsAbs(p) || fromFlag {
		return p
	}
	return filepath.Join(ws.base, p)
}
