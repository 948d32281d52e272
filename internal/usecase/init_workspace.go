package usecase

import (
	"errors"
	"path/filepath"

	"github.com/traeki/mismatch-crispri/internal/domain"
	"github.com/traeki/mismatch-crispri/internal/ports"
)

// InitWorkspace scaffolds mmdesign.yaml, a linear model template and the runs directory.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute returns the absolute root that was initialized.
func (uc *InitWorkspace) Execute(root string, force bool) (string, error) {
	if root == "" {
		return "", &domain.OpError{Op: "usecase.init_workspace", Kind: domain.KindUsage, Err: errors.New("workspace root is empty")}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &domain.OpError{Op: "usecase.init_workspace", Kind: domain.KindUsage, Path: root, Err: err}
	}
	if err := uc.initializer.Init(domain.WorkspaceSpec{Root: abs}, force); err != nil {
		return "", err
	}
	return abs, nil
}
