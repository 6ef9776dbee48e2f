package reportdoc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// workTree is the scratch directory one generation call extracts the
// template into. Each call gets its own uniquely named tree, so concurrent
// calls never collide, and Close removes it regardless of how the call
// ended.
type workTree struct {
	root string
}

func newWorkTree(parentDir string) (*workTree, error) {
	if parentDir == "" {
		parentDir = os.TempDir()
	}
	root := filepath.Join(parentDir, "reportdoc-"+uuid.NewString())

	// Idempotent setup: a stale tree under the same name is discarded
	if err := os.RemoveAll(root); err != nil {
		return nil, fmt.Errorf("failed to clear working tree '%s': %w", root, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working tree '%s': %w", root, err)
	}

	return &workTree{root: root}, nil
}

// Path joins parts onto the tree root.
func (w *workTree) Path(parts ...string) string {
	return filepath.Join(append([]string{w.root}, parts...)...)
}

// Close deletes the working tree. Safe to call on every exit path.
func (w *workTree) Close() error {
	return os.RemoveAll(w.root)
}
