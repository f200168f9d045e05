package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes charts as files below a root directory.
type DirSink struct {
	root string
}

// NewDirSink creates root if needed and returns a sink writing into it.
func NewDirSink(root string) (*DirSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &DirSink{root: root}, nil
}

// Put writes png to root/name, creating parent directories.
func (s *DirSink) Put(_ context.Context, name string, png []byte) error {
	path := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
