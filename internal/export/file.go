package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink saves blobs to a local directory.
type FileSink struct {
	Dir string // defaults to the working directory
}

// Save writes data to Dir/name with owner read-write permissions.
func (s FileSink) Save(_ context.Context, name string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
