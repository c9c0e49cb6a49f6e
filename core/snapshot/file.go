package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"card-manager/core/card"
	"card-manager/core/reconcile"
)

// FileStore keeps one JSON document per workspace under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file holding the snapshot of workspace.
func (s *FileStore) Path(workspace string) string {
	return filepath.Join(s.dir, workspace+".json")
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, workspace string) ([]reconcile.Record, error) {
	if err := ValidateWorkspace(workspace); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path(workspace))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save implements Store. The document is written to a temporary file and renamed so
// a crash never leaves a truncated snapshot behind.
func (s *FileStore) Save(ctx context.Context, workspace string, cards []card.Card) error {
	if err := ValidateWorkspace(workspace); err != nil {
		return err
	}
	doc, err := Encode(cards)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, workspace+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(workspace)); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Remove implements Store.
func (s *FileStore) Remove(ctx context.Context, workspace string) error {
	if err := ValidateWorkspace(workspace); err != nil {
		return err
	}
	if err := os.Remove(s.Path(workspace)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove snapshot: %w", err)
	}
	return nil
}

// Workspaces implements Store.
func (s *FileStore) Workspaces(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	out := []string{}
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok || ValidateWorkspace(name) != nil {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
