package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"sync"

	"card-manager/core/card"
	"card-manager/core/reconcile"
)

// Store reads and writes the snapshot of a workspace.
type Store interface {
	// Load returns the stored records of workspace, empty when nothing was saved.
	Load(ctx context.Context, workspace string) ([]reconcile.Record, error)
	// Save replaces the snapshot of workspace with cards.
	Save(ctx context.Context, workspace string, cards []card.Card) error
	// Remove deletes the snapshot of workspace. Removing a missing snapshot is not an error.
	Remove(ctx context.Context, workspace string) error
	// Workspaces lists the saved workspaces in lexical order.
	Workspaces(ctx context.Context) ([]string, error)
}

var workspacePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateWorkspace rejects names that are unsafe as file names or object keys.
func ValidateWorkspace(workspace string) error {
	if !workspacePattern.MatchString(workspace) {
		return fmt.Errorf("invalid workspace name %q", workspace)
	}
	return nil
}

// Encode writes cards as a snapshot document.
func Encode(cards []card.Card) ([]byte, error) {
	if cards == nil {
		cards = []card.Card{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cards); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads a snapshot document. Numbers are kept as json.Number so millisecond
// timestamps survive without float rounding. Entries that are not objects are skipped.
func Decode(r io.Reader) ([]reconcile.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	records := make([]reconcile.Record, 0, len(raw))
	for _, item := range raw {
		itemDec := json.NewDecoder(bytes.NewReader(item))
		itemDec.UseNumber()
		var rec map[string]any
		if err := itemDec.Decode(&rec); err != nil || rec == nil {
			continue
		}
		records = append(records, reconcile.Record(rec))
	}
	return records, nil
}

// MemoryStore keeps encoded snapshots in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, workspace string) ([]reconcile.Record, error) {
	s.mu.RLock()
	doc, ok := s.docs[workspace]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return Decode(bytes.NewReader(doc))
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, workspace string, cards []card.Card) error {
	doc, err := Encode(cards)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[workspace] = doc
	s.mu.Unlock()
	return nil
}

// Remove implements Store.
func (s *MemoryStore) Remove(ctx context.Context, workspace string) error {
	s.mu.Lock()
	delete(s.docs, workspace)
	s.mu.Unlock()
	return nil
}

// Workspaces implements Store.
func (s *MemoryStore) Workspaces(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.docs))
	for ws := range s.docs {
		out = append(out, ws)
	}
	sort.Strings(out)
	return out, nil
}
