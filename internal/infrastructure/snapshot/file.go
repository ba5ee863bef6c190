// Package snapshot implements the persistence gateways: the whole store
// serialized as one document, replaced atomically on every save. Two
// backends exist — a local JSON file and a single MongoDB document —
// selected by configuration; both satisfy store.Gateway.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mannager/pos-system/internal/store"
)

// FileGateway persists the snapshot as an indented JSON file. Save writes
// to a temporary sibling and renames it over the target, so a reader never
// observes a partially written snapshot.
type FileGateway struct {
	path string
	log  zerolog.Logger
}

// NewFile returns a FileGateway writing to path.
func NewFile(path string, log zerolog.Logger) *FileGateway {
	return &FileGateway{path: path, log: log}
}

// Load reads and decodes the snapshot file.
func (g *FileGateway) Load() (*store.Data, error) {
	f, err := os.Open(g.path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var data store.Data
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &data, nil
}

// Save serializes the whole store and atomically replaces the snapshot.
func (g *FileGateway) Save(data *store.Data) error {
	tmp := g.path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	// Indented output so the snapshot stays hand-inspectable.
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp, g.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Ping verifies the snapshot directory is reachable.
func (g *FileGateway) Ping(ctx context.Context) error {
	dir := filepath.Dir(g.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("snapshot directory: %w", err)
	}
	return nil
}
