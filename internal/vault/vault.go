// Package vault maintains a snapshot of the local markdown collection and
// reconciles qmd document references against it.
package vault

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
	"github.com/quakeboy/qmd-search-obsidian/internal/eventbus"
)

// Vault provides access to the notes under a single root directory
type Vault struct {
	root string
	bus  eventbus.EventBus
}

// New creates a vault rooted at dir
func New(dir string, bus eventbus.EventBus) *Vault {
	return &Vault{root: dir, bus: bus}
}

// Root returns the vault root directory
func (v *Vault) Root() string {
	return v.root
}

// Scan walks the vault and returns every markdown note found. Hidden
// directories (including .obsidian and .trash) are skipped.
func (v *Vault) Scan(ctx context.Context) ([]domain.Note, error) {
	var notes []domain.Note

	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Printf("Error walking path %s: %v", path, err)
			return nil // Continue walking
		}

		if d.IsDir() {
			if path != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(v.root, path)
		if err != nil {
			return nil
		}
		notes = append(notes, domain.Note{
			Path: filepath.ToSlash(rel),
			Base: strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
		})
		return nil
	})

	if err != nil && err != context.Canceled {
		return nil, fmt.Errorf("failed to scan vault %s: %w", v.root, err)
	}

	if v.bus != nil {
		v.bus.Publish(eventbus.VaultScannedEvent{Root: v.root, NotesFound: len(notes)})
	}

	return notes, nil
}

// Content reads a note by its vault-relative path. A missing ".md" extension
// is supplied before the direct read is given up on.
func (v *Vault) Content(relPath string) (string, error) {
	full := filepath.Join(v.root, filepath.FromSlash(relPath))
	data, err := os.ReadFile(full)
	if err != nil && !strings.HasSuffix(relPath, ".md") {
		data, err = os.ReadFile(full + ".md")
	}
	if err != nil {
		return "", fmt.Errorf("failed to open note %s: %w", relPath, err)
	}
	return string(data), nil
}
