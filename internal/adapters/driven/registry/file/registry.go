// Package file provides a TOML-backed collection registry with hot reload.
// Collections are declared in a single file; edits on disk are picked up
// without a restart.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.CollectionRegistry = (*Registry)(nil)

// collectionEntry is the on-disk TOML shape of a single collection.
type collectionEntry struct {
	VectorNamespace    string  `toml:"vector_namespace"`
	EmbeddingModel     string  `toml:"embedding_model"`
	SystemPrompt       string  `toml:"system_prompt"`
	UserPromptTemplate string  `toml:"user_prompt_template"`
	ContextTemplate    string  `toml:"context_template"`
	ModelName          string  `toml:"model_name"`
	MaxTokens          int     `toml:"max_tokens"`
	Temperature        float64 `toml:"temperature"`
}

// registryFile is the full on-disk TOML shape.
type registryFile struct {
	Collections map[string]collectionEntry `toml:"collections"`
}

// Registry is a file-based implementation of driven.CollectionRegistry
// using TOML. The file is re-read when it changes on disk, so collections
// can be added or retuned while the service is running.
type Registry struct {
	mu          sync.RWMutex
	filePath    string
	collections map[string]domain.Collection

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewRegistry creates a registry backed by the TOML file at filePath and
// starts watching the file's directory for changes. The file must exist
// and parse at startup; later parse failures keep the previous snapshot.
func NewRegistry(filePath string) (*Registry, error) {
	r := &Registry{
		filePath:    filePath,
		collections: make(map[string]domain.Collection),
		done:        make(chan struct{}),
	}

	if err := r.load(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on save,
	// which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(filePath), err)
	}
	r.watcher = watcher

	go r.watch()

	return r, nil
}

// Resolve returns the configuration for the collection.
func (r *Registry) Resolve(_ context.Context, collectionID string) (*domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[collectionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrCollectionNotFound, collectionID)
	}
	return &c, nil
}

// List returns all known collections, ordered by ID.
func (r *Registry) List(_ context.Context) ([]domain.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Collection, 0, len(r.collections))
	for _, c := range r.collections {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Path returns the registry file path.
func (r *Registry) Path() string {
	return r.filePath
}

// Close stops the file watcher.
func (r *Registry) Close() error {
	close(r.done)
	return r.watcher.Close()
}

// load reads and parses the registry file, replacing the current snapshot.
func (r *Registry) load() error {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return fmt.Errorf("failed to read collection registry: %w", err)
	}

	var parsed registryFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse collection registry: %w", err)
	}

	collections := make(map[string]domain.Collection, len(parsed.Collections))
	for id, entry := range parsed.Collections {
		collections[id] = toCollection(id, entry)
	}

	r.mu.Lock()
	r.collections = collections
	r.mu.Unlock()

	return nil
}

// watch reloads the registry when the file changes on disk. A reload that
// fails to parse logs a warning and keeps serving the previous snapshot.
func (r *Registry) watch() {
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(r.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := r.load(); err != nil {
				logger.Warn("collection registry reload failed, keeping previous snapshot: %v", err)
				continue
			}
			logger.Debug("collection registry reloaded from %s", r.filePath)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("collection registry watcher error: %v", err)
		case <-r.done:
			return
		}
	}
}

// toCollection maps a TOML entry onto the domain type, applying defaults
// for anything the file leaves blank.
func toCollection(id string, entry collectionEntry) domain.Collection {
	c := domain.Collection{
		ID:               id,
		VectorNamespace:  entry.VectorNamespace,
		EmbeddingModelID: entry.EmbeddingModel,
		Template: domain.PromptTemplate{
			SystemPrompt:       entry.SystemPrompt,
			UserPromptTemplate: entry.UserPromptTemplate,
			ContextTemplate:    entry.ContextTemplate,
			ModelName:          entry.ModelName,
			MaxTokens:          entry.MaxTokens,
			Temperature:        entry.Temperature,
		},
	}
	if c.VectorNamespace == "" {
		c.VectorNamespace = c.ID
	}
	return c
}
