package server

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/playperu/cluequiz/internal/content"
	"github.com/playperu/cluequiz/internal/game"
	"github.com/playperu/cluequiz/internal/storage"
)

var ErrInvalidTable = errors.New("invalid table name")

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,39}$`)

// Tables hands out one controller per table slug, opening it from storage on
// first use.
type Tables struct {
	store    storage.SnapshotStore
	provider content.Provider
	opts     game.Options

	mu     sync.RWMutex
	tables map[string]*game.Controller
}

func NewTables(store storage.SnapshotStore, provider content.Provider, opts game.Options) *Tables {
	return &Tables{
		store:    store,
		provider: provider,
		opts:     opts,
		tables:   make(map[string]*game.Controller),
	}
}

func snapshotKey(slug string) string { return "table:" + slug }

// Get returns the controller for slug. Tables without a game are loaded
// for the request but not kept, so lookups of unknown slugs cost nothing
// once they return.
func (t *Tables) Get(ctx context.Context, slug string) (*game.Controller, error) {
	return t.get(ctx, slug, false)
}

// Open returns the controller for slug and keeps it loaded.
func (t *Tables) Open(ctx context.Context, slug string) (*game.Controller, error) {
	return t.get(ctx, slug, true)
}

func (t *Tables) get(ctx context.Context, slug string, keep bool) (*game.Controller, error) {
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, slug)
	}

	t.mu.RLock()
	ctl, ok := t.tables[slug]
	t.mu.RUnlock()
	if ok {
		return ctl, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Double-check after acquiring write lock.
	if ctl, ok := t.tables[slug]; ok {
		return ctl, nil
	}

	ctl = game.New(snapshotKey(slug), t.store, t.provider, t.opts)
	if err := ctl.Open(ctx); err != nil {
		return nil, fmt.Errorf("opening table %q: %w", slug, err)
	}
	if keep || ctl.State().IsGameActive {
		t.tables[slug] = ctl
	}
	return ctl, nil
}

// Len reports how many tables are loaded.
func (t *Tables) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tables)
}
