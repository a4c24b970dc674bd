// Package content supplies items for a category: bundled JSON pools, a
// remote item service, and the lookup table that routes a category to the
// provider serving it.
package content

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/playperu/cluequiz/internal/cluequiz"
)

var (
	ErrNoProvider = errors.New("no provider for category")
	ErrEmptyPool  = errors.New("item pool is empty")
	ErrBadItem    = errors.New("provider returned an unusable item")
)

// Provider returns one random item for a category.
type Provider interface {
	Fetch(ctx context.Context, c cluequiz.Category) (cluequiz.Item, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, c cluequiz.Category) (cluequiz.Item, error)

func (f ProviderFunc) Fetch(ctx context.Context, c cluequiz.Category) (cluequiz.Item, error) {
	return f(ctx, c)
}

// Registry maps each category to the provider that serves it. It is itself
// a Provider and is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[cluequiz.Category]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[cluequiz.Category]Provider)}
}

// Register sets the provider for c, replacing any previous one.
func (r *Registry) Register(c cluequiz.Category, p Provider) {
	r.mu.Lock()
	r.providers[c] = p
	r.mu.Unlock()
}

func (r *Registry) Has(c cluequiz.Category) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[c]
	return ok
}

// Categories lists the served categories, catalog ones first in catalog
// order, then any others alphabetically.
func (r *Registry) Categories() []cluequiz.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]cluequiz.Category, 0, len(r.providers))
	for _, c := range cluequiz.Categories {
		if _, ok := r.providers[c]; ok {
			out = append(out, c)
		}
	}
	var extra []cluequiz.Category
	for c := range r.providers {
		if !c.Known() {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

func (r *Registry) Fetch(ctx context.Context, c cluequiz.Category) (cluequiz.Item, error) {
	r.mu.RLock()
	p, ok := r.providers[c]
	r.mu.RUnlock()
	if !ok {
		return cluequiz.Item{}, fmt.Errorf("%w: %q", ErrNoProvider, c)
	}

	it, err := p.Fetch(ctx, c)
	if err != nil {
		return cluequiz.Item{}, fmt.Errorf("fetching %s item: %w", c, err)
	}
	if it.Category == "" {
		it.Category = c
	}
	if err := checkItem(it); err != nil {
		return cluequiz.Item{}, err
	}
	return it, nil
}

func checkItem(it cluequiz.Item) error {
	switch {
	case it.ID == "":
		return fmt.Errorf("%w: missing id", ErrBadItem)
	case strings.TrimSpace(it.Name) == "":
		return fmt.Errorf("%w: item %s has no name", ErrBadItem, it.ID)
	case len(it.Details) == 0:
		return fmt.Errorf("%w: item %s has no details", ErrBadItem, it.ID)
	}
	return nil
}

// Fallback tries each provider in order and returns the first item.
type Fallback []Provider

func (f Fallback) Fetch(ctx context.Context, c cluequiz.Category) (cluequiz.Item, error) {
	var errs []error
	for _, p := range f {
		it, err := p.Fetch(ctx, c)
		if err == nil {
			return it, nil
		}
		if ctx.Err() != nil {
			return cluequiz.Item{}, ctx.Err()
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return cluequiz.Item{}, fmt.Errorf("%w: %q", ErrNoProvider, c)
	}
	return cluequiz.Item{}, errors.Join(errs...)
}
