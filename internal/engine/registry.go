package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mcoot/codechallenge-go/internal/model"
)

// Factory builds a fresh engine
type Factory func(opts Options) Engine

// Registry holds the engines the server can run, by name
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds an engine factory. Panics on duplicate names.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("engine %q already registered", name))
	}
	r.factories[name] = factory
}

// New builds the named engine
func (r *Registry) New(name string, opts Options) (Engine, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownGame, name)
	}
	return factory(opts), nil
}

// Names returns the registered engine names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
