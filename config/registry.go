package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dcshock/runcase/usecase"
)

// Registry maps use case type names to factories. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]usecase.Factory
}

// NewRegistry returns an empty factory registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]usecase.Factory)}
}

// Register adds a factory under the given name. Overwrites any existing registration.
func (r *Registry) Register(name string, factory usecase.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = make(map[string]usecase.Factory)
	}
	r.factories[name] = factory
}

// Get returns the factory for name, or nil and false if not found.
func (r *Registry) Get(name string) (usecase.Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// MustGet returns the factory for name, or panics if not found.
func (r *Registry) MustGet(name string) usecase.Factory {
	f, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("config: use case %q not registered", name))
	}
	return f
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ObserverRegistry maps observer names (as used in YAML) to observers.
type ObserverRegistry struct {
	mu        sync.RWMutex
	observers map[string]usecase.Observer
}

// NewObserverRegistry returns an empty observer registry.
func NewObserverRegistry() *ObserverRegistry {
	return &ObserverRegistry{observers: make(map[string]usecase.Observer)}
}

// Register adds an observer under the given name. Overwrites any existing registration.
func (r *ObserverRegistry) Register(name string, obs usecase.Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.observers == nil {
		r.observers = make(map[string]usecase.Observer)
	}
	r.observers[name] = obs
}

// Get returns the observer for name, or nil and false if not found.
func (r *ObserverRegistry) Get(name string) (usecase.Observer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.observers[name]
	return o, ok
}
