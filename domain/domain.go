package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dcshock/runcase/usecase"
)

var (
	// ErrUnknownUseCase is returned by Call for a name that was never defined.
	ErrUnknownUseCase = errors.New("unknown use case")
	// ErrDuplicate is returned by Define when the name is already taken.
	ErrDuplicate = errors.New("use case already defined")
	// ErrInvalid is returned by Define for an empty name or a nil factory.
	ErrInvalid = errors.New("invalid use case definition")
)

// Shortcut is one named entry of a Table.
type Shortcut struct {
	Name     string
	Factory  usecase.Factory
	Observer usecase.Observer
	Wrappers []usecase.Wrapper
}

func (s *Shortcut) options() *usecase.RunOptions {
	if s.Observer == nil && len(s.Wrappers) == 0 {
		return nil
	}
	return &usecase.RunOptions{Observer: s.Observer, Wrappers: s.Wrappers}
}

// Option configures a Shortcut at definition time.
type Option func(*Shortcut)

// WithObserver attaches an observer to every run of the shortcut.
func WithObserver(obs usecase.Observer) Option {
	return func(s *Shortcut) { s.Observer = obs }
}

// WithWrappers appends cross-cutting wrappers to every run of the shortcut.
func WithWrappers(wrappers ...usecase.Wrapper) Option {
	return func(s *Shortcut) { s.Wrappers = append(s.Wrappers, wrappers...) }
}

// Table maps shortcut names to use case factories. Safe for concurrent use.
type Table struct {
	mu        sync.RWMutex
	shortcuts map[string]*Shortcut
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{shortcuts: make(map[string]*Shortcut)}
}

// Define registers factory under name.
func (t *Table) Define(name string, factory usecase.Factory, opts ...Option) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalid)
	}
	if factory == nil {
		return fmt.Errorf("%w: %q has no factory", ErrInvalid, name)
	}
	s := &Shortcut{Name: name, Factory: factory}
	for _, opt := range opts {
		opt(s)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shortcuts == nil {
		t.shortcuts = make(map[string]*Shortcut)
	}
	if _, ok := t.shortcuts[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	t.shortcuts[name] = s
	return nil
}

// MustDefine is Define that panics on error. It returns t for chaining.
func (t *Table) MustDefine(name string, factory usecase.Factory, opts ...Option) *Table {
	if err := t.Define(name, factory, opts...); err != nil {
		panic(fmt.Sprintf("domain: %v", err))
	}
	return t
}

// Lookup returns the shortcut for name, or nil and false if not found.
func (t *Table) Lookup(name string) (*Shortcut, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.shortcuts[name]
	return s, ok
}

// Names returns all defined shortcut names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.shortcuts))
	for n := range t.shortcuts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bind returns a Domain that runs the table's use cases with host as their
// collaborator.
func (t *Table) Bind(host any) *Domain {
	return &Domain{table: t, host: host}
}

// Domain is a Table bound to a host object.
type Domain struct {
	table *Table
	host  any
}

// Host returns the object the domain was bound to.
func (d *Domain) Host() any { return d.host }

// Call runs the use case defined as name, constructed with the host and args.
func (d *Domain) Call(ctx context.Context, name string, args ...any) (usecase.Outcome, error) {
	s, ok := d.table.Lookup(name)
	if !ok {
		return usecase.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownUseCase, name)
	}
	return usecase.ExecuteWith(ctx, s.Factory, s.options(), d.host, args...)
}

// Has reports whether name is defined.
func (d *Domain) Has(name string) bool {
	_, ok := d.table.Lookup(name)
	return ok
}
