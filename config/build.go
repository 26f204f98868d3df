package config

import (
	"fmt"
	"time"

	"github.com/dcshock/runcase/domain"
	"github.com/dcshock/runcase/usecase"
)

// BuildOptions configures how a table is built from config (observers, wrappers, timeouts).
type BuildOptions struct {
	// ObserverRegistry is used when a domain or use case lists observers by name.
	ObserverRegistry *ObserverRegistry

	// Observer, if set, is attached to every use case in addition to named observers.
	Observer usecase.Observer

	// Wrappers are applied to every use case, outside any timeout from config.
	Wrappers []usecase.Wrapper

	// DefaultTimeout is used when neither the use case nor its domain sets a timeout.
	DefaultTimeout time.Duration
}

// BuildTable builds a domain.Table from config and registry. Every use case's
// class (or name, when class is empty) must be registered.
func BuildTable(reg *Registry, cfg *DomainConfig, opts *BuildOptions) (*domain.Table, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if opts == nil {
		opts = &BuildOptions{}
	}
	table := domain.NewTable()
	for i, ref := range cfg.UseCases {
		if ref.Name == "" {
			return nil, fmt.Errorf("use case %d: name required", i)
		}
		factory, ok := reg.Get(ref.ClassName())
		if !ok {
			return nil, fmt.Errorf("use case %d (%q): class %q not in registry", i, ref.Name, ref.ClassName())
		}
		shortcutOpts, err := shortcutOptions(cfg, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("use case %d (%q): %w", i, ref.Name, err)
		}
		if err := table.Define(ref.Name, factory, shortcutOpts...); err != nil {
			return nil, fmt.Errorf("use case %d: %w", i, err)
		}
	}
	return table, nil
}

func shortcutOptions(cfg *DomainConfig, ref UseCaseRef, opts *BuildOptions) ([]domain.Option, error) {
	var out []domain.Option
	obs, err := buildObserver(append(append([]string{}, cfg.Observers...), ref.Observers...), opts)
	if err != nil {
		return nil, err
	}
	if obs != nil {
		out = append(out, domain.WithObserver(obs))
	}
	wrappers := append([]usecase.Wrapper{}, opts.Wrappers...)
	timeout := ref.Timeout.Duration()
	if timeout <= 0 {
		timeout = cfg.Timeout.Duration()
	}
	if timeout <= 0 {
		timeout = opts.DefaultTimeout
	}
	if timeout > 0 {
		wrappers = append(wrappers, usecase.Timeout(timeout))
	}
	if len(wrappers) > 0 {
		out = append(out, domain.WithWrappers(wrappers...))
	}
	return out, nil
}

// buildObserver looks up each name in opts.ObserverRegistry and combines them,
// together with opts.Observer, using usecase.MultiObserver.
func buildObserver(names []string, opts *BuildOptions) (usecase.Observer, error) {
	list := []usecase.Observer{opts.Observer}
	for i, name := range names {
		if opts.ObserverRegistry == nil {
			return nil, fmt.Errorf("observer %d: %q requires BuildOptions.ObserverRegistry", i, name)
		}
		obs, ok := opts.ObserverRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("observer %d: %q not in registry", i, name)
		}
		list = append(list, obs)
	}
	return usecase.MultiObserver(list...), nil
}

// BuildAllTables builds a domain.Table for each entry in multi. Keys are domain names.
// If a domain config's Name is empty, the map key is used as the domain name.
func BuildAllTables(reg *Registry, multi *MultiDomainConfig, opts *BuildOptions) (map[string]*domain.Table, error) {
	if multi == nil {
		return nil, fmt.Errorf("MultiDomainConfig is nil")
	}
	out := make(map[string]*domain.Table, len(multi.Domains))
	for name, cfg := range multi.Domains {
		if cfg.Name == "" {
			cfg.Name = name
		}
		t, err := BuildTable(reg, &cfg, opts)
		if err != nil {
			return nil, fmt.Errorf("domain %q: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}
