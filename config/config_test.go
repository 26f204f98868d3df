package config

import (
	"context"
	"testing"
	"time"

	"github.com/dcshock/runcase/usecase"
	"gopkg.in/yaml.v3"
)

// counter is a use case whose result is its argument plus one.
type counter struct{ n int }

func newCounter(deps any, args ...any) (any, error) {
	return &counter{n: args[0].(int)}, nil
}

func (c *counter) Call(ctx context.Context) error {
	c.n++
	return nil
}

func (c *counter) Result(ctx context.Context) (any, error) { return c.n, nil }

// deadlineProbe reports whether its context carries a deadline.
func deadlineProbe(deps any, args ...any) (any, error) {
	var has bool
	return &usecase.Hooks{
		Name: "DeadlineProbe",
		Call: func(ctx context.Context) error {
			_, has = ctx.Deadline()
			return nil
		},
		Result: func(context.Context) (any, error) { return has, nil },
	}, nil
}

func TestRegistry_RegisterGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Counter", newCounter)
	f, ok := reg.Get("Counter")
	if !ok || f == nil {
		t.Fatal("Get(Counter) should return factory")
	}
	_, ok = reg.Get("missing")
	if ok {
		t.Error("Get(missing) should return false")
	}
	reg.Register("Probe", deadlineProbe)
	names := reg.Names()
	if len(names) != 2 || names[0] != "Counter" || names[1] != "Probe" {
		t.Errorf("names: %v", names)
	}
}

func TestRegistry_MustGet_Panic(t *testing.T) {
	reg := NewRegistry()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustGet missing should panic")
		}
	}()
	reg.MustGet("nope")
}

func TestParseDomainConfig_Simple(t *testing.T) {
	yaml := `
name: accounts
use_cases:
  - open_account
  - close_account
`
	cfg, err := ParseDomainConfig([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "accounts" {
		t.Errorf("name: got %q", cfg.Name)
	}
	if len(cfg.UseCases) != 2 {
		t.Fatalf("use cases: got %d", len(cfg.UseCases))
	}
	if cfg.UseCases[0].Name != "open_account" || cfg.UseCases[0].ClassName() != "open_account" {
		t.Errorf("use case 0: %+v", cfg.UseCases[0])
	}
}

func TestParseDomainConfig_WithOptions(t *testing.T) {
	yaml := `
name: accounts
timeout: 10s
observers: [log]
use_cases:
  - open_account
  - name: close
    class: CloseAccount
    timeout: 5s
    observers: [trace]
`
	cfg, err := ParseDomainConfig([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeout.Duration() != 10*time.Second || len(cfg.Observers) != 1 {
		t.Errorf("domain options: %+v", cfg)
	}
	u := cfg.UseCases[1]
	if u.Name != "close" || u.ClassName() != "CloseAccount" || u.Timeout.Duration() != 5*time.Second {
		t.Errorf("use case 1: %+v", u)
	}
	if len(u.Observers) != 1 || u.Observers[0] != "trace" {
		t.Errorf("observers: %v", u.Observers)
	}
}

func TestDuration_Unmarshal(t *testing.T) {
	data := []byte("timeout: 30s")
	var s struct {
		Timeout Duration `yaml:"timeout"`
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		t.Fatal(err)
	}
	if s.Timeout.Duration() != 30*time.Second {
		t.Errorf("got %v", s.Timeout.Duration())
	}
	if err := yaml.Unmarshal([]byte("timeout: soon"), &s); err == nil {
		t.Error("expected error for bad duration")
	}
}

func TestBuildTable(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Counter", newCounter)
	cfg := &DomainConfig{
		Name:     "math",
		UseCases: []UseCaseRef{{Name: "increment", Class: "Counter"}},
	}
	table, err := BuildTable(reg, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := table.Bind(nil).Call(context.Background(), "increment", 3)
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != 4 {
		t.Errorf("expected 4, got %v", out.Value)
	}
}

func TestBuildTable_UnknownClass(t *testing.T) {
	reg := NewRegistry()
	cfg := &DomainConfig{Name: "x", UseCases: []UseCaseRef{{Name: "not-registered"}}}
	if _, err := BuildTable(reg, cfg, nil); err == nil {
		t.Fatal("expected error for unknown class")
	}
}

func TestBuildTable_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Counter", newCounter)
	cfg := &DomainConfig{Name: "x", UseCases: []UseCaseRef{{Name: "Counter"}, {Name: "Counter"}}}
	if _, err := BuildTable(reg, cfg, nil); err == nil {
		t.Fatal("expected error for duplicate shortcut")
	}
}

func TestBuildTable_Timeouts(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Probe", deadlineProbe)
	cases := []struct {
		name string
		cfg  *DomainConfig
		opts *BuildOptions
		want bool
	}{
		{"none", &DomainConfig{UseCases: []UseCaseRef{{Name: "Probe"}}}, nil, false},
		{"use case", &DomainConfig{UseCases: []UseCaseRef{{Name: "Probe", Timeout: Duration(time.Second)}}}, nil, true},
		{"domain", &DomainConfig{Timeout: Duration(time.Second), UseCases: []UseCaseRef{{Name: "Probe"}}}, nil, true},
		{"default", &DomainConfig{UseCases: []UseCaseRef{{Name: "Probe"}}}, &BuildOptions{DefaultTimeout: time.Second}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			table, err := BuildTable(reg, c.cfg, c.opts)
			if err != nil {
				t.Fatal(err)
			}
			out, err := table.Bind(nil).Call(context.Background(), "Probe")
			if err != nil {
				t.Fatal(err)
			}
			if out.Value != c.want {
				t.Errorf("deadline: got %v, want %v", out.Value, c.want)
			}
		})
	}
}

func TestBuildTable_Observers(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Counter", newCounter)
	var seen []string
	obsReg := NewObserverRegistry()
	obsReg.Register("a", &namedObserver{name: "a", seen: &seen})
	obsReg.Register("b", &namedObserver{name: "b", seen: &seen})
	cfg := &DomainConfig{
		Observers: []string{"a"},
		UseCases:  []UseCaseRef{{Name: "Counter", Observers: []string{"b"}}},
	}
	opts := &BuildOptions{ObserverRegistry: obsReg, Observer: &namedObserver{name: "global", seen: &seen}}
	table, err := BuildTable(reg, cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := table.Bind(nil).Call(context.Background(), "Counter", 1); err != nil {
		t.Fatal(err)
	}
	want := []string{"global", "a", "b"}
	if len(seen) != len(want) {
		t.Fatalf("seen: got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d]: got %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestBuildTable_UnknownObserver(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Counter", newCounter)
	cfg := &DomainConfig{UseCases: []UseCaseRef{{Name: "Counter", Observers: []string{"missing"}}}}
	if _, err := BuildTable(reg, cfg, &BuildOptions{ObserverRegistry: NewObserverRegistry()}); err == nil {
		t.Error("expected error for unregistered observer")
	}
	if _, err := BuildTable(reg, cfg, nil); err == nil {
		t.Error("expected error when no observer registry is configured")
	}
}

func TestParseMultiDomainConfig_BuildAll(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Counter", newCounter)
	reg.Register("Probe", deadlineProbe)

	yaml := `
domains:
  math:
    name: math
    use_cases: [Counter]
  probes:
    timeout: 2s
    use_cases:
      - name: probe
        class: Probe
`
	multi, err := ParseMultiDomainConfig([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if len(multi.Domains) != 2 {
		t.Fatalf("domains: got %d", len(multi.Domains))
	}
	if multi.Domains["probes"].Name != "" {
		t.Errorf("probes name should be empty in raw config: %q", multi.Domains["probes"].Name)
	}
	tables, err := BuildAllTables(reg, multi, nil)
	if err != nil {
		t.Fatal(err)
	}
	out, err := tables["probes"].Bind(nil).Call(context.Background(), "probe")
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != true {
		t.Errorf("domain timeout should apply, got %v", out.Value)
	}
	out, err = tables["math"].Bind(nil).Call(context.Background(), "Counter", 41)
	if err != nil {
		t.Fatal(err)
	}
	if out.Value != 42 {
		t.Errorf("expected 42, got %v", out.Value)
	}
}

func TestBuildAllTables_Error(t *testing.T) {
	if _, err := BuildAllTables(NewRegistry(), nil, nil); err == nil {
		t.Error("expected error for nil config")
	}
	multi := &MultiDomainConfig{Domains: map[string]DomainConfig{"bad": {UseCases: []UseCaseRef{{Name: "nope"}}}}}
	if _, err := BuildAllTables(NewRegistry(), multi, nil); err == nil {
		t.Error("expected error for unknown class")
	}
}

func TestLoadSettingsFrom(t *testing.T) {
	s, err := LoadSettingsFrom(map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if s.LogLevel != "info" || s.LogPrefix != "runcase" || s.Tracing || s.DefaultTimeout != 0 {
		t.Errorf("defaults: %+v", s)
	}
	s, err = LoadSettingsFrom(map[string]string{
		"RUNCASE_LOG_LEVEL":       "debug",
		"RUNCASE_TRACING":         "true",
		"RUNCASE_DEFAULT_TIMEOUT": "3s",
		"RUNCASE_DOMAINS_FILE":    "domains.yaml",
		"RUNCASE_OTEL_ENDPOINT":   "http://localhost:4318",
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.LogLevel != "debug" || !s.Tracing || s.DefaultTimeout != 3*time.Second || s.DomainsFile != "domains.yaml" || s.OTelEndpoint != "http://localhost:4318" {
		t.Errorf("parsed: %+v", s)
	}
	if _, err := LoadSettingsFrom(map[string]string{"RUNCASE_TRACING": "maybe"}); err == nil {
		t.Error("expected error for bad bool")
	}
}

// namedObserver appends its name to seen when a run starts.
type namedObserver struct {
	name string
	seen *[]string
}

func (o *namedObserver) BeforeRun(ctx context.Context, runID string, args []any) error {
	*o.seen = append(*o.seen, o.name)
	return nil
}

func (o *namedObserver) AfterRun(ctx context.Context, runID, name string, out usecase.Outcome, err error, d time.Duration) error {
	return nil
}

func (o *namedObserver) BeforeStep(ctx context.Context, runID string, step usecase.Step) error {
	return nil
}

func (o *namedObserver) AfterStep(ctx context.Context, runID string, step usecase.Step, stepErr error, d time.Duration) error {
	return nil
}
