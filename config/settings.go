package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are process-level knobs read from the environment.
type Settings struct {
	LogLevel       string        `env:"RUNCASE_LOG_LEVEL" envDefault:"info"`
	LogPrefix      string        `env:"RUNCASE_LOG_PREFIX" envDefault:"runcase"`
	Tracing        bool          `env:"RUNCASE_TRACING" envDefault:"false"`
	OTelEndpoint   string        `env:"RUNCASE_OTEL_ENDPOINT"`
	DefaultTimeout time.Duration `env:"RUNCASE_DEFAULT_TIMEOUT" envDefault:"0s"`
	DomainsFile    string        `env:"RUNCASE_DOMAINS_FILE"`
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// LoadSettingsFrom reads Settings from the given variables instead of the
// process environment.
func LoadSettingsFrom(environ map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
