package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DomainConfig declares the shortcuts of one domain (e.g. from YAML).
type DomainConfig struct {
	Name      string       `yaml:"name"`
	Observers []string     `yaml:"observers"` // optional: applied to every use case of the domain
	Timeout   Duration     `yaml:"timeout"`   // optional: default timeout for every use case
	UseCases  []UseCaseRef `yaml:"use_cases"`
}

// UseCaseRef is a single shortcut entry: either a plain name or name + options.
// In YAML, a shortcut can be written as:
//   - open_account
//   - name: close
//     class: CloseAccount
//     timeout: 5s
//     observers: [log]
type UseCaseRef struct {
	// Name is the shortcut name callers use with Domain.Call.
	Name string `yaml:"name"`

	// Class is the registry name of the factory. Defaults to Name.
	Class string `yaml:"class"`

	// Timeout applied around the use case (e.g. "5s"). Overrides the domain timeout.
	Timeout Duration `yaml:"timeout"`

	// Observers by name, in addition to the domain's observers.
	Observers []string `yaml:"observers"`
}

// ClassName returns the registry name for the shortcut.
func (u UseCaseRef) ClassName() string {
	if u.Class != "" {
		return u.Class
	}
	return u.Name
}

// UnmarshalYAML allows a shortcut to be a string (name only) or a struct.
func (u *UseCaseRef) UnmarshalYAML(value *yaml.Node) error {
	var nameOnly string
	if err := value.Decode(&nameOnly); err == nil {
		u.Name = nameOnly
		return nil
	}
	type raw UseCaseRef
	return value.Decode((*raw)(u))
}

// Duration is a time.Duration that unmarshals from YAML strings (e.g. "60s", "5m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the standard time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// ParseDomainConfig parses YAML bytes into a single DomainConfig.
func ParseDomainConfig(data []byte) (*DomainConfig, error) {
	var cfg DomainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MultiDomainConfig is the root structure for a file that defines multiple domains.
// Top-level key is "domains"; each value is a domain config.
type MultiDomainConfig struct {
	Domains map[string]DomainConfig `yaml:"domains"`
}

// ParseMultiDomainConfig parses YAML bytes that contain a "domains" map from name to domain config.
// Example YAML:
//
//	domains:
//	  accounts:
//	    use_cases: [open_account, close_account]
//	  billing:
//	    timeout: 2s
//	    use_cases:
//	      - name: charge
//	        class: ChargeCard
func ParseMultiDomainConfig(data []byte) (*MultiDomainConfig, error) {
	var cfg MultiDomainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
