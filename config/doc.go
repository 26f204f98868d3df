// Package config provides a use case registry and human-readable domain configuration.
//
// Register use case factories by type name, then declare domains in YAML (or
// structs) that reference those names as shortcuts, with optional modifiers
// (class, timeout, observers):
//
//	accounts:
//	  timeout: 10s
//	  observers: [log]
//	  use_cases:
//	    - open_account
//	    - name: close
//	      class: CloseAccount
//	      timeout: 5s
//	      observers: [trace]
//
// Build a table with BuildTable(registry, config, opts) and bind it to a host
// with Table.Bind. Named observers are resolved through BuildOptions.ObserverRegistry.
//
// Process-level settings (log level, tracing, default timeout) are read from
// RUNCASE_* environment variables with LoadSettings.
package config
