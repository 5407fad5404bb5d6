// Package config loads, normalizes, and validates gifcast's TOML
// configuration.
//
// Defaults are defined in defaults.go and a commented sample lives in
// sample_config.toml (written by "gifcast config init"). Load expands ~ in
// path fields and rejects out-of-range capture parameters before any other
// component sees them, so downstream packages can trust the values.
package config
