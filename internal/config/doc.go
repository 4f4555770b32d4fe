// Package config loads, normalizes, and validates scorebook
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and applies SCOREBOOK_* environment
// overrides. The Config type centralizes every knob the CLI needs, so
// the event file root, database location, and log settings are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code
// receives sanitized paths, canonical log formats, and clear
// validation errors.
package config
