// Package config loads, normalizes, and validates pika configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PIKA_LOG_LEVEL. The Config type centralizes the few knobs the dispatcher
// needs: which package runner starts delegate tools, the default publish
// contents directory, and how diagnostics are logged.
//
// Always obtain settings through this package so the dispatcher receives a
// parsed runner command line and canonical log settings.
package config
