// Package config loads, normalizes, and validates mp3sync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MP3SYNC_FLAC and MP3SYNC_LAME. The Config type centralizes the ambient knobs
// (tool binaries, temp area, logging, locking, output verification) while the
// per-invocation Run section is filled from the command line only.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
