// Package config loads, normalizes, and validates retitle configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a .env file when present, and honours
// RETITLE_LOG_LEVEL, RETITLE_LOG_FORMAT, and RETITLE_HISTORY_DB overrides.
// Engine tunables (similarity metric and threshold, casing language, object
// pronouns, extra keywords) live here so the rule table can be extended
// without code changes.
package config
