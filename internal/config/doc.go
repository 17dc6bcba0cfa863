// Package config loads, defaults, and validates the TOML configuration
// file. Load resolves the file from an explicit path, the user config
// directory, or a project-local gameid.toml, then normalizes every path
// field to an absolute location so the rest of the code never re-expands
// them.
package config
