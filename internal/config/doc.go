// Package config loads the storyshare client configuration by merging
// command-line overrides, environment variables, an optional JSON file, and
// built-in defaults. Earlier sources win for non-zero fields; the merged
// result is validated before use.
package config
