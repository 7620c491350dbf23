// Package config loads licensecheck configuration from local and global YAML
// files with precedence rules. It is internal; CLI code maps flags and files
// into checker options.
package config
