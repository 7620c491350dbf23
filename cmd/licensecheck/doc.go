// Package licensecheck provides the command-line interface for the
// licensecheck tool. It configures subcommands (scan, baseline, ecosystems,
// config), parses flags and configuration files, and executes the selected
// command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/varalys/licensecheck/cmd/licensecheck"
//	func main() { licensecheck.Execute() }
package licensecheck
