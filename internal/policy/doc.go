// Package policy decides which dependencies are reported as incompatible.
//
// Check applies the fixed marker rule to a Record. Ignore and Baseline narrow
// what a run reports without changing that rule.
package policy
