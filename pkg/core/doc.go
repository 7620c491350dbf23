// Package core provides a small, stable facade over licensecheck's internal
// packages for external integrations.
//
// Example:
//
//	deps, err := core.Licenses(ctx, "node", ".")
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, core.Check(deps))
package core
