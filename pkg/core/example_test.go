package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/varalys/licensecheck/pkg/core"
)

func ExampleCheck() {
	deps := []core.Dependency{
		{Name: "express", Version: "4.19.2", License: "MIT"},
		{Name: "readline-sync", Version: "1.4.10", License: "GPL-3.0"},
	}
	for _, f := range core.Check(deps) {
		fmt.Println(f)
	}
	// Output: readline-sync: GPL-3.0 (Incompatible with many commercial uses)
}

func ExampleLicenses() {
	deps, err := core.Licenses(context.Background(), "node", ".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "license-checker failed:", err)
		return
	}
	_ = core.MarshalFindings(os.Stdout, core.Check(deps))
}
