package main

import "github.com/varalys/licensecheck/cmd/licensecheck"

func main() { licensecheck.Execute() }
