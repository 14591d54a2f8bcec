//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Research builds the CLI and runs a single company query, writing the PDF
// report to the default location.
func Research(company string) error {
	mg.Deps(Build)
	if company == "" {
		return fmt.Errorf("company name is required")
	}
	return sh.RunV(filepath.Join(binDir, binName), "research", company)
}

// Serve builds the CLI and starts the web UI on the configured address.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve")
}
