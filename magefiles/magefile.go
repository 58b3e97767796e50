//go:build mage

// Package main contains Mage build targets for the marketing site.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "web"
	cmdPkg  = "./cmd/web"
)

// Build compiles the server binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-trimpath", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Lint vets the code and schema-checks the local content files.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "run", cmdPkg, "content", "lint")
}

// Run builds and starts the server in dev mode (templates and content reload on change).
func Run() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"VOSTRA_WEB_SERVER_DEV": "true"}, filepath.Join(binDir, binName), "serve")
}

// Matrix prints the pricing matrix with data-quality warnings.
func Matrix() error {
	return sh.RunV("go", "run", cmdPkg, "matrix")
}

// Clean removes build output.
func Clean() error {
	return os.RemoveAll(binDir)
}
