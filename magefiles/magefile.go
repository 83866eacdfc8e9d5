//go:build mage

// Mage targets for building and testing fieldbook. Run `mage -l` for the
// target list; the common cycle is `mage build` then `mage test`.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "fieldbook"
	binaryDir  = "bin"
	cmdDir     = "./cmd/fieldbook"
)

// Build compiles the fieldbook binary into bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs the whole test suite, unit and integration.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestUnit runs the package unit tests, leaving out tests/.
func TestUnit() error {
	pkgs, err := unitPackages()
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		fmt.Println("no unit test packages found")
		return nil
	}
	return sh.RunV("go", append([]string{"test"}, pkgs...)...)
}

// TestIntegration runs the scenario tests under tests/ after a build.
func TestIntegration() error {
	mg.Deps(Build)
	return sh.RunV("go", "test", "./tests/...")
}

// unitPackages lists every package outside the tests/ tree.
func unitPackages() ([]string, error) {
	out, err := sh.Output("go", "list", "./...")
	if err != nil {
		return nil, err
	}
	var pkgs []string
	for _, pkg := range strings.Split(out, "\n") {
		if pkg == "" || strings.Contains(pkg, "/tests") {
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Lint runs golangci-lint over the module.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes the bin/ directory and cached build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install puts the built binary on GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(
		filepath.Join(gopath, "bin", binaryName),
		filepath.Join(binaryDir, binaryName),
	)
}
