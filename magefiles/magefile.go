//go:build mage

// Package main provides build targets for the rutas project using Mage.
//
// Usage:
//
//	mage build     Compile the rutas binary to bin/
//	mage test      Run all tests
//	mage cover     Run tests with coverage report
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install rutas to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "rutas"
	binaryDir  = "bin"
	cmdDir     = "./cmd/rutas"
)

// Build compiles the rutas binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Install installs the rutas binary to GOPATH/bin.
func Install() error {
	return sh.RunV(binGo, "install", cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs all tests with coverage and writes coverage.out.
func Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func=coverage.out")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.Remove("coverage.out"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return sh.RunV(binGo, "clean")
}
