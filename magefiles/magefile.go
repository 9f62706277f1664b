//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for forkify developer tooling.
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
	binDir  = "bin"
	binName = "forkify"
	cmdPkg  = "./cmd/forkify"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests. Set FORKIFY_TEST_REDIS_URL to include the
// Redis storage tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Serve builds the binary and starts the browser UI.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "serve", "--log-level", "info")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

const sampleConfig = `# forkify configuration. Every key can also be set as FORKIFY_<SECTION>_<KEY>.
api:
  url: https://forkify-api.herokuapp.com/api/v2/recipes
  timeout: 10s
  max_retries: 3
search:
  results_per_page: 10
ui:
  modal_close_sec: 2.5
storage:
  backend: sqlite
server:
  addr: 127.0.0.1:8080
`

// Init creates .secrets/ for the API key and writes a sample forkify.yaml
// unless one exists.
func Init() error {
	if err := os.MkdirAll(".secrets", 0o700); err != nil {
		return fmt.Errorf("creating .secrets: %w", err)
	}
	fmt.Println("   .secrets/ (put your API key in .secrets/forkify-api-key)")

	if _, err := os.Stat("forkify.yaml"); err == nil {
		fmt.Println("   forkify.yaml exists, left unchanged")
		return nil
	}
	if err := os.WriteFile("forkify.yaml", []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("writing forkify.yaml: %w", err)
	}
	fmt.Println("   forkify.yaml")
	return nil
}

// Stats prints Go production and test line counts and the embedded
// template line count.
func Stats() error {
	prod, test, tmpl := 0, 0, 0
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || info.Name() == ".git" || info.Name() == binDir {
				return filepath.SkipDir
			}
			return nil
		}
		var counter *int
		switch {
		case strings.HasSuffix(path, "_test.go"):
			counter = &test
		case strings.HasSuffix(path, ".go"):
			counter = &prod
		case strings.HasSuffix(path, ".html"):
			counter = &tmpl
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		*counter += countLines(data)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", test)
	fmt.Printf("Lines of templates (HTML):      %d\n", tmpl)
	return nil
}

// countLines counts non-blank lines.
func countLines(data []byte) int {
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
