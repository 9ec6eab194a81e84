//go:build mage

// Package main contains Mage build targets for quote-detection developer tooling.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the pipeline targets expect.
var projectDirs = []string{
	"data",
	"output",
	"logs",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "quote-detection"
	cmdPkg  = "./cmd/quote-detection"

	// buildTags enables FTS5 in go-sqlite3 for the quote store.
	buildTags = "sqlite_fts5"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-tags", buildTags,
		"-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs all package tests with the store's build tags.
func Test() error {
	return sh.RunV("go", "test", "-tags", buildTags, "./...")
}

// Stats prints project metrics: Go production/test lines and rule file patterns.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	patterns, err := countPatterns(filepath.Join("internal", "rules", "data"))
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Built-in patterns:               %d\n", patterns)
	return nil
}

// countGoLines counts non-blank lines in Go files outside _examples,
// separately for production and test files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				n++
			}
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countPatterns counts pattern ids in the built-in rule files.
func countPatterns(dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", f, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "  ") && !strings.HasPrefix(line, "   ") && strings.HasSuffix(strings.TrimSpace(line), ":") {
				total++
			}
		}
	}
	return total, nil
}

// Quotes builds the CLI and runs quote detection on data/corpus.csv.
func Quotes() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "quotes",
		"-i", filepath.Join("data", "corpus.csv"),
		"-o", filepath.Join("output", "quotes.csv"),
		"--db", filepath.Join("output", "quotes.db"),
		"--logfile", filepath.Join("logs", "quotes.log"))
}

// Actors builds the CLI and runs actor extraction on data/corpus.csv.
func Actors() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "actors",
		"-i", filepath.Join("data", "corpus.csv"),
		"-o", filepath.Join("output", "actors.csv"),
		"--logfile", filepath.Join("logs", "actors.log"))
}
