package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-depselect/pkg/catalog"
)

// MustLoadCatalog reads a fixture file of (text, value, filterKey) triples.
// Testing helpers fail the test on error to keep contract tests concise.
func MustLoadCatalog(t *testing.T, path string) catalog.Catalog {
	t.Helper()

	rows, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return rows
}

// LoadCatalog returns a catalog without requiring testing.T, allowing callers
// to wire fixtures in setup functions. The file may hold JSON or YAML triples.
func LoadCatalog(path string) (catalog.Catalog, error) {
	if path == "" {
		return nil, errors.New("testsupport: catalog path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read catalog: %w", err)
	}
	rows, jsonErr := catalog.Decode(data)
	if jsonErr == nil {
		return rows, nil
	}
	var fromYAML catalog.Catalog
	if yamlErr := yaml.Unmarshal(data, &fromYAML); yamlErr != nil {
		return nil, fmt.Errorf("testsupport: %s is not valid JSON or YAML triples: %w", filepath.Base(path), jsonErr)
	}
	return fromYAML, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
