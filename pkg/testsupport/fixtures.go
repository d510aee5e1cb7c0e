// Package testsupport holds shared helpers for package tests: fixture
// loading, golden files and small sample tables.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/davenforce/SnowflakeProxy/table"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t *testing.T, path string, dest interface{}) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// TempFile creates a temporary file with the given content, removed when the
// test finishes.
func TempFile(t *testing.T, content []byte) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "fixture-*")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	if _, err := tmpfile.Write(content); err != nil {
		tmpfile.Close()
		t.Fatalf("failed to write to temp file: %v", err)
	}

	if err := tmpfile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}

	return tmpfile.Name()
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// SalesTable builds the small result set used across package tests: three
// regions with their revenue totals.
func SalesTable(t *testing.T) *table.Table {
	t.Helper()

	result := table.New(
		table.Column{Name: "region", Type: table.TypeString},
		table.Column{Name: "revenue", Type: table.TypeFloat},
	)
	rows := []table.Row{
		{"emea", 1200.5},
		{"amer", 2400.0},
		{"apac", 860.25},
	}
	for _, row := range rows {
		if err := result.AppendRow(row); err != nil {
			t.Fatalf("failed to build sales table: %v", err)
		}
	}
	return result
}
