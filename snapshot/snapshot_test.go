// Package snapshot_test provides golden snapshot tests for pipeline
// resolution.
//
// Each TOML pipeline description in testdata/in/ is resolved and its dump
// is compared to the golden file testdata/golden/<name>.txt.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gogpu/shadercfg/pipeline"
)

// ---------------------------------------------------------------------------
// Test Runner
// ---------------------------------------------------------------------------

// TestSnapshots resolves every input pipeline and compares the dump with
// its golden file.
func TestSnapshots(t *testing.T) {
	inputs := loadInputs(t, "testdata/in")
	if len(inputs) == 0 {
		t.Fatal("no input pipelines found in testdata/in/")
	}

	for _, name := range inputs {
		t.Run(name, func(t *testing.T) {
			d, err := pipeline.Load(filepath.Join("testdata", "in", name+".toml"))
			if err != nil {
				t.Fatalf("[%s] load failed: %v", name, err)
			}
			res, err := pipeline.Resolve(d, nil)
			if err != nil {
				t.Fatalf("[%s] resolve failed: %v", name, err)
			}
			compareGolden(t, filepath.Join("testdata", "golden", name+".txt"), res.String())
		})
	}
}

// TestSnapshotsDeterministic resolves every input twice and checks the
// dumps match.
func TestSnapshotsDeterministic(t *testing.T) {
	for _, name := range loadInputs(t, "testdata/in") {
		path := filepath.Join("testdata", "in", name+".toml")
		var dumps [2]string
		for i := range dumps {
			d, err := pipeline.Load(path)
			if err != nil {
				t.Fatalf("[%s] load failed: %v", name, err)
			}
			res, err := pipeline.Resolve(d, nil)
			if err != nil {
				t.Fatalf("[%s] resolve failed: %v", name, err)
			}
			dumps[i] = res.String()
		}
		if dumps[0] != dumps[1] {
			t.Errorf("[%s] dump differs between runs:\n%s", name, diffStrings(dumps[0], dumps[1]))
		}
	}
}

// loadInputs returns the base names of the .toml files in dir, sorted.
func loadInputs(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read input directory %q: %v", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}

	// Sort for deterministic test order
	sort.Strings(names)
	return names
}

// ---------------------------------------------------------------------------
// Golden File Comparison
// ---------------------------------------------------------------------------

// compareGolden compares actual output with the golden file at path.
// If UPDATE_GOLDEN is set, writes actual output as the new golden file.
func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			t.Fatalf("create golden dir: %v", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(actual), 0o644); wErr != nil {
			t.Fatalf("write golden file: %v", wErr)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.\n\nActual output:\n%s", path, truncate(actual, 500))
	}
	if err != nil {
		t.Fatalf("read golden file %s: %v", path, err)
	}

	// Normalize line endings for cross-platform comparison.
	// Git may convert \n to \r\n on Windows checkout.
	expectedStr := strings.ReplaceAll(string(expected), "\r\n", "\n")
	actualStr := strings.ReplaceAll(actual, "\r\n", "\n")

	if expectedStr != actualStr {
		diff := diffStrings(expectedStr, actualStr)
		t.Errorf("output differs from golden %s:\n%s", path, diff)
	}
}

// diffStrings produces a simple line-by-line diff showing the first difference
// and surrounding context.
func diffStrings(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var sb strings.Builder
	maxLines := len(expectedLines)
	if len(actualLines) > maxLines {
		maxLines = len(actualLines)
	}

	const contextLines = 3
	firstDiff := -1
	for i := 0; i < maxLines; i++ {
		var eLine, aLine string
		if i < len(expectedLines) {
			eLine = expectedLines[i]
		}
		if i < len(actualLines) {
			aLine = actualLines[i]
		}
		if eLine != aLine {
			firstDiff = i
			break
		}
	}

	if firstDiff < 0 {
		return "(no difference found)"
	}

	fmt.Fprintf(&sb, "first difference at line %d:\n", firstDiff+1)
	fmt.Fprintf(&sb, "  expected lines: %d\n", len(expectedLines))
	fmt.Fprintf(&sb, "  actual lines:   %d\n\n", len(actualLines))

	// Show context around the first difference
	start := firstDiff - contextLines
	if start < 0 {
		start = 0
	}
	end := firstDiff + contextLines + 1
	if end > maxLines {
		end = maxLines
	}

	for i := start; i < end; i++ {
		prefix := " "
		var eLine, aLine string
		if i < len(expectedLines) {
			eLine = expectedLines[i]
		}
		if i < len(actualLines) {
			aLine = actualLines[i]
		}
		if eLine != aLine {
			prefix = "!"
		}
		fmt.Fprintf(&sb, "%s %4d expected: %s\n", prefix, i+1, truncate(eLine, 120))
		if eLine != aLine {
			fmt.Fprintf(&sb, "%s %4d actual:   %s\n", prefix, i+1, truncate(aLine, 120))
		}
	}

	return sb.String()
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
