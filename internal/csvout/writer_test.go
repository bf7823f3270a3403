package csvout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendWritesHeaderOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taf-NRT-2026-08-27.csv")
	header := []string{"station", "layer"}
	rows := [][]string{{"NRT", "BASE"}, {"NRT", "TEMPO"}}

	if err := Append(path, header, rows); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := Append(path, header, rows); err != nil {
		t.Fatalf("second append: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("len(lines) = %d, want 5: %q", len(lines), lines)
	}
	if lines[0] != "station,layer" {
		t.Errorf("header = %q", lines[0])
	}
	for _, line := range lines[1:] {
		if line == "station,layer" {
			t.Errorf("header written twice")
		}
	}
	// Second append must duplicate the first data block exactly.
	if lines[1] != lines[3] || lines[2] != lines[4] {
		t.Errorf("appended blocks differ: %q", lines)
	}
}

func TestAppendQuotesEmbeddedCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Append(path, []string{"raw"}, [][]string{{`a,b`}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	b, _ := os.ReadFile(path)
	if got := strings.TrimRight(string(b), "\n"); got != "raw\n\"a,b\"" {
		t.Errorf("content = %q", got)
	}
}

func TestAppendZeroRowsIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := Append(path, []string{"a"}, nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should not exist, stat err = %v", err)
	}
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("stat: %v", err)
	}
}
