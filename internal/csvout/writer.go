package csvout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
)

// EnsureDir creates the output directory if it does not already exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// Append writes records to an append-only CSV file, emitting the header
// first only when the file does not yet exist. Existing content is never
// rewritten or truncated. Zero records is a no-op and creates nothing.
func Append(path string, header []string, records [][]string) error {
	if len(records) == 0 {
		return nil
	}

	writeHeader := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		writeHeader = true
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
