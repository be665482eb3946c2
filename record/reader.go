package record

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Load reads a record file.
func Load(path string) (*MatchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec MatchRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	rec.FilePath = path
	return &rec, nil
}

// List loads every record in dir, newest first (file names start with a
// timestamp). Unreadable files are skipped. A missing dir is not an error.
func List(dir string) ([]MatchRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read records dir: %w", err)
	}

	var records []MatchRecord
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		rec, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}
