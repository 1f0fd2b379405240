package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFile reads a UTF-8 JSON array of person records.
func LoadFile(path string) ([]*Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	// tolerate a UTF-8 BOM left by some editors
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var people []*Person
	if err := json.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("decode records %s: %w", path, err)
	}
	for i, p := range people {
		if p == nil {
			people[i] = NewPerson()
		}
	}
	return people, nil
}

// SaveFile writes people as an indented JSON array, replacing path atomically.
func SaveFile(path string, people []*Person) error {
	if people == nil {
		people = []*Person{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(people); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}
