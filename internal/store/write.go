package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// writeDocument serializes v and replaces the file at path atomically:
// write to a temp file in the same directory, then rename over the target.
// A crash mid-save leaves either the old document or the new one, never a
// torn file.
func writeDocument(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
