package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Export serializes the full catalog to a single indented JSON
// artifact. The artifact is the durable hand-off to the association
// and persistence stages of a later run.
func Export(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("write catalog export: %w", err)
	}
	return nil
}

// LoadExport reads a catalog export artifact back.
func LoadExport(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog export: %w", err)
	}
	var entries []Entry
	err = json.Unmarshal(data, &entries)
	if err != nil {
		return nil, fmt.Errorf("decode catalog export: %w", err)
	}
	return entries, nil
}
