package library

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes YAML bytes into an item list.
func Parse(data []byte) ([]Item, error) {
	if len(data) == 0 {
		return []Item{}, nil
	}
	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing library YAML: %w", err)
	}
	if items == nil {
		return []Item{}, nil
	}
	return items, nil
}

// Marshal encodes an item list to YAML bytes.
func Marshal(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("encoding library: %w", err)
	}
	return buf.Bytes(), nil
}

func readSnapshot(path string) ([]Item, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading library: %w", err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, true, err
	}
	return items, true, nil
}

func writeSnapshot(path string, items []Item) error {
	data, err := Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
