// Package covers persists synthesized cover images on disk so library
// snapshots stay small: items reference a file path instead of carrying
// megabytes of base64.
package covers

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache stores one PNG per item under <baseDir>/<item-id>.png.
type Cache struct {
	baseDir string
}

// New creates a Cache rooted at baseDir.
func New(baseDir string) *Cache {
	return &Cache{baseDir: baseDir}
}

// Path returns the cover path for an item.
func (c *Cache) Path(itemID string) string {
	return filepath.Join(c.baseDir, itemID+".png")
}

// Exists reports whether a cover is cached for the item.
func (c *Cache) Exists(itemID string) bool {
	_, err := os.Stat(c.Path(itemID))
	return err == nil
}

// Store writes data to the item's cover path via a temp file and rename, so
// a crash mid-write never leaves a truncated cover behind.
func (c *Cache) Store(itemID string, data []byte) (string, error) {
	if err := os.MkdirAll(c.baseDir, 0750); err != nil {
		return "", fmt.Errorf("create covers dir: %w", err)
	}
	destPath := c.Path(itemID)
	tmpPath := destPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return "", fmt.Errorf("writing cover: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}

// StoreDataURI decodes a base64 data URI and stores it as the item's cover.
func (c *Cache) StoreDataURI(itemID, dataURI string) (string, error) {
	data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	return c.Store(itemID, data)
}

// Remove deletes the item's cached cover if it exists.
func (c *Cache) Remove(itemID string) error {
	err := os.Remove(c.Path(itemID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DecodeDataURI extracts the payload of a base64 data URI.
func DecodeDataURI(s string) ([]byte, error) {
	_, b64, ok := strings.Cut(s, ";base64,")
	if !ok || !strings.HasPrefix(s, "data:") {
		return nil, fmt.Errorf("not a base64 data URI")
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decoding data URI: %w", err)
	}
	return data, nil
}
