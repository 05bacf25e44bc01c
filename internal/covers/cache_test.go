package covers_test

import (
	"encoding/base64"
	"os"
	"testing"

	"github.com/blackwell-systems/lumina/internal/covers"
)

func TestStoreAndRemove(t *testing.T) {
	c := covers.New(t.TempDir())
	path, err := c.Store("item-1", []byte("png bytes"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if path != c.Path("item-1") {
		t.Errorf("path = %q, want %q", path, c.Path("item-1"))
	}
	if !c.Exists("item-1") {
		t.Error("Exists = false after Store")
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "png bytes" {
		t.Errorf("stored content = %q, err %v", data, err)
	}

	if err := c.Remove("item-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if c.Exists("item-1") {
		t.Error("Exists = true after Remove")
	}
	// Removing again is a no-op.
	if err := c.Remove("item-1"); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestStoreDataURI(t *testing.T) {
	c := covers.New(t.TempDir())
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))
	path, err := c.StoreDataURI("item-2", uri)
	if err != nil {
		t.Fatalf("StoreDataURI: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "hello" {
		t.Errorf("decoded content = %q", data)
	}
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	for _, s := range []string{"", "https://example.com/x.png", "data:image/png;base64,!!!"} {
		if _, err := covers.DecodeDataURI(s); err == nil {
			t.Errorf("DecodeDataURI(%q) = nil error", s)
		}
	}
}
