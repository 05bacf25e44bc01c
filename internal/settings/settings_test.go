package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/lumina/internal/settings"
)

func TestLoadOrDefault_MissingFile(t *testing.T) {
	s, err := settings.LoadOrDefault(filepath.Join(t.TempDir(), "settings.yml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	want := settings.Default()
	if s != want {
		t.Errorf("got %+v, want defaults %+v", s, want)
	}
	if !s.EnableAIImages || s.UserName != "Reader" || s.ThemeColor != settings.ThemeTeal {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	s := settings.Settings{EnableAIImages: false, UserName: "Ada", ThemeColor: settings.ThemeViolet}
	if err := settings.Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := settings.LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if got != s {
		t.Errorf("round trip: got %+v, want %+v", got, s)
	}
}

func TestLoadOrDefault_UnknownThemeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	if err := os.WriteFile(path, []byte("theme_color: chartreuse\nuser_name: Ada\n"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := settings.LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if got.ThemeColor != settings.ThemeTeal {
		t.Errorf("ThemeColor = %q, want fallback teal", got.ThemeColor)
	}
	if got.UserName != "Ada" {
		t.Errorf("UserName = %q, want Ada", got.UserName)
	}
}
