package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	colorOff := false
	in := Config{
		LastOpenedVault:  "/vaults/aegis-export-20240101.json",
		LastVaultDir:     "/vaults",
		DefaultColorMode: &colorOff,
		ClipboardTool:    "wl-copy",
	}
	if err := in.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.LastOpenedVault != in.LastOpenedVault || got.LastVaultDir != in.LastVaultDir || got.ClipboardTool != in.ClipboardTool {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, in)
	}
	if got.ColorEnabled() {
		t.Error("color preference lost in round trip")
	}
}

func TestLoadOriginalBoolColorMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"last_opened_vault":"/vaults/aegis-export-1.json","default_color_mode":false}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.LastOpenedVault != "/vaults/aegis-export-1.json" {
		t.Errorf("vault path lost: %+v", got)
	}
	if got.ColorEnabled() {
		t.Error("default_color_mode false should disable color")
	}
}

func TestColorEnabledDefaultsOn(t *testing.T) {
	if !(Config{}).ColorEnabled() {
		t.Error("unset color mode must default to on")
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if got != (Config{}) {
		t.Fatalf("expected empty config, got %+v", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{ not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected a parse error to surface")
	}
	if got != (Config{}) {
		t.Fatalf("expected defaults for corrupt file, got %+v", got)
	}
}

func TestSaveOmitsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := (Config{LastVaultDir: "/vaults"}).SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, absent := range []string{"last_opened_vault", "clipboard_tool", "default_color_mode"} {
		if strings.Contains(string(raw), absent) {
			t.Errorf("unset field %s serialized: %s", absent, raw)
		}
	}
}
