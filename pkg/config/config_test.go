package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, styles, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	dir := filepath.Join(home, ".config", AppName)
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("expected default config file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "styles.json")); err != nil {
		t.Fatalf("expected default styles file: %v", err)
	}
	if cfg.Database.Driver != "sqlite3" || cfg.Database.DSN != filepath.Join(dir, "todo.db") {
		t.Fatalf("unexpected database config: %#v", cfg.Database)
	}
	if cfg.KeyMap["addtodo"] == "" {
		t.Fatalf("expected default keymap entries, got %v", cfg.KeyMap)
	}
	if styles != DefaultStyles() {
		t.Fatalf("expected default styles, got %#v", styles)
	}

	again, _, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !reflect.DeepEqual(again.KeyMap, cfg.KeyMap) {
		t.Fatalf("keymap differs between runs: first %v, second %v", cfg.KeyMap, again.KeyMap)
	}
}

func TestLoad_ExplicitFileOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	stylesPath := filepath.Join(home, "theme.json")
	if err := os.WriteFile(stylesPath, []byte(`{"accent_color":"#000000"}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(home, "custom.json")
	body := `{"database":{"driver":"postgres","dsn":"postgres://localhost/todo"},"styles_file":"` + stylesPath + `","keymap":{"AddTodo":"n"}}`
	if err := os.WriteFile(cfgPath, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, styles, err := Load(viper.New(), cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DSN != "postgres://localhost/todo" {
		t.Fatalf("unexpected database config: %#v", cfg.Database)
	}
	if cfg.KeyMap["addtodo"] != "n" {
		t.Fatalf("expected keymap override, got %v", cfg.KeyMap)
	}
	if styles.AccentColor != "#000000" || styles.ErrorColor != DefaultStyles().ErrorColor {
		t.Fatalf("expected partial style override, got %#v", styles)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
