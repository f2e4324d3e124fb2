package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestCommands_DefaultConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	run(t, "add", "Buy", "milk", "--priority")
	if _, err := os.Stat(filepath.Join(home, ".config", "todoshell", "config.json")); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "todoshell", "todo.db")); err != nil {
		t.Fatalf("default database not created: %v", err)
	}

	if out := run(t, "lists"); !strings.Contains(out, "Inbox (1 open, 1 total)") {
		t.Fatalf("lists output %q", out)
	}

	run(t, "login", "--name", "Ada", "--token", "t")
	if out := run(t, "whoami"); out != "Ada\n" {
		t.Fatalf("whoami output %q", out)
	}
	run(t, "logout")
	if out := run(t, "whoami"); out != "Not logged in\n" {
		t.Fatalf("whoami after logout %q", out)
	}

	if out := run(t, "filter", "show"); !strings.Contains(out, `"kanbanColumns"`) {
		t.Fatalf("filter show output %q", out)
	}

	if out := run(t, "purge", "--yes"); !strings.Contains(out, "deleted 1 todo") {
		t.Fatalf("purge output %q", out)
	}
}

func TestCommands_DatabaseFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "other.db")

	run(t, "--database", dbPath, "lists", "create", "Work")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("--database ignored: %v", err)
	}
	if out := run(t, "--database", dbPath, "lists"); !strings.Contains(out, "Work (0 open, 0 total)") {
		t.Fatalf("lists output %q", out)
	}
}

func TestCommands_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--driver", "mysql", "lists"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("unsupported driver should fail")
	}

	cmd = NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.json"), "lists"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("missing explicit config should fail")
	}
}
