package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sample = `
app:
  name: ${RESOURCE_TEST_NAME:todo-api}
  plain: plain-value
  missing: ${RESOURCE_TEST_MISSING}
  server:
    port: ${RESOURCE_TEST_PORT:8080}
    timeout: 5s
  flag: true
`

func TestLoadResolvesPlaceholders(t *testing.T) {
	t.Setenv("RESOURCE_TEST_PORT", "9090")

	if err := Load([]byte(sample)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := GetString("app.name"); got != "todo-api" {
		t.Errorf("app.name = %q, want default todo-api", got)
	}
	if got := GetInt("app.server.port"); got != 9090 {
		t.Errorf("app.server.port = %d, want 9090 from env", got)
	}
	if got := GetString("app.plain"); got != "plain-value" {
		t.Errorf("app.plain = %q, want plain-value", got)
	}
	if got := Get("app.missing"); got != nil {
		t.Errorf("app.missing = %v, want nil", got)
	}
	if got := GetDuration("app.server.timeout"); got != 5*time.Second {
		t.Errorf("app.server.timeout = %v, want 5s", got)
	}
	if !GetBool("app.flag") {
		t.Error("app.flag = false, want true")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RESOURCE_TEST_NAME", "from-env")

	if err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got := GetString("app.name"); got != "from-env" {
		t.Errorf("app.name = %q, want from-env", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("LoadFile() on a missing file returned nil error")
	}
}
