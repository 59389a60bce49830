package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr != ":8080" {
		t.Errorf("addr = %q", c.Addr)
	}
	if c.DB.Driver != "sqlite3" {
		t.Errorf("driver = %q", c.DB.Driver)
	}
	if c.Log.Level != "info" {
		t.Errorf("level = %q", c.Log.Level)
	}
	if got := c.CORSOrigins(); !reflect.DeepEqual(got, []string{"*"}) {
		t.Errorf("cors origins = %v", got)
	}
}

func TestMissingFileIsNotAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestYAMLFileLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchange.yaml")
	body := "addr: \":9000\"\ndb:\n  driver: postgres\n  dsn: \"postgres://localhost/exchange?sslmode=disable\"\nlog:\n  level: debug\ncors:\n  allowed_origins: \"https://a.example,https://b.example\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr != ":9000" || c.DB.Driver != "postgres" || c.Log.Level != "debug" {
		t.Errorf("config = %+v", c)
	}
	want := []string{"https://a.example", "https://b.example"}
	if got := c.CORSOrigins(); !reflect.DeepEqual(got, want) {
		t.Errorf("cors origins = %v, want %v", got, want)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchange.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EXCHANGE_ADDR", ":7777")
	t.Setenv("EXCHANGE_LOG_LEVEL", "warn")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Addr != ":7777" {
		t.Errorf("env override lost, addr = %q", c.Addr)
	}
	if c.Log.Level != "warn" {
		t.Errorf("level = %q", c.Log.Level)
	}
}

func TestRejectsUnknownDriver(t *testing.T) {
	t.Setenv("EXCHANGE_DB_DRIVER", "oracle")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchange.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
