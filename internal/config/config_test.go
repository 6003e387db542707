package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewConfigIsValid(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
addr: ":8080"
websocket:
  writeBufferSize: 4096
  origins: ["https://chess.example"]
matchmaking:
  interval: 250ms
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := NewConfig()
	want.Addr = ":8080"
	want.WebSocket.WriteBufferSize = 4096
	want.WebSocket.Origins = []string{"https://chess.example"}
	want.Matchmaking.Interval = 250 * time.Millisecond
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, data := range []string{
		"addr: [",
		`addr: ""`,
		"websocket:\n  readBufferSize: 0",
		"matchmaking:\n  interval: -1s",
		"matchmaking:\n  interval: soon",
	} {
		if _, err := Parse([]byte(data)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidConfig", data, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Load(missing) error: %v", err)
	}
	if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, "server.yaml")
	if err := os.WriteFile(path, []byte("allowOrigins: \"*\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.AllowOrigins != "*" || cfg.Addr != ":3000" {
		t.Errorf("allowOrigins/addr = %q / %q", cfg.AllowOrigins, cfg.Addr)
	}
}
