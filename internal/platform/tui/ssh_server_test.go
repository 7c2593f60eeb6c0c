package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSessionIDFor(t *testing.T) {
	id := sessionIDFor("alice")
	if !strings.HasPrefix(id, "alice-") || len(id) != len("alice-")+8 {
		t.Errorf("sessionIDFor(alice) = %q, want alice-<8 chars>", id)
	}
	if other := sessionIDFor("alice"); other == id {
		t.Error("Expected distinct IDs for two sessions of the same user")
	}
	if anon := sessionIDFor(""); !strings.HasPrefix(anon, "anon-") {
		t.Errorf("sessionIDFor(\"\") = %q, want anon- prefix", anon)
	}
}

func TestNewSSHServerFillsDefaults(t *testing.T) {
	cfg := SSHServerConfig{
		HostKeyPath: filepath.Join(t.TempDir(), "keys", "host_ed25519"),
	}

	srv, err := NewSSHServer(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	if srv.Addr() != ":2222" {
		t.Errorf("Addr() = %q, want :2222", srv.Addr())
	}
	if srv.config.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, want 30m", srv.config.IdleTimeout)
	}
	if srv.config.TickRate != 30 {
		t.Errorf("TickRate = %d, want 30", srv.config.TickRate)
	}
}
