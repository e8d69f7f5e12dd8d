package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.BoardPairs != 12 {
		t.Fatalf("BoardPairs = %d, want 12", cfg.BoardPairs)
	}
	if cfg.RevealDelayMS != 1000 {
		t.Fatalf("RevealDelayMS = %d, want 1000", cfg.RevealDelayMS)
	}
	if cfg.MatchPoints != 100 {
		t.Fatalf("MatchPoints = %d, want 100", cfg.MatchPoints)
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("BOARD_PAIRS", "4")
	t.Setenv("REVEAL_DELAY_MS", "250")
	t.Setenv("MATCH_POINTS", "50")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("HTTPAddr = %q, want :9999", cfg.HTTPAddr)
	}
	if cfg.BoardPairs != 4 {
		t.Fatalf("BoardPairs = %d, want 4", cfg.BoardPairs)
	}
	if got := cfg.RevealDelay().Milliseconds(); got != 250 {
		t.Fatalf("RevealDelay() = %dms, want 250ms", got)
	}
	if cfg.MatchPoints != 50 {
		t.Fatalf("MatchPoints = %d, want 50", cfg.MatchPoints)
	}
}

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Level)
	}
	if cfg.Pretty {
		t.Fatal("Pretty = true, want false")
	}
	if cfg.MaxMB != 10 {
		t.Fatalf("MaxMB = %d, want 10", cfg.MaxMB)
	}
}
