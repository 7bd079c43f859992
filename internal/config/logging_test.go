package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Level)
	}
	if cfg.File != "" || cfg.MaxMB != 10 {
		t.Fatalf("file defaults wrong: %+v", cfg)
	}
	if cfg.SampleEvery != 0 {
		t.Fatalf("sampling should be off by default, got %d", cfg.SampleEvery)
	}
}

func TestLoadLogParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/var/log/table-server.log")
	t.Setenv("LOG_MAX_MB", "25")
	t.Setenv("LOG_SAMPLE_EVERY", "3")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || cfg.File != "/var/log/table-server.log" || cfg.MaxMB != 25 || cfg.SampleEvery != 3 {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
}
