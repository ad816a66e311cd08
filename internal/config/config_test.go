package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HIVE_SCORES_FILE", "/tmp/scores.json")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5175" || cfg.SaveDir != "saves" || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.ScoresFile != "/tmp/scores.json" {
		t.Errorf("ScoresFile = %q", cfg.ScoresFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HIVE_SCORES_DB", "data/scores.db")
	t.Setenv("HIVE_SCORES_FILE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" || cfg.ScoresDB != "data/scores.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ScoresFile != "" {
		t.Errorf("ScoresFile = %q, want empty when a database is configured", cfg.ScoresFile)
	}
}
