package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7433 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7433)
	}
	if !cfg.Reminders.Enabled {
		t.Error("reminders disabled by default")
	}
	if cfg.Reminders.QuietStart != "22:00" || cfg.Reminders.QuietEnd != "08:00" {
		t.Errorf("quiet hours = %s-%s", cfg.Reminders.QuietStart, cfg.Reminders.QuietEnd)
	}
	if cfg.Profile.Premium {
		t.Error("premium on by default")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("MOODLET_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9999
	cfg.Profile.Premium = true
	cfg.Reminders.MaxPerDay = 2

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.API.Port != 9999 {
		t.Errorf("port = %d, want 9999", got.API.Port)
	}
	if !got.Profile.Premium {
		t.Error("premium flag lost")
	}
	if got.Reminders.MaxPerDay != 2 {
		t.Errorf("max per day = %d, want 2", got.Reminders.MaxPerDay)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("MOODLET_HOME", t.TempDir())

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.API.Port != DefaultConfig().API.Port {
		t.Errorf("port = %d, want default", got.API.Port)
	}
}

func TestMoodletHomeEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MOODLET_HOME", dir)

	if got := MoodletHome(); got != dir {
		t.Errorf("MoodletHome() = %q, want %q", got, dir)
	}

	os.Unsetenv("MOODLET_HOME")
	home, _ := os.UserHomeDir()
	if got := MoodletHome(); got != filepath.Join(home, ".moodlet") {
		t.Errorf("MoodletHome() = %q, want ~/.moodlet", got)
	}
}
