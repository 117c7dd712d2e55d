package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("KASA_DEVICE_IP", "192.168.1.20")
	t.Setenv("KASA_USERNAME", "user@example.com")
	t.Setenv("KASA_PASSWORD", "hunter2")
	t.Setenv("KASA_DIR", "/opt/kasa")
}

func TestLoad_FromEnvironment(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kasa.DeviceIP != "192.168.1.20" || cfg.Kasa.Username != "user@example.com" {
		t.Fatalf("unexpected kasa config: %+v", cfg.Kasa)
	}
	if cfg.Kasa.Tool != "uv" {
		t.Fatalf("expected default tool uv, got %q", cfg.Kasa.Tool)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level, got %q", cfg.Log.Level)
	}
	if cfg.DB.Path != InMemoryDB {
		t.Fatalf("expected in-memory db, got %q", cfg.DB.Path)
	}
	if cfg.HTTP.TokenTTL != time.Hour {
		t.Fatalf("expected 1h token ttl, got %v", cfg.HTTP.TokenTTL)
	}
}

func TestLoad_MissingRequiredValues(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("KASA_DEVICE_IP", "")
	t.Setenv("KASA_USERNAME", "")
	t.Setenv("KASA_PASSWORD", "")
	t.Setenv("KASA_DIR", "")

	_, err := Load(Options{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	var me *MissingError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MissingError, got %T", err)
	}
	if len(me.Keys) != 4 {
		t.Fatalf("expected 4 missing keys, got %v", me.Keys)
	}
	if got := err.Error(); got != "missing required configuration: KASA_DEVICE_IP, KASA_USERNAME, KASA_PASSWORD, KASA_DIR" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestLoad_HTTPRequiresAuthSettings(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_ENABLED", "true")

	_, err := Load(Options{})
	var me *MissingError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MissingError, got %v", err)
	}
	if len(me.Keys) != 3 {
		t.Fatalf("expected 3 missing http keys, got %v", me.Keys)
	}
}

func TestLoad_ConfigFileAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	yml := "kasa:\n  dir: /srv/kasa\nschedule:\n  timezone: America/Toronto\nlog:\n  level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envFile := filepath.Join(dir, ".env")
	env := "DISCORD_TOKEN=from-file\nKASA_DEVICE_IP=10.0.0.2\nKASA_USERNAME=u\nKASA_PASSWORD=p\n"
	if err := os.WriteFile(envFile, []byte(env), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	// gotenv writes into the process environment; register cleanup for every key.
	for _, k := range []string{"DISCORD_TOKEN", "KASA_DEVICE_IP", "KASA_USERNAME", "KASA_PASSWORD"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("KASA_DIR", "")
	os.Unsetenv("KASA_DIR")

	cfg, err := Load(Options{ConfigPaths: []string{dir}, ConfigName: "config", EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Discord.Token != "from-file" {
		t.Fatalf("expected token from .env, got %q", cfg.Discord.Token)
	}
	if cfg.Kasa.Dir != "/srv/kasa" {
		t.Fatalf("expected dir from config file, got %q", cfg.Kasa.Dir)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Log.Level)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "America/Toronto" {
		t.Fatalf("unexpected location %v err=%v", loc, err)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SCHEDULE_TIMEZONE", "Mars/Olympus")

	if _, err := Load(Options{}); err == nil {
		t.Fatalf("expected timezone error")
	}
}
