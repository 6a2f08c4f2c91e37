package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := FromFlags(nil)
	if cfg.Interval != time.Second {
		t.Fatalf("default interval = %v; want 1s", cfg.Interval)
	}
	if cfg.DiskPath == "" {
		t.Fatalf("default disk path must be set")
	}
	if cfg.Color {
		t.Fatalf("color must default to off")
	}
}

func TestFlags(t *testing.T) {
	cfg := FromFlags([]string{"-path", "/home", "-interval", "2s", "-color"})
	if cfg.DiskPath != "/home" || cfg.Interval != 2*time.Second || !cfg.Color {
		t.Fatalf("flag parsing wrong: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SYSREPORT_DISK_PATH", "/var")
	t.Setenv("SYSREPORT_INTERVAL", "3")

	cfg := FromFlags([]string{"-path", "/home"})
	if cfg.DiskPath != "/var" {
		t.Fatalf("env must override flag: %+v", cfg)
	}
	if cfg.Interval != 3*time.Second {
		t.Fatalf("bare seconds not parsed: %v", cfg.Interval)
	}
}

func TestIntervalFloor(t *testing.T) {
	cfg := FromFlags([]string{"-interval", "-5s"})
	if cfg.Interval != time.Second {
		t.Fatalf("non-positive interval must reset to 1s, got %v", cfg.Interval)
	}
}
