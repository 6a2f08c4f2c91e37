package config

import (
	"flag"
	"os"
	"runtime"
	"time"
)

// Config carries runtime options for sysreport.
type Config struct {
	DiskPath string
	Interval time.Duration
	Color    bool
}

func Default() Config {
	return Config{
		DiskPath: defaultDiskPath(),
		Interval: time.Second,
		Color:    false,
	}
}

func defaultDiskPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

// FromFlags parses flags and environment overrides. A bare number in
// SYSREPORT_INTERVAL is read as seconds.
func FromFlags(args []string) Config {
	cfg := Default()
	fs := flag.NewFlagSet("sysreport", flag.ContinueOnError)
	fs.StringVar(&cfg.DiskPath, "path", cfg.DiskPath, "filesystem path for the disk section")
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "CPU sampling duration")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "style section titles for terminals")
	_ = fs.Parse(args)

	if v := os.Getenv("SYSREPORT_DISK_PATH"); v != "" {
		cfg.DiskPath = v
	}
	if v := os.Getenv("SYSREPORT_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Interval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			cfg.Interval = parsed
		}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	return cfg
}
