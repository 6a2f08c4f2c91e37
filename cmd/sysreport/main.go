// sysreport prints a one-shot diagnostic snapshot of the host: CPU load,
// memory, disk usage, network interfaces, and thermal/battery sensors.
package main

import (
	"context"
	"log"
	"os"

	"github.com/rawwerks/sysreport/internal/config"
	"github.com/rawwerks/sysreport/internal/probe"
	"github.com/rawwerks/sysreport/internal/report"
)

func main() {
	cfg := config.FromFlags(os.Args[1:])
	r := &report.Reporter{Provider: probe.New(), Cfg: cfg}
	if err := r.Run(context.Background(), os.Stdout); err != nil {
		log.Fatalf("sysreport: %v", err)
	}
}
