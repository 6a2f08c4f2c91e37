// Package probe reads live host metrics and hands them out as model
// snapshots, one metric category per call.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rawwerks/sysreport/internal/model"
)

// Read failures fall into three kinds; callers match with errors.Is.
var (
	ErrMetricsUnavailable = errors.New("metrics unavailable")
	ErrPathNotFound       = errors.New("path not found")
	ErrPermissionDenied   = errors.New("permission denied")
)

// Provider is the narrow surface the report renders from. Implementations
// must not cache between calls; every read reflects the host at call time.
// Sub-reads of Sensors (temperatures, fans, battery) are independently
// optional: a platform without them returns empty results, not an error.
type Provider interface {
	CPU(ctx context.Context, interval time.Duration) (model.CPUStat, error)
	Memory(ctx context.Context) (model.MemoryStat, error)
	Disk(ctx context.Context, path string) (model.DiskStat, error)
	Interfaces(ctx context.Context) ([]model.NIC, error)
	Sensors(ctx context.Context) (model.SensorStat, *model.Battery, error)
}

// classify wraps err with the matching sentinel so sections can degrade
// uniformly. A nil err still yields ErrMetricsUnavailable: it marks a read
// that returned nothing usable.
func classify(what string, err error) error {
	kind := ErrMetricsUnavailable
	switch {
	case os.IsNotExist(err):
		kind = ErrPathNotFound
	case os.IsPermission(err):
		kind = ErrPermissionDenied
	}
	if err == nil {
		return fmt.Errorf("%s: %w", what, kind)
	}
	return fmt.Errorf("%s: %w: %v", what, kind, err)
}
