package directory

import (
	"context"
	"time"

	"github.com/venta/backend/internal/domain/seller"
)

// Lookup outcomes reported to a LookupRecorder.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
)

// LookupRecorder receives the latency of each directory lookup.
type LookupRecorder interface {
	RecordDirectoryLookup(ctx context.Context, outcome string, elapsed time.Duration)
}

// InstrumentedDirectory times lookups against the wrapped directory.
type InstrumentedDirectory struct {
	next     seller.EmployeeDirectory
	recorder LookupRecorder
	now      func() time.Time
}

// NewInstrumentedDirectory wraps next. A nil recorder returns next unchanged.
func NewInstrumentedDirectory(next seller.EmployeeDirectory, recorder LookupRecorder) seller.EmployeeDirectory {
	if recorder == nil {
		return next
	}
	return &InstrumentedDirectory{next: next, recorder: recorder, now: time.Now}
}

// Lookup delegates and records the outcome.
func (d *InstrumentedDirectory) Lookup(ctx context.Context, dni string) (*seller.Employee, error) {
	start := d.now()
	employee, err := d.next.Lookup(ctx, dni)

	outcome := OutcomeFound
	if err != nil {
		outcome = OutcomeNotFound
	}
	d.recorder.RecordDirectoryLookup(ctx, outcome, d.now().Sub(start))
	return employee, err
}
