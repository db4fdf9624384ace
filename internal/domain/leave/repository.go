package leave

import (
	"context"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

// SummaryRepository - interface for the leave_summaries table.
//
// The Add*/Bump* methods are single guarded UPDATEs so two approvals racing
// on the same row cannot lose an increment.
type SummaryRepository interface {
	Create(ctx context.Context, summary Summary) (Summary, error)
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (Summary, error)

	// Overwrite replaces every mutable field of the row. Used by the
	// recomputation job and by entitlement self-healing.
	Overwrite(ctx context.Context, summary Summary) error

	// AddAnnualUsed increments annual_used atomically, rejecting with
	// ErrInsufficientBalance when the increment would exceed
	// entitlement + carry-over.
	AddAnnualUsed(ctx context.Context, summaryID string, days float64) error

	AddSickUsed(ctx context.Context, summaryID string, days float64) error
	AddMaternityUsed(ctx context.Context, summaryID string, days float64) error
	AddEmergencyUsed(ctx context.Context, summaryID string, days float64) error
	AddTOILHoursUsed(ctx context.Context, summaryID string, hours float64) error

	// BumpWFHUsage always increments the monthly counter; the weekly counter
	// increments when weekStart matches the stored week, otherwise it resets
	// to 1 and the stored week advances.
	BumpWFHUsage(ctx context.Context, summaryID string, weekStart validator.Date) error

	// SetCarryOver overwrites (never adds to) the stored carry-over, keeping
	// the carry-over job idempotent.
	SetCarryOver(ctx context.Context, summaryID string, days float64) error
}

// RequestRepository - interface for the leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// MarkApproved and MarkRejected transition only rows still in pending
	// status. They report false when the row was already processed, so a
	// concurrent second transition surfaces as a conflict instead of
	// silently applying twice.
	MarkApproved(ctx context.Context, id, approverID string) (bool, error)
	MarkRejected(ctx context.Context, id, approverID, reason string) (bool, error)

	// CountByTypeInRange counts an employee's requests of one type whose
	// start date falls in [from, to], restricted to the given statuses.
	CountByTypeInRange(ctx context.Context, employeeID string, leaveType Type, statuses []RequestStatus, from, to validator.Date) (int, error)

	// ListApproved returns every approved request, ordered by employee,
	// start date and creation time. Input for the recomputation replay.
	ListApproved(ctx context.Context) ([]Request, error)
}
