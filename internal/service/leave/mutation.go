package leave

import (
	"context"
	"fmt"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/overtime"
)

// applyApproved applies the type-specific balance increment for a freshly
// approved request. Each branch is a single guarded UPDATE on the summary
// row, so concurrent approvals for the same employee-year cannot lose an
// increment. Runs inside the approval transaction.
func applyApproved(ctx context.Context, summaries leave.SummaryRepository, overtimeRepo overtime.OvertimeRepository, req leave.Request, summary leave.Summary) error {
	switch req.LeaveType {
	case leave.TypeAnnual:
		return summaries.AddAnnualUsed(ctx, summary.ID, req.NumberOfDays)

	case leave.TypeSick:
		return summaries.AddSickUsed(ctx, summary.ID, req.NumberOfDays)

	case leave.TypeMaternity:
		return summaries.AddMaternityUsed(ctx, summary.ID, req.NumberOfDays)

	case leave.TypeEmergency:
		if req.ChargedToAnnual() {
			return summaries.AddAnnualUsed(ctx, summary.ID, req.NumberOfDays)
		}
		return summaries.AddEmergencyUsed(ctx, summary.ID, req.NumberOfDays)

	case leave.TypeWFH:
		return summaries.BumpWFHUsage(ctx, summary.ID, req.StartDate.WeekStart())

	case leave.TypeTOIL:
		hours, err := approvedOvertimeHours(ctx, overtimeRepo, req.EmployeeID, req.OvertimeRequestIDs)
		if err != nil {
			return err
		}
		return summaries.AddTOILHoursUsed(ctx, summary.ID, hours)

	case leave.TypeBereavement:
		// Granted case by case; nothing is tracked on the ledger.
		return nil

	default:
		return fmt.Errorf("unknown leave type %q", req.LeaveType)
	}
}

// applyToSummary accumulates one approved request onto an in-memory summary.
// The recomputation job replays the approved ledger through this function;
// it mirrors applyApproved exactly, minus the WFH week-reset bookkeeping,
// which the replay recomputes from the full set afterwards.
func applyToSummary(summary *leave.Summary, req leave.Request, toilHours float64) {
	switch req.LeaveType {
	case leave.TypeAnnual:
		summary.AnnualUsed += req.NumberOfDays
	case leave.TypeSick:
		summary.SickUsed += req.NumberOfDays
	case leave.TypeMaternity:
		summary.MaternityUsed += req.NumberOfDays
	case leave.TypeEmergency:
		if req.ChargedToAnnual() {
			summary.AnnualUsed += req.NumberOfDays
		} else {
			summary.EmergencyUsed += req.NumberOfDays
		}
	case leave.TypeTOIL:
		summary.TOILHoursUsed += toilHours
	case leave.TypeWFH, leave.TypeBereavement:
		// WFH window counters are rebuilt from the replayed set by the
		// recomputation job; bereavement is untracked.
	}
}

// approvedOvertimeHours sums the hours of the referenced overtime records,
// requiring every record to exist, belong to the employee and be approved.
func approvedOvertimeHours(ctx context.Context, overtimeRepo overtime.OvertimeRepository, employeeID string, ids []string) (float64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	records, err := overtimeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to get overtime records: %w", err)
	}
	if len(records) != len(ids) {
		return 0, overtime.ErrOvertimeNotFound
	}

	var total float64
	for _, record := range records {
		if record.EmployeeID != employeeID {
			return 0, fmt.Errorf("overtime record %s does not belong to employee %s", record.ID, employeeID)
		}
		if record.Status != overtime.StatusApproved {
			return 0, fmt.Errorf("overtime record %s is not approved", record.ID)
		}
		total += record.RequestedHours
	}
	return total, nil
}
