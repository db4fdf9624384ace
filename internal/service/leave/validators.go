package leave

import (
	"context"
	"fmt"
	"math"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/overtime"
)

// Validators gate new leave requests against current balances. They are
// read-only and side-effect free: every check recomputes from stored state
// at call time, never from cached counters, so back-to-back evaluations see
// each other's pending requests.
type Validators struct {
	summaries *SummaryService
	leave.RequestRepository
	overtime.OvertimeRepository
}

func NewValidators(summaries *SummaryService, requestRepository leave.RequestRepository, overtimeRepository overtime.OvertimeRepository) *Validators {
	return &Validators{
		summaries:          summaries,
		RequestRepository:  requestRepository,
		OvertimeRepository: overtimeRepository,
	}
}

// Validate dispatches to the validator matching the request's leave type.
// The switch is exhaustive over leave.Types; an unknown type is a programming
// error, not a validation failure.
func (v *Validators) Validate(ctx context.Context, req leave.Request) (leave.ValidationResult, error) {
	switch req.LeaveType {
	case leave.TypeAnnual:
		return v.validateAnnual(ctx, req.EmployeeID, req.NumberOfDays, req.StartDate.Year())
	case leave.TypeSick:
		return v.validateSick(ctx, req.EmployeeID, req.StartDate.Year())
	case leave.TypeMaternity:
		return v.validateMaternity(ctx, req.EmployeeID, req.StartDate.Year())
	case leave.TypeEmergency:
		return v.validateEmergency(ctx, req)
	case leave.TypeTOIL:
		return v.validateTOIL(ctx, req.EmployeeID, req.OvertimeRequestIDs)
	case leave.TypeWFH:
		return v.validateWFH(ctx, req)
	case leave.TypeBereavement:
		return v.validateBereavement(req.Relationship)
	default:
		return leave.ValidationResult{}, fmt.Errorf("unknown leave type %q", req.LeaveType)
	}
}

func (v *Validators) validateAnnual(ctx context.Context, employeeID string, days float64, year int) (leave.ValidationResult, error) {
	summary, err := v.summaries.GetOrCreate(ctx, employeeID, year)
	if err != nil {
		return leave.ValidationResult{}, err
	}

	available := summary.AnnualAvailable()
	if days > available {
		return leave.ValidationResult{
			Valid:            false,
			Message:          fmt.Sprintf("insufficient annual leave balance: requested %.1f days, available %.1f", days, available),
			Balance:          available,
			ProjectedBalance: available,
		}, nil
	}

	return leave.ValidationResult{
		Valid:            true,
		Balance:          available,
		ProjectedBalance: available - days,
	}, nil
}

// validateSick is a pass-through: the sick bank is informational and company
// policy enforces it outside automated gating.
func (v *Validators) validateSick(ctx context.Context, employeeID string, year int) (leave.ValidationResult, error) {
	summary, err := v.summaries.GetOrCreate(ctx, employeeID, year)
	if err != nil {
		return leave.ValidationResult{}, err
	}
	remaining := summary.SickBankTotal() - summary.SickUsed
	return leave.ValidationResult{
		Valid:            true,
		Balance:          remaining,
		ProjectedBalance: remaining,
	}, nil
}

// validateMaternity is a pass-through like sick leave.
func (v *Validators) validateMaternity(ctx context.Context, employeeID string, year int) (leave.ValidationResult, error) {
	summary, err := v.summaries.GetOrCreate(ctx, employeeID, year)
	if err != nil {
		return leave.ValidationResult{}, err
	}
	remaining := summary.MaternityEntitlement - summary.MaternityUsed
	return leave.ValidationResult{
		Valid:            true,
		Balance:          remaining,
		ProjectedBalance: remaining,
	}, nil
}

func (v *Validators) validateEmergency(ctx context.Context, req leave.Request) (leave.ValidationResult, error) {
	if !req.ChargedToAnnual() {
		// Unpaid or makeup-hours path: no balance to check.
		return leave.ValidationResult{Valid: true}, nil
	}

	result, err := v.validateAnnual(ctx, req.EmployeeID, req.NumberOfDays, req.StartDate.Year())
	if err != nil {
		return leave.ValidationResult{}, err
	}
	if !result.Valid {
		result.Message = fmt.Sprintf("emergency leave charged to annual leave: %s", result.Message)
	}
	return result, nil
}

func (v *Validators) validateTOIL(ctx context.Context, employeeID string, overtimeIDs []string) (leave.ValidationResult, error) {
	if len(overtimeIDs) == 0 {
		return leave.ValidationResult{
			Valid:   false,
			Message: "at least one approved overtime record must be selected for time off in lieu",
		}, nil
	}

	records, err := v.OvertimeRepository.GetByIDs(ctx, overtimeIDs)
	if err != nil {
		return leave.ValidationResult{}, fmt.Errorf("failed to get overtime records: %w", err)
	}
	if len(records) != len(overtimeIDs) {
		return leave.ValidationResult{}, overtime.ErrOvertimeNotFound
	}

	var totalHours float64
	for _, record := range records {
		if record.EmployeeID != employeeID {
			return leave.ValidationResult{
				Valid:   false,
				Message: fmt.Sprintf("overtime record %s does not belong to this employee", record.ID),
			}, nil
		}
		if record.Status != overtime.StatusApproved {
			return leave.ValidationResult{
				Valid:   false,
				Message: fmt.Sprintf("overtime record %s is not approved", record.ID),
			}, nil
		}
		totalHours += record.RequestedHours
	}

	if totalHours < TOILHoursPerDay {
		return leave.ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("selected overtime totals %.1f hours; at least %.0f hours are required for one day of leave", totalHours, TOILHoursPerDay),
			Balance: totalHours,
		}, nil
	}

	days := math.Floor(totalHours / TOILHoursPerDay)
	return leave.ValidationResult{
		Valid:            true,
		Balance:          totalHours,
		ProjectedBalance: days,
	}, nil
}

func (v *Validators) validateWFH(ctx context.Context, req leave.Request) (leave.ValidationResult, error) {
	summary, err := v.summaries.GetOrCreate(ctx, req.EmployeeID, req.StartDate.Year())
	if err != nil {
		return leave.ValidationResult{}, err
	}

	// Counters are recomputed from the live request ledger every time. The
	// stored rolling counters on the summary are a derived cache and are not
	// consulted here; pending requests must count so that two requests in
	// the same week gate each other before either is approved.
	countable := []leave.RequestStatus{leave.RequestStatusPending, leave.RequestStatusApproved}

	weekCount, err := v.RequestRepository.CountByTypeInRange(
		ctx, req.EmployeeID, leave.TypeWFH, countable,
		req.StartDate.WeekStart(), req.StartDate.WeekEnd(),
	)
	if err != nil {
		return leave.ValidationResult{}, fmt.Errorf("failed to count weekly WFH requests: %w", err)
	}
	if weekCount >= summary.WFHWeeklyLimit {
		return leave.ValidationResult{
			Valid:            false,
			Message:          fmt.Sprintf("weekly work-from-home limit reached: %d of %d already requested this week", weekCount, summary.WFHWeeklyLimit),
			Balance:          float64(summary.WFHWeeklyLimit - weekCount),
			ProjectedBalance: float64(summary.WFHWeeklyLimit - weekCount),
		}, nil
	}

	monthCount, err := v.RequestRepository.CountByTypeInRange(
		ctx, req.EmployeeID, leave.TypeWFH, countable,
		req.StartDate.MonthStart(), req.StartDate.MonthEnd(),
	)
	if err != nil {
		return leave.ValidationResult{}, fmt.Errorf("failed to count monthly WFH requests: %w", err)
	}
	if monthCount >= summary.WFHMonthlyLimit {
		return leave.ValidationResult{
			Valid:            false,
			Message:          fmt.Sprintf("monthly work-from-home limit reached: %d of %d already requested this month", monthCount, summary.WFHMonthlyLimit),
			Balance:          float64(summary.WFHMonthlyLimit - monthCount),
			ProjectedBalance: float64(summary.WFHMonthlyLimit - monthCount),
		}, nil
	}

	return leave.ValidationResult{
		Valid:            true,
		Balance:          float64(summary.WFHMonthlyLimit - monthCount),
		ProjectedBalance: float64(summary.WFHMonthlyLimit - monthCount - 1),
	}, nil
}

// validateBereavement has no stored balance; the entitlement is derived from
// the relationship on the fly.
func (v *Validators) validateBereavement(relationship *string) (leave.ValidationResult, error) {
	if relationship == nil || *relationship == "" {
		return leave.ValidationResult{
			Valid:   false,
			Message: "relationship is required for bereavement leave",
		}, nil
	}

	entitled := 3.0
	if *relationship == leave.RelationshipSpouse {
		entitled = 5.0
	}
	return leave.ValidationResult{
		Valid:            true,
		Balance:          entitled,
		ProjectedBalance: entitled,
	}, nil
}
