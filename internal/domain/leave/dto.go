package leave

import (
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID         string   `json:"employee_id"`
	LeaveType          string   `json:"leave_type"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date,omitempty"`
	IsHalfDay          bool     `json:"is_half_day,omitempty"`
	Reason             string   `json:"reason"`
	CompensationMethod *string  `json:"compensation_method,omitempty"`
	Relationship       *string  `json:"relationship,omitempty"`
	OvertimeRequestIDs []string `json:"overtime_request_ids,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !Type(r.LeaveType).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of annual, sick, maternity, emergency, toil, wfh, bereavement",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid YYYY-MM-DD date",
		})
	}

	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid YYYY-MM-DD date",
			})
		}
	}

	if r.CompensationMethod != nil {
		allowed := []string{
			string(CompensationAnnualLeave),
			string(CompensationUnpaid),
			string(CompensationMakeupHours),
		}
		if !validator.IsInSlice(*r.CompensationMethod, allowed) {
			errs = append(errs, validator.ValidationError{
				Field:   "compensation_method",
				Message: "compensation_method must be one of annual_leave, unpaid, makeup_hours",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequestRequest struct {
	Reason string `json:"reason"`
}

// ValidationResult is the common verdict every per-type validator returns.
// Balance and ProjectedBalance let the client explain a rejection; the engine
// never silently clamps a request to the available balance.
type ValidationResult struct {
	Valid            bool    `json:"valid"`
	Message          string  `json:"message,omitempty"`
	Balance          float64 `json:"balance"`
	ProjectedBalance float64 `json:"projected_balance"`
}

type CreateLeaveRequestResponse struct {
	Request          Request `json:"request"`
	Balance          float64 `json:"balance"`
	ProjectedBalance float64 `json:"projected_balance"`
}

// BalanceSnapshot is the full per-type balance view for one employee-year.
type BalanceSnapshot struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`

	AnnualEntitlement float64 `json:"annual_entitlement"`
	AnnualUsed        float64 `json:"annual_used"`
	AnnualCarriedOver float64 `json:"annual_carried_over"`
	AnnualAvailable   float64 `json:"annual_available"`

	SickFullPayDays float64 `json:"sick_full_pay_days"`
	SickHalfPayDays float64 `json:"sick_half_pay_days"`
	SickUnpaidDays  float64 `json:"sick_unpaid_days"`
	SickUsed        float64 `json:"sick_used"`

	MaternityEntitlement float64 `json:"maternity_entitlement"`
	MaternityUsed        float64 `json:"maternity_used"`

	EmergencyEntitlement float64 `json:"emergency_entitlement"`
	EmergencyUsed        float64 `json:"emergency_used"`

	TOILHoursAvailable float64 `json:"toil_hours_available"`
	TOILHoursUsed      float64 `json:"toil_hours_used"`

	WFHWeeklyLimit   int `json:"wfh_weekly_limit"`
	WFHMonthlyLimit  int `json:"wfh_monthly_limit"`
	WFHUsedThisWeek  int `json:"wfh_used_this_week"`
	WFHUsedThisMonth int `json:"wfh_used_this_month"`
}

// SkippedEmployee reports one employee a batch job could not process. The
// job continues with the remaining employees.
type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year,omitempty"`
	Reason     string `json:"reason"`
}

type RecomputationReport struct {
	UpdatedCount int               `json:"updated_count"`
	CreatedCount int               `json:"created_count"`
	Skipped      []SkippedEmployee `json:"skipped,omitempty"`
}

type CarryOverEntry struct {
	EmployeeID      string  `json:"employee_id"`
	UnusedDays      float64 `json:"unused_days"`
	CarriedOverDays float64 `json:"carried_over_days"`
}

type CarryOverReport struct {
	PreviousYear int               `json:"previous_year"`
	CurrentYear  int               `json:"current_year"`
	Entries      []CarryOverEntry  `json:"entries"`
	Skipped      []SkippedEmployee `json:"skipped,omitempty"`
}
