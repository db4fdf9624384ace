package leave

import (
	"time"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

// Type enumerates the leave categories the engine tracks. Validator dispatch
// and balance mutation both switch exhaustively on this type, so adding a
// category is a compile-checked change in exactly two places.
type Type string

const (
	TypeAnnual      Type = "annual"
	TypeSick        Type = "sick"
	TypeMaternity   Type = "maternity"
	TypeEmergency   Type = "emergency"
	TypeTOIL        Type = "toil"
	TypeWFH         Type = "wfh"
	TypeBereavement Type = "bereavement"
)

// Types lists every known leave category.
var Types = []Type{
	TypeAnnual, TypeSick, TypeMaternity, TypeEmergency,
	TypeTOIL, TypeWFH, TypeBereavement,
}

func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// CompensationMethod is how an emergency leave absence is covered.
type CompensationMethod string

const (
	CompensationAnnualLeave CompensationMethod = "annual_leave"
	CompensationUnpaid      CompensationMethod = "unpaid"
	CompensationMakeupHours CompensationMethod = "makeup_hours"
)

// RelationshipSpouse grants the larger bereavement allowance.
const RelationshipSpouse = "spouse"

// Summary is the per-employee-per-year ledger of entitlements and usage.
// Unique key: (employee_id, year). Created lazily on first access, mutated
// only by request approval, the recomputation job and the carry-over job.
type Summary struct {
	ID         string
	EmployeeID string
	Year       int

	AnnualEntitlement float64
	AnnualUsed        float64
	AnnualCarriedOver float64

	// Tiered sick bank, MOHRE style: 90 days split 15 full pay,
	// 30 half pay, 45 unpaid.
	SickFullPayDays float64
	SickHalfPayDays float64
	SickUnpaidDays  float64
	SickUsed        float64

	MaternityEntitlement float64
	MaternityUsed        float64

	EmergencyEntitlement float64
	EmergencyUsed        float64

	TOILHoursAvailable float64
	TOILHoursUsed      float64

	// WFH rolling-window counters. These are a derived cache updated on
	// approval; validators recount from the live request ledger instead of
	// trusting them.
	WFHWeeklyLimit   int
	WFHMonthlyLimit  int
	WFHUsedThisWeek  int
	WFHUsedThisMonth int
	WFHLastWeekStart validator.Date

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnnualAvailable returns the annual-leave days still spendable this year.
func (s Summary) AnnualAvailable() float64 {
	return s.AnnualEntitlement + s.AnnualCarriedOver - s.AnnualUsed
}

// SickBankTotal returns the full sick entitlement across all pay tiers.
func (s Summary) SickBankTotal() float64 {
	return s.SickFullPayDays + s.SickHalfPayDays + s.SickUnpaidDays
}

// Request is an append-only leave request record. Status transitions exactly
// once, pending -> approved or pending -> rejected; balance mutation happens
// exactly once, at the pending -> approved transition.
type Request struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	LeaveType  Type   `json:"leave_type"`

	StartDate    validator.Date `json:"start_date"`
	EndDate      validator.Date `json:"end_date"`
	IsHalfDay    bool           `json:"is_half_day"`
	NumberOfDays float64        `json:"number_of_days"`

	Reason             string              `json:"reason"`
	CompensationMethod *CompensationMethod `json:"compensation_method,omitempty"`
	Relationship       *string             `json:"relationship,omitempty"`
	OvertimeRequestIDs []string            `json:"overtime_request_ids,omitempty"`

	Status          RequestStatus `json:"status"`
	ApprovedBy      *string       `json:"approved_by,omitempty"`
	ApprovalDate    *time.Time    `json:"approval_date,omitempty"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChargedToAnnual reports whether an emergency request is compensated from
// the annual-leave balance.
func (r Request) ChargedToAnnual() bool {
	return r.LeaveType == TypeEmergency &&
		r.CompensationMethod != nil &&
		*r.CompensationMethod == CompensationAnnualLeave
}
