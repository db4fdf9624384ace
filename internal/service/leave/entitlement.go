package leave

import (
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/employee"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

// FullAnnualEntitlementDays is the statutory annual-leave entitlement for an
// employee with at least a full year of service.
const FullAnnualEntitlementDays = 30

// ProRatedCapDays caps the pro-rated entitlement for employees with between
// six and twelve months of service.
const ProRatedCapDays = 24

// FullServiceMonths counts the complete month-intervals worked from the hire
// date through the end of the target year. An employee hired on or before
// January 1st of the year has the full 12 months.
func FullServiceMonths(hireDate validator.Date, year int) int {
	yearStart := validator.NewDate(year, 1, 1)
	if !hireDate.After(yearStart) {
		return 12
	}

	yearEnd := validator.NewDate(year, 12, 31)
	if hireDate.After(yearEnd) {
		return 0
	}

	months := (yearEnd.Year()-hireDate.Year())*12 + int(yearEnd.Month()) - int(hireDate.Month())
	if yearEnd.Day() < hireDate.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months
}

// AnnualEntitlement computes the tenure-based annual-leave entitlement in
// days for the given hire date and calendar year:
//
//	< 6 full months of service  -> 0 days
//	>= 12 full months           -> 30 days
//	6..11 full months           -> 2 * (months - 6), capped at 24
//
// Pure function; callers use it both to seed a new summary and to self-heal
// a stale stored entitlement on read.
func AnnualEntitlement(hireDate validator.Date, year int) (float64, error) {
	if hireDate.IsZero() {
		return 0, employee.ErrMissingHireDate
	}

	months := FullServiceMonths(hireDate, year)
	switch {
	case months >= 12:
		return FullAnnualEntitlementDays, nil
	case months < 6:
		return 0, nil
	default:
		days := 2 * (months - 6)
		if days > ProRatedCapDays {
			days = ProRatedCapDays
		}
		return float64(days), nil
	}
}
