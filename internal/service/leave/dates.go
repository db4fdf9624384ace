package leave

import (
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

// TOILHoursPerDay converts approved overtime hours into leave days.
const TOILHoursPerDay = 8.0

// NumberOfDays returns the day count charged for a request: 0.5 for a
// half-day, otherwise the inclusive calendar-day span.
func NumberOfDays(start, end validator.Date, isHalfDay bool) float64 {
	if isHalfDay {
		return 0.5
	}
	return float64(validator.DaysBetween(start, end) + 1)
}

// AdjustEndDate infers the effective end date for a request. WFH and
// half-day requests are always single-day; any other type defaults to the
// start date when the caller left the end date unset.
func AdjustEndDate(leaveType leave.Type, start, end validator.Date, isHalfDay bool) validator.Date {
	if leaveType == leave.TypeWFH || isHalfDay {
		return start
	}
	if end.IsZero() {
		return start
	}
	return end
}
