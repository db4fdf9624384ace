package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/employee"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/overtime"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Malformed input fields
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Business-rule rejections carry the validator verdict so the client can
	// show the offending balance.
	var leaveValidation *leave.ValidationError
	if errors.As(err, &leaveValidation) {
		BadRequest(w, leaveValidation.Result.Message, map[string]string{
			"balance": formatDays(leaveValidation.Result.Balance),
		})
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMissingHireDate):
		ValidationError(w, map[string]string{"hire_date": "Employee hire date is missing"})

	// Overtime domain errors
	case errors.Is(err, overtime.ErrOvertimeNotFound):
		NotFound(w, "Overtime record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrSummaryNotFound):
		NotFound(w, "Leave summary not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrRejectionReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func formatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}
