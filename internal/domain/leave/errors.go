package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrSummaryNotFound      = errors.New("Leave summary not found")

	// ErrLeaveAlreadyProcessed signals a state-machine violation: the request
	// left pending before this transition ran.
	ErrLeaveAlreadyProcessed = errors.New("Leave request already processed")

	ErrRejectionReasonRequired = errors.New("Rejection reason is required")
	ErrInsufficientBalance     = errors.New("Insufficient leave balance")
)

// ValidationError carries the validator verdict back to the caller so the
// client can explain the rejection. It is an expected business-rule failure,
// not an infrastructure error.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("leave request validation failed: %s", e.Result.Message)
}
