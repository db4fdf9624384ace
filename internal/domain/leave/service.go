package leave

import "context"

// LeaveService is the contract the engine exposes to the HTTP/controller
// layer.
type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (CreateLeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID, approverID string) (Request, error)
	RejectLeaveRequest(ctx context.Context, requestID, approverID, reason string) (Request, error)
	GetLeaveBalance(ctx context.Context, employeeID string, year int) (BalanceSnapshot, error)
	RunRecomputation(ctx context.Context) (RecomputationReport, error)
	RunCarryOver(ctx context.Context, previousYear, currentYear int) (CarryOverReport, error)
}
