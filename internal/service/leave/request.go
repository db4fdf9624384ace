package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/overtime"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/database"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/repository/postgresql"
)

// RequestService orchestrates the leave request lifecycle:
// pending -> approved | rejected, both transitions terminal. It is the only
// component that creates or transitions requests, and approval is the only
// path that mutates summary used-counters.
type RequestService struct {
	db *database.DB
	leave.RequestRepository
	overtime.OvertimeRepository
	summaries  *SummaryService
	validators *Validators

	// runInTx wraps the approval flow in a single database transaction.
	// Tests replace it with a pass-through runner.
	runInTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewRequestService(db *database.DB, requestRepository leave.RequestRepository, overtimeRepository overtime.OvertimeRepository, summaries *SummaryService, validators *Validators) *RequestService {
	service := &RequestService{
		db:                 db,
		RequestRepository:  requestRepository,
		OvertimeRepository: overtimeRepository,
		summaries:          summaries,
		validators:         validators,
	}
	service.runInTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return postgresql.WithTransaction(ctx, service.db, fn)
	}
	return service
}

// Create validates and persists a new request in pending status. An invalid
// request is never persisted; the validator verdict travels back to the
// caller inside *leave.ValidationError.
func (r *RequestService) Create(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.CreateLeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.CreateLeaveRequestResponse{}, err
	}

	startDate, err := validator.ParseDate(req.StartDate)
	if err != nil {
		return leave.CreateLeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}

	var endDate validator.Date
	if req.EndDate != "" {
		if endDate, err = validator.ParseDate(req.EndDate); err != nil {
			return leave.CreateLeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
		}
	}

	leaveType := leave.Type(req.LeaveType)
	endDate = AdjustEndDate(leaveType, startDate, endDate, req.IsHalfDay)
	if endDate.Before(startDate) {
		return leave.CreateLeaveRequestResponse{}, &leave.ValidationError{Result: leave.ValidationResult{
			Message: "end_date must not be before start_date",
		}}
	}

	var compensation *leave.CompensationMethod
	if req.CompensationMethod != nil {
		method := leave.CompensationMethod(*req.CompensationMethod)
		compensation = &method
	}

	draft := leave.Request{
		EmployeeID:         req.EmployeeID,
		LeaveType:          leaveType,
		StartDate:          startDate,
		EndDate:            endDate,
		IsHalfDay:          req.IsHalfDay,
		NumberOfDays:       NumberOfDays(startDate, endDate, req.IsHalfDay),
		Reason:             req.Reason,
		CompensationMethod: compensation,
		Relationship:       req.Relationship,
		OvertimeRequestIDs: req.OvertimeRequestIDs,
		Status:             leave.RequestStatusPending,
	}

	result, err := r.validators.Validate(ctx, draft)
	if err != nil {
		return leave.CreateLeaveRequestResponse{}, err
	}
	if !result.Valid {
		return leave.CreateLeaveRequestResponse{}, &leave.ValidationError{Result: result}
	}

	created, err := r.RequestRepository.Create(ctx, draft)
	if err != nil {
		return leave.CreateLeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request created",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", created.LeaveType,
		"days", created.NumberOfDays,
	)

	return leave.CreateLeaveRequestResponse{
		Request:          created,
		Balance:          result.Balance,
		ProjectedBalance: result.ProjectedBalance,
	}, nil
}

// Approve transitions a pending request to approved and synchronously
// applies the balance mutation, all inside one transaction. A request that
// already left pending yields ErrLeaveAlreadyProcessed: a retried approval
// is a conflict, never a silent no-op or a double mutation.
func (r *RequestService) Approve(ctx context.Context, requestID, approverID string) (leave.Request, error) {
	var approved leave.Request

	err := r.runInTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, postgresql.TxKey, tx)

		request, err := r.RequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.RequestStatusPending {
			return leave.ErrLeaveAlreadyProcessed
		}

		// The guarded UPDATE re-checks the status; a concurrent approval
		// that won the race leaves zero rows for this one.
		transitioned, err := r.RequestRepository.MarkApproved(txCtx, requestID, approverID)
		if err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}
		if !transitioned {
			return leave.ErrLeaveAlreadyProcessed
		}

		summary, err := r.summaries.GetOrCreate(txCtx, request.EmployeeID, request.StartDate.Year())
		if err != nil {
			return err
		}

		if err := applyApproved(txCtx, r.summaries.SummaryRepository, r.OvertimeRepository, request, summary); err != nil {
			return fmt.Errorf("failed to apply balance mutation: %w", err)
		}

		approved, err = r.RequestRepository.GetByID(txCtx, requestID)
		return err
	})
	if err != nil {
		return leave.Request{}, err
	}

	slog.Info("Leave request approved",
		"request_id", requestID,
		"approved_by", approverID,
		"leave_type", approved.LeaveType,
	)
	return approved, nil
}

// Reject transitions a pending request to rejected. No balance mutation.
func (r *RequestService) Reject(ctx context.Context, requestID, approverID, reason string) (leave.Request, error) {
	if validator.IsEmpty(reason) {
		return leave.Request{}, leave.ErrRejectionReasonRequired
	}

	request, err := r.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrLeaveAlreadyProcessed
	}

	transitioned, err := r.RequestRepository.MarkRejected(ctx, requestID, approverID, reason)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to reject leave request: %w", err)
	}
	if !transitioned {
		return leave.Request{}, leave.ErrLeaveAlreadyProcessed
	}

	rejected, err := r.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	slog.Info("Leave request rejected",
		"request_id", requestID,
		"rejected_by", approverID,
	)
	return rejected, nil
}
