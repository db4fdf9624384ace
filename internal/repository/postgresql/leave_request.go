package postgresql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/database"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const requestColumns = `
	id, employee_id, leave_type,
	start_date, end_date, is_half_day, number_of_days,
	reason, compensation_method, relationship, overtime_request_ids,
	status, approved_by, approval_date, rejection_reason,
	created_at, updated_at
`

func scanRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType,
		&req.StartDate, &req.EndDate, &req.IsHalfDay, &req.NumberOfDays,
		&req.Reason, &req.CompensationMethod, &req.Relationship, &req.OvertimeRequestIDs,
		&req.Status, &req.ApprovedBy, &req.ApprovalDate, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type,
			start_date, end_date, is_half_day, number_of_days,
			reason, compensation_method, relationship, overtime_request_ids,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, NOW(), NOW()
		) RETURNING ` + requestColumns

	row := q.QueryRow(ctx, query,
		uuid.NewString(), request.EmployeeID, request.LeaveType,
		request.StartDate, request.EndDate, request.IsHalfDay, request.NumberOfDays,
		request.Reason, request.CompensationMethod, request.Relationship, request.OvertimeRequestIDs,
		request.Status,
	)

	created, err := scanRequest(row)
	if err != nil {
		return leave.Request{}, err
	}
	return created, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests
		WHERE id = $1
	`

	request, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, err
	}
	return request, nil
}

// MarkApproved implements leave.RequestRepository. The status guard in the
// WHERE clause makes the transition race-safe: the second of two concurrent
// approvals updates zero rows and reports false.
func (r *leaveRequestRepositoryImpl) MarkApproved(ctx context.Context, id, approverID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
			approved_by = $2,
			approval_date = NOW(),
			updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	result, err := q.Exec(ctx, query, leave.RequestStatusApproved, approverID, id, leave.RequestStatusPending)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// MarkRejected implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) MarkRejected(ctx context.Context, id, approverID, reason string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
			approved_by = $2,
			approval_date = NOW(),
			rejection_reason = $3,
			updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	result, err := q.Exec(ctx, query, leave.RequestStatusRejected, approverID, reason, id, leave.RequestStatusPending)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// CountByTypeInRange implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) CountByTypeInRange(ctx context.Context, employeeID string, leaveType leave.Type, statuses []leave.RequestStatus, from, to validator.Date) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE employee_id = $1
		AND leave_type = $2
		AND status = ANY($3)
		AND start_date BETWEEN $4 AND $5
	`

	statusStrings := make([]string, len(statuses))
	for i, status := range statuses {
		statusStrings[i] = string(status)
	}

	var count int
	if err := q.QueryRow(ctx, query, employeeID, leaveType, statusStrings, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListApproved implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListApproved(ctx context.Context) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM leave_requests
		WHERE status = $1
		ORDER BY employee_id, start_date, created_at
	`

	rows, err := q.Query(ctx, query, leave.RequestStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}
