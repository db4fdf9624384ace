package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/database"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

type leaveSummaryRepositoryImpl struct {
	db *database.DB
}

func NewLeaveSummaryRepository(db *database.DB) leave.SummaryRepository {
	return &leaveSummaryRepositoryImpl{db: db}
}

const summaryColumns = `
	id, employee_id, year,
	annual_entitlement, annual_used, annual_carried_over,
	sick_full_pay_days, sick_half_pay_days, sick_unpaid_days, sick_used,
	maternity_entitlement, maternity_used,
	emergency_entitlement, emergency_used,
	toil_hours_available, toil_hours_used,
	wfh_weekly_limit, wfh_monthly_limit,
	wfh_used_this_week, wfh_used_this_month, wfh_last_week_start,
	created_at, updated_at
`

func scanSummary(row pgx.Row) (leave.Summary, error) {
	var s leave.Summary
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Year,
		&s.AnnualEntitlement, &s.AnnualUsed, &s.AnnualCarriedOver,
		&s.SickFullPayDays, &s.SickHalfPayDays, &s.SickUnpaidDays, &s.SickUsed,
		&s.MaternityEntitlement, &s.MaternityUsed,
		&s.EmergencyEntitlement, &s.EmergencyUsed,
		&s.TOILHoursAvailable, &s.TOILHoursUsed,
		&s.WFHWeeklyLimit, &s.WFHMonthlyLimit,
		&s.WFHUsedThisWeek, &s.WFHUsedThisMonth, &s.WFHLastWeekStart,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements leave.SummaryRepository. The insert upserts on
// (employee_id, year): two lazy creators racing on the same employee-year
// both come back with the one surviving row.
func (r *leaveSummaryRepositoryImpl) Create(ctx context.Context, summary leave.Summary) (leave.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_summaries (
			id, employee_id, year,
			annual_entitlement, annual_used, annual_carried_over,
			sick_full_pay_days, sick_half_pay_days, sick_unpaid_days, sick_used,
			maternity_entitlement, maternity_used,
			emergency_entitlement, emergency_used,
			toil_hours_available, toil_hours_used,
			wfh_weekly_limit, wfh_monthly_limit,
			wfh_used_this_week, wfh_used_this_month, wfh_last_week_start,
			created_at, updated_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, $9, $10,
			$11, $12,
			$13, $14,
			$15, $16,
			$17, $18,
			$19, $20, $21,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, year) DO UPDATE SET updated_at = NOW()
		RETURNING ` + summaryColumns

	row := q.QueryRow(ctx, query,
		uuid.NewString(), summary.EmployeeID, summary.Year,
		summary.AnnualEntitlement, summary.AnnualUsed, summary.AnnualCarriedOver,
		summary.SickFullPayDays, summary.SickHalfPayDays, summary.SickUnpaidDays, summary.SickUsed,
		summary.MaternityEntitlement, summary.MaternityUsed,
		summary.EmergencyEntitlement, summary.EmergencyUsed,
		summary.TOILHoursAvailable, summary.TOILHoursUsed,
		summary.WFHWeeklyLimit, summary.WFHMonthlyLimit,
		summary.WFHUsedThisWeek, summary.WFHUsedThisMonth, summary.WFHLastWeekStart,
	)

	created, err := scanSummary(row)
	if err != nil {
		return leave.Summary{}, err
	}
	return created, nil
}

// GetByEmployeeYear implements leave.SummaryRepository.
func (r *leaveSummaryRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (leave.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + summaryColumns + `
		FROM leave_summaries
		WHERE employee_id = $1 AND year = $2
	`

	summary, err := scanSummary(q.QueryRow(ctx, query, employeeID, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Summary{}, leave.ErrSummaryNotFound
		}
		return leave.Summary{}, err
	}
	return summary, nil
}

// Overwrite implements leave.SummaryRepository.
func (r *leaveSummaryRepositoryImpl) Overwrite(ctx context.Context, summary leave.Summary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_summaries
		SET annual_entitlement = $1, annual_used = $2, annual_carried_over = $3,
			sick_full_pay_days = $4, sick_half_pay_days = $5, sick_unpaid_days = $6, sick_used = $7,
			maternity_entitlement = $8, maternity_used = $9,
			emergency_entitlement = $10, emergency_used = $11,
			toil_hours_available = $12, toil_hours_used = $13,
			wfh_weekly_limit = $14, wfh_monthly_limit = $15,
			wfh_used_this_week = $16, wfh_used_this_month = $17, wfh_last_week_start = $18,
			updated_at = NOW()
		WHERE id = $19
	`

	result, err := q.Exec(ctx, query,
		summary.AnnualEntitlement, summary.AnnualUsed, summary.AnnualCarriedOver,
		summary.SickFullPayDays, summary.SickHalfPayDays, summary.SickUnpaidDays, summary.SickUsed,
		summary.MaternityEntitlement, summary.MaternityUsed,
		summary.EmergencyEntitlement, summary.EmergencyUsed,
		summary.TOILHoursAvailable, summary.TOILHoursUsed,
		summary.WFHWeeklyLimit, summary.WFHMonthlyLimit,
		summary.WFHUsedThisWeek, summary.WFHUsedThisMonth, summary.WFHLastWeekStart,
		summary.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrSummaryNotFound
	}
	return nil
}

// AddAnnualUsed implements leave.SummaryRepository. The WHERE clause keeps
// the increment inside the available balance; zero rows means a concurrent
// spender got there first.
func (r *leaveSummaryRepositoryImpl) AddAnnualUsed(ctx context.Context, summaryID string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_summaries
		SET annual_used = annual_used + $1,
			updated_at = NOW()
		WHERE id = $2
		AND (annual_entitlement + annual_carried_over - annual_used - $1) >= 0
	`

	result, err := q.Exec(ctx, query, days, summaryID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}
	return nil
}

// AddSickUsed implements leave.SummaryRepository. Sick usage is tracked, not
// capped; the pay tier an absence falls into is derived from the running
// total downstream.
func (r *leaveSummaryRepositoryImpl) AddSickUsed(ctx context.Context, summaryID string, days float64) error {
	return r.addUsage(ctx, "sick_used", summaryID, days)
}

// AddMaternityUsed implements leave.SummaryRepository.
func (r *leaveSummaryRepositoryImpl) AddMaternityUsed(ctx context.Context, summaryID string, days float64) error {
	return r.addUsage(ctx, "maternity_used", summaryID, days)
}

// AddEmergencyUsed implements leave.SummaryRepository.
func (r *leaveSummaryRepositoryImpl) AddEmergencyUsed(ctx context.Context, summaryID string, days float64) error {
	return r.addUsage(ctx, "emergency_used", summaryID, days)
}

// AddTOILHoursUsed implements leave.SummaryRepository.
func (r *leaveSummaryRepositoryImpl) AddTOILHoursUsed(ctx context.Context, summaryID string, hours float64) error {
	return r.addUsage(ctx, "toil_hours_used", summaryID, hours)
}

func (r *leaveSummaryRepositoryImpl) addUsage(ctx context.Context, column, summaryID string, amount float64) error {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE leave_summaries
		SET %s = %s + $1,
			updated_at = NOW()
		WHERE id = $2
	`, column, column)

	result, err := q.Exec(ctx, query, amount, summaryID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrSummaryNotFound
	}
	return nil
}

// BumpWFHUsage implements leave.SummaryRepository. One statement handles the
// week rollover: when the stored week is stale the weekly counter restarts
// at 1 and the stored week advances.
func (r *leaveSummaryRepositoryImpl) BumpWFHUsage(ctx context.Context, summaryID string, weekStart validator.Date) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_summaries
		SET wfh_used_this_week = CASE
				WHEN wfh_last_week_start = $1 THEN wfh_used_this_week + 1
				ELSE 1
			END,
			wfh_used_this_month = wfh_used_this_month + 1,
			wfh_last_week_start = $1,
			updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, weekStart, summaryID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrSummaryNotFound
	}
	return nil
}

// SetCarryOver implements leave.SummaryRepository.
func (r *leaveSummaryRepositoryImpl) SetCarryOver(ctx context.Context, summaryID string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_summaries
		SET annual_carried_over = $1,
			updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, days, summaryID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrSummaryNotFound
	}
	return nil
}
