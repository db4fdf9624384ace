package postgresql

import (
	"context"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/overtime"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/database"
)

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

// GetByIDs implements overtime.OvertimeRepository. Missing IDs are simply
// absent from the result; callers decide whether that is an error.
func (r *overtimeRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]overtime.Overtime, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, requested_hours, status, created_at, updated_at
		FROM overtime_requests
		WHERE id = ANY($1)
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]overtime.Overtime, 0, len(ids))
	for rows.Next() {
		var record overtime.Overtime
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.RequestedHours, &record.Status,
			&record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
