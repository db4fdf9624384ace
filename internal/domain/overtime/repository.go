package overtime

import "context"

// OvertimeRepository - read-only interface for the overtime_requests table
type OvertimeRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]Overtime, error)
}
