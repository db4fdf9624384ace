package overtime

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Overtime is a read-only collaborator record consumed by time-off-in-lieu
// requests. Only approved records can be converted into leave.
type Overtime struct {
	ID             string
	EmployeeID     string
	RequestedHours float64
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
