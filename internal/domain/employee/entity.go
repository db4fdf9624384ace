package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

// Employee is a read-only collaborator record. The leave engine reads hire
// date, gender and status; it never writes employees.
type Employee struct {
	ID               string
	FullName         string
	Gender           Gender
	HireDate         validator.Date
	EmploymentStatus EmploymentStatus
	BaseSalary       *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
