package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/config"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/employee"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
)

// SummaryService is the get-or-create accessor for the per-employee-per-year
// leave ledger. A summary is created lazily on first access, seeded from the
// tenure-derived entitlement and the policy constants; every read self-heals
// a stale stored annual entitlement before the caller sees it.
type SummaryService struct {
	cfg config.LeaveConfig
	leave.SummaryRepository
	employee.EmployeeRepository
}

func NewSummaryService(cfg config.LeaveConfig, summaryRepository leave.SummaryRepository, employeeRepository employee.EmployeeRepository) *SummaryService {
	return &SummaryService{
		cfg:                cfg,
		SummaryRepository:  summaryRepository,
		EmployeeRepository: employeeRepository,
	}
}

// GetOrCreate returns the summary for (employeeID, year), creating and
// seeding it if absent.
func (s *SummaryService) GetOrCreate(ctx context.Context, employeeID string, year int) (leave.Summary, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return leave.Summary{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	entitlement, err := AnnualEntitlement(emp.HireDate, year)
	if err != nil {
		return leave.Summary{}, fmt.Errorf("failed to compute annual entitlement for employee %s: %w", employeeID, err)
	}

	summary, err := s.SummaryRepository.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		if !errors.Is(err, leave.ErrSummaryNotFound) {
			return leave.Summary{}, fmt.Errorf("failed to get leave summary: %w", err)
		}
		created, createErr := s.SummaryRepository.Create(ctx, s.seed(emp, year, entitlement))
		if createErr != nil {
			return leave.Summary{}, fmt.Errorf("failed to create leave summary: %w", createErr)
		}
		slog.Info("Created leave summary",
			"employee_id", employeeID,
			"year", year,
			"annual_entitlement", entitlement,
		)
		return created, nil
	}

	// Self-heal a stale entitlement: the stored value drifts when the hire
	// date is corrected or when the employee crosses an accrual threshold.
	if summary.AnnualEntitlement != entitlement {
		slog.Info("Repairing stale annual entitlement",
			"employee_id", employeeID,
			"year", year,
			"stored", summary.AnnualEntitlement,
			"computed", entitlement,
		)
		summary.AnnualEntitlement = entitlement
		if err := s.SummaryRepository.Overwrite(ctx, summary); err != nil {
			return leave.Summary{}, fmt.Errorf("failed to repair leave summary: %w", err)
		}
	}

	return summary, nil
}

// seed builds a fresh summary row for one employee-year.
func (s *SummaryService) seed(emp employee.Employee, year int, annualEntitlement float64) leave.Summary {
	maternity := 0.0
	if emp.Gender == employee.Female {
		maternity = s.cfg.MaternityDays
	}

	return leave.Summary{
		EmployeeID:           emp.ID,
		Year:                 year,
		AnnualEntitlement:    annualEntitlement,
		SickFullPayDays:      s.cfg.SickFullPayDays,
		SickHalfPayDays:      s.cfg.SickHalfPayDays,
		SickUnpaidDays:       s.cfg.SickUnpaidDays,
		MaternityEntitlement: maternity,
		EmergencyEntitlement: s.cfg.EmergencyDays,
		WFHWeeklyLimit:       s.cfg.WFHWeeklyLimit,
		WFHMonthlyLimit:      s.cfg.WFHMonthlyLimit,
	}
}
