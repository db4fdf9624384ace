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

// CarryOverService moves capped unused annual leave from one year's summary
// into the next year's. The carried amount is written with an overwrite, so
// rerunning the job for the same year pair converges instead of accumulating.
type CarryOverService struct {
	cfg       config.LeaveConfig
	summaries *SummaryService
	employee.EmployeeRepository
}

func NewCarryOverService(cfg config.LeaveConfig, summaries *SummaryService, employeeRepository employee.EmployeeRepository) *CarryOverService {
	return &CarryOverService{
		cfg:                cfg,
		summaries:          summaries,
		EmployeeRepository: employeeRepository,
	}
}

// Run carries unused annual leave from previousYear into currentYear for
// every active employee. Employees with no previous-year summary are not an
// error; they simply carry nothing.
func (s *CarryOverService) Run(ctx context.Context, previousYear, currentYear int) (leave.CarryOverReport, error) {
	if currentYear <= previousYear {
		return leave.CarryOverReport{}, fmt.Errorf("current year %d must follow previous year %d", currentYear, previousYear)
	}

	employees, err := s.EmployeeRepository.GetActive(ctx)
	if err != nil {
		return leave.CarryOverReport{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	report := leave.CarryOverReport{
		PreviousYear: previousYear,
		CurrentYear:  currentYear,
	}

	for _, emp := range employees {
		entry, err := s.carryForEmployee(ctx, emp.ID, previousYear, currentYear)
		if err != nil {
			if errors.Is(err, leave.ErrSummaryNotFound) {
				continue
			}
			slog.Error("Skipping employee during carry-over",
				"employee_id", emp.ID,
				"error", err,
			)
			report.Skipped = append(report.Skipped, leave.SkippedEmployee{
				EmployeeID: emp.ID,
				Reason:     err.Error(),
			})
			continue
		}
		report.Entries = append(report.Entries, entry)
	}

	slog.Info("Carry-over finished",
		"previous_year", previousYear,
		"current_year", currentYear,
		"carried", len(report.Entries),
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func (s *CarryOverService) carryForEmployee(ctx context.Context, employeeID string, previousYear, currentYear int) (leave.CarryOverEntry, error) {
	previous, err := s.summaries.GetByEmployeeYear(ctx, employeeID, previousYear)
	if err != nil {
		return leave.CarryOverEntry{}, err
	}

	unused := previous.AnnualAvailable()
	if unused < 0 {
		unused = 0
	}
	carry := unused
	if carry > s.cfg.MaxCarryOverDays {
		carry = s.cfg.MaxCarryOverDays
	}

	current, err := s.summaries.GetOrCreate(ctx, employeeID, currentYear)
	if err != nil {
		return leave.CarryOverEntry{}, err
	}

	if err := s.summaries.SetCarryOver(ctx, current.ID, carry); err != nil {
		return leave.CarryOverEntry{}, fmt.Errorf("failed to set carry-over: %w", err)
	}

	return leave.CarryOverEntry{
		EmployeeID:      employeeID,
		UnusedDays:      unused,
		CarriedOverDays: carry,
	}, nil
}
