package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/employee"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/overtime"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

// RecomputeService rebuilds leave summaries from first principles: the
// tenure-derived entitlements plus a replay of every approved request. The
// approved request ledger is the source of truth; the summary rows are a
// cache of it.
type RecomputeService struct {
	summaries *SummaryService
	leave.RequestRepository
	overtime.OvertimeRepository
	employee.EmployeeRepository
}

func NewRecomputeService(summaries *SummaryService, requestRepository leave.RequestRepository, overtimeRepository overtime.OvertimeRepository, employeeRepository employee.EmployeeRepository) *RecomputeService {
	return &RecomputeService{
		summaries:          summaries,
		RequestRepository:  requestRepository,
		OvertimeRepository: overtimeRepository,
		EmployeeRepository: employeeRepository,
	}
}

// Run recomputes every active employee's summaries. A failure on one
// employee-year is recorded in the report and the run moves on; a corrupt
// hire date must not block everyone else's repair.
func (s *RecomputeService) Run(ctx context.Context) (leave.RecomputationReport, error) {
	employees, err := s.EmployeeRepository.GetActive(ctx)
	if err != nil {
		return leave.RecomputationReport{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	approved, err := s.RequestRepository.ListApproved(ctx)
	if err != nil {
		return leave.RecomputationReport{}, fmt.Errorf("failed to list approved requests: %w", err)
	}

	byEmployee := make(map[string][]leave.Request)
	for _, req := range approved {
		byEmployee[req.EmployeeID] = append(byEmployee[req.EmployeeID], req)
	}

	today := validator.Today()
	report := leave.RecomputationReport{}

	// Inactive employees with approved history still get their ledger
	// corrected; only employees absent from both sets are skipped.
	seen := make(map[string]bool, len(employees))
	for _, emp := range employees {
		seen[emp.ID] = true
	}
	for employeeID := range byEmployee {
		if seen[employeeID] {
			continue
		}
		emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			slog.Error("Skipping unknown employee during recomputation",
				"employee_id", employeeID,
				"error", err,
			)
			report.Skipped = append(report.Skipped, leave.SkippedEmployee{
				EmployeeID: employeeID,
				Reason:     err.Error(),
			})
			continue
		}
		employees = append(employees, emp)
	}

	for _, emp := range employees {
		for _, year := range summaryYears(byEmployee[emp.ID], today.Year()) {
			created, err := s.rebuild(ctx, emp, year, byEmployee[emp.ID], today)
			if err != nil {
				slog.Error("Skipping employee-year during recomputation",
					"employee_id", emp.ID,
					"year", year,
					"error", err,
				)
				report.Skipped = append(report.Skipped, leave.SkippedEmployee{
					EmployeeID: emp.ID,
					Year:       year,
					Reason:     err.Error(),
				})
				continue
			}
			if created {
				report.CreatedCount++
			} else {
				report.UpdatedCount++
			}
		}
	}

	slog.Info("Recomputation finished",
		"updated", report.UpdatedCount,
		"created", report.CreatedCount,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

// summaryYears lists the years touched by the employee's approved requests,
// plus the current year, ascending.
func summaryYears(requests []leave.Request, currentYear int) []int {
	seen := map[int]bool{currentYear: true}
	for _, req := range requests {
		seen[req.StartDate.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// rebuild reconstructs one employee-year summary and writes it back. Returns
// true when the summary row did not exist before.
func (s *RecomputeService) rebuild(ctx context.Context, emp employee.Employee, year int, requests []leave.Request, today validator.Date) (bool, error) {
	entitlement, err := AnnualEntitlement(emp.HireDate, year)
	if err != nil {
		return false, err
	}

	fresh := s.summaries.seed(emp, year, entitlement)

	existing, err := s.summaries.GetByEmployeeYear(ctx, emp.ID, year)
	exists := err == nil
	if err != nil && !errors.Is(err, leave.ErrSummaryNotFound) {
		return false, fmt.Errorf("failed to get leave summary: %w", err)
	}
	if exists {
		// Carry-over and the TOIL deposit are not derivable from the
		// request ledger; they survive the rebuild.
		fresh.ID = existing.ID
		fresh.AnnualCarriedOver = existing.AnnualCarriedOver
		fresh.TOILHoursAvailable = existing.TOILHoursAvailable
		fresh.CreatedAt = existing.CreatedAt
	}

	for _, req := range requests {
		if req.StartDate.Year() != year {
			continue
		}
		var toilHours float64
		if req.LeaveType == leave.TypeTOIL {
			if toilHours, err = approvedOvertimeHours(ctx, s.OvertimeRepository, emp.ID, req.OvertimeRequestIDs); err != nil {
				return false, fmt.Errorf("failed to replay TOIL request %s: %w", req.ID, err)
			}
		}
		applyToSummary(&fresh, req, toilHours)
	}

	// Rebuild the derived WFH window counters from the replayed set, pinned
	// to the week and month containing the run date.
	if year == today.Year() {
		fresh.WFHLastWeekStart = today.WeekStart()
		for _, req := range requests {
			if req.LeaveType != leave.TypeWFH {
				continue
			}
			if !req.StartDate.Before(today.WeekStart()) && !req.StartDate.After(today.WeekEnd()) {
				fresh.WFHUsedThisWeek++
			}
			if !req.StartDate.Before(today.MonthStart()) && !req.StartDate.After(today.MonthEnd()) {
				fresh.WFHUsedThisMonth++
			}
		}
	}

	if !exists {
		if _, err := s.summaries.Create(ctx, fresh); err != nil {
			return false, fmt.Errorf("failed to create leave summary: %w", err)
		}
		return true, nil
	}
	if err := s.summaries.Overwrite(ctx, fresh); err != nil {
		return false, fmt.Errorf("failed to overwrite leave summary: %w", err)
	}
	return false, nil
}
