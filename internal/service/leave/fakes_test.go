package leave

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/employee"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/overtime"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

// In-memory repository fakes. They implement the same guarded-update
// semantics as the SQL repositories so service tests exercise the real
// conflict and balance behavior.

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		repo.employees[emp.ID] = emp
	}
	return repo
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	active := make([]employee.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		if emp.EmploymentStatus == employee.EmploymentStatusActive {
			active = append(active, emp)
		}
	}
	return active, nil
}

type fakeOvertimeRepo struct {
	records map[string]overtime.Overtime
}

func newFakeOvertimeRepo(records ...overtime.Overtime) *fakeOvertimeRepo {
	repo := &fakeOvertimeRepo{records: make(map[string]overtime.Overtime)}
	for _, record := range records {
		repo.records[record.ID] = record
	}
	return repo
}

func (r *fakeOvertimeRepo) GetByIDs(_ context.Context, ids []string) ([]overtime.Overtime, error) {
	found := make([]overtime.Overtime, 0, len(ids))
	for _, id := range ids {
		if record, ok := r.records[id]; ok {
			found = append(found, record)
		}
	}
	return found, nil
}

type fakeSummaryRepo struct {
	mu        sync.Mutex
	summaries map[string]leave.Summary // keyed by ID
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{summaries: make(map[string]leave.Summary)}
}

func (r *fakeSummaryRepo) Create(_ context.Context, summary leave.Summary) (leave.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.summaries {
		if existing.EmployeeID == summary.EmployeeID && existing.Year == summary.Year {
			return existing, nil
		}
	}
	summary.ID = uuid.NewString()
	r.summaries[summary.ID] = summary
	return summary, nil
}

func (r *fakeSummaryRepo) GetByEmployeeYear(_ context.Context, employeeID string, year int) (leave.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, summary := range r.summaries {
		if summary.EmployeeID == employeeID && summary.Year == year {
			return summary, nil
		}
	}
	return leave.Summary{}, leave.ErrSummaryNotFound
}

func (r *fakeSummaryRepo) Overwrite(_ context.Context, summary leave.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.summaries[summary.ID]; !ok {
		return leave.ErrSummaryNotFound
	}
	r.summaries[summary.ID] = summary
	return nil
}

func (r *fakeSummaryRepo) AddAnnualUsed(_ context.Context, summaryID string, days float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary, ok := r.summaries[summaryID]
	if !ok {
		return leave.ErrSummaryNotFound
	}
	if summary.AnnualEntitlement+summary.AnnualCarriedOver-summary.AnnualUsed-days < 0 {
		return leave.ErrInsufficientBalance
	}
	summary.AnnualUsed += days
	r.summaries[summaryID] = summary
	return nil
}

func (r *fakeSummaryRepo) AddSickUsed(_ context.Context, summaryID string, days float64) error {
	return r.add(summaryID, func(s *leave.Summary) { s.SickUsed += days })
}

func (r *fakeSummaryRepo) AddMaternityUsed(_ context.Context, summaryID string, days float64) error {
	return r.add(summaryID, func(s *leave.Summary) { s.MaternityUsed += days })
}

func (r *fakeSummaryRepo) AddEmergencyUsed(_ context.Context, summaryID string, days float64) error {
	return r.add(summaryID, func(s *leave.Summary) { s.EmergencyUsed += days })
}

func (r *fakeSummaryRepo) AddTOILHoursUsed(_ context.Context, summaryID string, hours float64) error {
	return r.add(summaryID, func(s *leave.Summary) { s.TOILHoursUsed += hours })
}

func (r *fakeSummaryRepo) BumpWFHUsage(_ context.Context, summaryID string, weekStart validator.Date) error {
	return r.add(summaryID, func(s *leave.Summary) {
		if s.WFHLastWeekStart.Equal(weekStart) {
			s.WFHUsedThisWeek++
		} else {
			s.WFHUsedThisWeek = 1
		}
		s.WFHUsedThisMonth++
		s.WFHLastWeekStart = weekStart
	})
}

func (r *fakeSummaryRepo) SetCarryOver(_ context.Context, summaryID string, days float64) error {
	return r.add(summaryID, func(s *leave.Summary) { s.AnnualCarriedOver = days })
}

func (r *fakeSummaryRepo) add(summaryID string, mutate func(*leave.Summary)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	summary, ok := r.summaries[summaryID]
	if !ok {
		return leave.ErrSummaryNotFound
	}
	mutate(&summary)
	r.summaries[summaryID] = summary
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]leave.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.Request)}
}

func (r *fakeRequestRepo) Create(_ context.Context, request leave.Request) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = uuid.NewString()
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (r *fakeRequestRepo) MarkApproved(_ context.Context, id, approverID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok || request.Status != leave.RequestStatusPending {
		return false, nil
	}
	request.Status = leave.RequestStatusApproved
	request.ApprovedBy = &approverID
	r.requests[id] = request
	return true, nil
}

func (r *fakeRequestRepo) MarkRejected(_ context.Context, id, approverID, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok || request.Status != leave.RequestStatusPending {
		return false, nil
	}
	request.Status = leave.RequestStatusRejected
	request.ApprovedBy = &approverID
	request.RejectionReason = &reason
	r.requests[id] = request
	return true, nil
}

func (r *fakeRequestRepo) CountByTypeInRange(_ context.Context, employeeID string, leaveType leave.Type, statuses []leave.RequestStatus, from, to validator.Date) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, request := range r.requests {
		if request.EmployeeID != employeeID || request.LeaveType != leaveType {
			continue
		}
		if request.StartDate.Before(from) || request.StartDate.After(to) {
			continue
		}
		for _, status := range statuses {
			if request.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeRequestRepo) ListApproved(_ context.Context) ([]leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	approved := make([]leave.Request, 0)
	for _, request := range r.requests {
		if request.Status == leave.RequestStatusApproved {
			approved = append(approved, request)
		}
	}
	return approved, nil
}

// mustAdd seeds an approved or pending request directly.
func (r *fakeRequestRepo) mustAdd(request leave.Request) leave.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if request.ID == "" {
		request.ID = fmt.Sprintf("req-%d", len(r.requests)+1)
	}
	r.requests[request.ID] = request
	return request
}
