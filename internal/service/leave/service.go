package leave

import (
	"context"
	"sync"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
)

// Service bundles the lifecycle controller, the summary accessor and the two
// batch jobs behind the leave.LeaveService contract.
type Service struct {
	requests  *RequestService
	summaries *SummaryService
	recompute *RecomputeService
	carryOver *CarryOverService

	// Each batch job serializes with itself; a second trigger waits for the
	// in-flight run rather than interleaving with it.
	recomputeMu sync.Mutex
	carryOverMu sync.Mutex
}

var _ leave.LeaveService = (*Service)(nil)

func NewService(requests *RequestService, summaries *SummaryService, recompute *RecomputeService, carryOver *CarryOverService) *Service {
	return &Service{
		requests:  requests,
		summaries: summaries,
		recompute: recompute,
		carryOver: carryOver,
	}
}

func (s *Service) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.CreateLeaveRequestResponse, error) {
	return s.requests.Create(ctx, req)
}

func (s *Service) ApproveLeaveRequest(ctx context.Context, requestID, approverID string) (leave.Request, error) {
	return s.requests.Approve(ctx, requestID, approverID)
}

func (s *Service) RejectLeaveRequest(ctx context.Context, requestID, approverID, reason string) (leave.Request, error) {
	return s.requests.Reject(ctx, requestID, approverID, reason)
}

func (s *Service) GetLeaveBalance(ctx context.Context, employeeID string, year int) (leave.BalanceSnapshot, error) {
	summary, err := s.summaries.GetOrCreate(ctx, employeeID, year)
	if err != nil {
		return leave.BalanceSnapshot{}, err
	}

	return leave.BalanceSnapshot{
		EmployeeID:           summary.EmployeeID,
		Year:                 summary.Year,
		AnnualEntitlement:    summary.AnnualEntitlement,
		AnnualUsed:           summary.AnnualUsed,
		AnnualCarriedOver:    summary.AnnualCarriedOver,
		AnnualAvailable:      summary.AnnualAvailable(),
		SickFullPayDays:      summary.SickFullPayDays,
		SickHalfPayDays:      summary.SickHalfPayDays,
		SickUnpaidDays:       summary.SickUnpaidDays,
		SickUsed:             summary.SickUsed,
		MaternityEntitlement: summary.MaternityEntitlement,
		MaternityUsed:        summary.MaternityUsed,
		EmergencyEntitlement: summary.EmergencyEntitlement,
		EmergencyUsed:        summary.EmergencyUsed,
		TOILHoursAvailable:   summary.TOILHoursAvailable,
		TOILHoursUsed:        summary.TOILHoursUsed,
		WFHWeeklyLimit:       summary.WFHWeeklyLimit,
		WFHMonthlyLimit:      summary.WFHMonthlyLimit,
		WFHUsedThisWeek:      summary.WFHUsedThisWeek,
		WFHUsedThisMonth:     summary.WFHUsedThisMonth,
	}, nil
}

func (s *Service) RunRecomputation(ctx context.Context) (leave.RecomputationReport, error) {
	s.recomputeMu.Lock()
	defer s.recomputeMu.Unlock()
	return s.recompute.Run(ctx)
}

func (s *Service) RunCarryOver(ctx context.Context, previousYear, currentYear int) (leave.CarryOverReport, error) {
	s.carryOverMu.Lock()
	defer s.carryOverMu.Unlock()
	return s.carryOver.Run(ctx, previousYear, currentYear)
}
