package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
)

func newCarryOverEnv(t *testing.T) (*CarryOverService, *fakeSummaryRepo, *SummaryService) {
	t.Helper()
	employeeRepo := newFakeEmployeeRepo(testEmployee("emp-1"))
	summaryRepo := newFakeSummaryRepo()
	summaries := NewSummaryService(testLeaveConfig(), summaryRepo, employeeRepo)
	return NewCarryOverService(testLeaveConfig(), summaries, employeeRepo), summaryRepo, summaries
}

func TestCarryOverCapsAtConfiguredMaximum(t *testing.T) {
	service, summaryRepo, _ := newCarryOverEnv(t)
	ctx := context.Background()

	// 30 entitled, 18 used: 12 unused, capped to 5.
	_, err := summaryRepo.Create(ctx, leave.Summary{
		EmployeeID: "emp-1", Year: 2024, AnnualEntitlement: 30, AnnualUsed: 18,
	})
	require.NoError(t, err)

	report, err := service.Run(ctx, 2024, 2025)
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	assert.Equal(t, 12.0, report.Entries[0].UnusedDays)
	assert.Equal(t, 5.0, report.Entries[0].CarriedOverDays)

	current, err := summaryRepo.GetByEmployeeYear(ctx, "emp-1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 5.0, current.AnnualCarriedOver)
}

func TestCarryOverBelowCap(t *testing.T) {
	service, summaryRepo, _ := newCarryOverEnv(t)
	ctx := context.Background()

	_, err := summaryRepo.Create(ctx, leave.Summary{
		EmployeeID: "emp-1", Year: 2024, AnnualEntitlement: 30, AnnualUsed: 27,
	})
	require.NoError(t, err)

	report, err := service.Run(ctx, 2024, 2025)
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	assert.Equal(t, 3.0, report.Entries[0].CarriedOverDays)
}

func TestCarryOverIsIdempotent(t *testing.T) {
	service, summaryRepo, _ := newCarryOverEnv(t)
	ctx := context.Background()

	_, err := summaryRepo.Create(ctx, leave.Summary{
		EmployeeID: "emp-1", Year: 2024, AnnualEntitlement: 30, AnnualUsed: 10,
	})
	require.NoError(t, err)

	_, err = service.Run(ctx, 2024, 2025)
	require.NoError(t, err)
	_, err = service.Run(ctx, 2024, 2025)
	require.NoError(t, err)

	current, err := summaryRepo.GetByEmployeeYear(ctx, "emp-1", 2025)
	require.NoError(t, err)
	// Overwrite semantics: rerunning converges instead of doubling.
	assert.Equal(t, 5.0, current.AnnualCarriedOver)
}

func TestCarryOverWithoutPreviousSummaryCarriesNothing(t *testing.T) {
	service, summaryRepo, _ := newCarryOverEnv(t)
	ctx := context.Background()

	report, err := service.Run(ctx, 2024, 2025)
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Empty(t, report.Skipped)

	_, err = summaryRepo.GetByEmployeeYear(ctx, "emp-1", 2025)
	assert.ErrorIs(t, err, leave.ErrSummaryNotFound)
}

func TestCarryOverRejectsNonConsecutiveYears(t *testing.T) {
	service, _, _ := newCarryOverEnv(t)

	_, err := service.Run(context.Background(), 2025, 2025)
	assert.Error(t, err)
}
