package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/config"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/employee"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/leave"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/overtime"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

func testLeaveConfig() config.LeaveConfig {
	return config.LeaveConfig{
		MaxCarryOverDays: 5,
		WFHWeeklyLimit:   1,
		WFHMonthlyLimit:  4,
		EmergencyDays:    5,
		MaternityDays:    60,
		SickFullPayDays:  15,
		SickHalfPayDays:  30,
		SickUnpaidDays:   45,
	}
}

func testEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:               id,
		FullName:         "Amira Hassan",
		Gender:           employee.Female,
		HireDate:         validator.NewDate(2020, 1, 15),
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

type validatorEnv struct {
	summaries  *SummaryService
	requests   *fakeRequestRepo
	overtime   *fakeOvertimeRepo
	validators *Validators
}

func newValidatorEnv(t *testing.T, employees ...employee.Employee) *validatorEnv {
	t.Helper()
	if len(employees) == 0 {
		employees = []employee.Employee{testEmployee("emp-1")}
	}
	summaryRepo := newFakeSummaryRepo()
	requestRepo := newFakeRequestRepo()
	overtimeRepo := newFakeOvertimeRepo()
	summaries := NewSummaryService(testLeaveConfig(), summaryRepo, newFakeEmployeeRepo(employees...))
	return &validatorEnv{
		summaries:  summaries,
		requests:   requestRepo,
		overtime:   overtimeRepo,
		validators: NewValidators(summaries, requestRepo, overtimeRepo),
	}
}

func annualRequest(employeeID string, start validator.Date, days float64) leave.Request {
	return leave.Request{
		EmployeeID:   employeeID,
		LeaveType:    leave.TypeAnnual,
		StartDate:    start,
		EndDate:      start.AddDays(int(days) - 1),
		NumberOfDays: days,
		Status:       leave.RequestStatusPending,
	}
}

func TestValidateAnnualWithinBalance(t *testing.T) {
	env := newValidatorEnv(t)
	ctx := context.Background()

	result, err := env.validators.Validate(ctx, annualRequest("emp-1", validator.NewDate(2025, 6, 2), 10))
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, 30.0, result.Balance)
	assert.Equal(t, 20.0, result.ProjectedBalance)
}

func TestValidateAnnualInsufficientBalance(t *testing.T) {
	env := newValidatorEnv(t)
	ctx := context.Background()

	// Burn 28 of the 30 days, then ask for 3.
	summary, err := env.summaries.GetOrCreate(ctx, "emp-1", 2025)
	require.NoError(t, err)
	require.NoError(t, env.summaries.AddAnnualUsed(ctx, summary.ID, 28))

	result, err := env.validators.Validate(ctx, annualRequest("emp-1", validator.NewDate(2025, 6, 2), 3))
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Equal(t, 2.0, result.Balance)
	assert.Contains(t, result.Message, "available 2.0")
}

func TestValidateSickIsPassThrough(t *testing.T) {
	env := newValidatorEnv(t)
	ctx := context.Background()

	result, err := env.validators.Validate(ctx, leave.Request{
		EmployeeID:   "emp-1",
		LeaveType:    leave.TypeSick,
		StartDate:    validator.NewDate(2025, 6, 2),
		NumberOfDays: 120, // past the whole 90-day bank
		Status:       leave.RequestStatusPending,
	})
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, 90.0, result.Balance)
}

func TestValidateEmergencyChargedToAnnual(t *testing.T) {
	env := newValidatorEnv(t)
	ctx := context.Background()

	summary, err := env.summaries.GetOrCreate(ctx, "emp-1", 2025)
	require.NoError(t, err)
	require.NoError(t, env.summaries.AddAnnualUsed(ctx, summary.ID, 29))

	method := leave.CompensationAnnualLeave
	result, err := env.validators.Validate(ctx, leave.Request{
		EmployeeID:         "emp-1",
		LeaveType:          leave.TypeEmergency,
		StartDate:          validator.NewDate(2025, 6, 2),
		NumberOfDays:       2,
		CompensationMethod: &method,
		Status:             leave.RequestStatusPending,
	})
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "emergency leave charged to annual leave")
}

func TestValidateEmergencyUnpaidSkipsBalanceCheck(t *testing.T) {
	env := newValidatorEnv(t)
	ctx := context.Background()

	method := leave.CompensationUnpaid
	result, err := env.validators.Validate(ctx, leave.Request{
		EmployeeID:         "emp-1",
		LeaveType:          leave.TypeEmergency,
		StartDate:          validator.NewDate(2025, 6, 2),
		NumberOfDays:       10,
		CompensationMethod: &method,
		Status:             leave.RequestStatusPending,
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateTOIL(t *testing.T) {
	env := newValidatorEnv(t)
	env.overtime.records["ot-1"] = overtime.Overtime{ID: "ot-1", EmployeeID: "emp-1", RequestedHours: 5, Status: overtime.StatusApproved}
	env.overtime.records["ot-2"] = overtime.Overtime{ID: "ot-2", EmployeeID: "emp-1", RequestedHours: 3, Status: overtime.StatusApproved}
	env.overtime.records["ot-pending"] = overtime.Overtime{ID: "ot-pending", EmployeeID: "emp-1", RequestedHours: 9, Status: overtime.StatusPending}
	env.overtime.records["ot-other"] = overtime.Overtime{ID: "ot-other", EmployeeID: "emp-2", RequestedHours: 9, Status: overtime.StatusApproved}
	ctx := context.Background()

	toilRequest := func(ids ...string) leave.Request {
		return leave.Request{
			EmployeeID:         "emp-1",
			LeaveType:          leave.TypeTOIL,
			StartDate:          validator.NewDate(2025, 6, 2),
			OvertimeRequestIDs: ids,
			Status:             leave.RequestStatusPending,
		}
	}

	// Exactly 8.0 hours converts to one day.
	result, err := env.validators.Validate(ctx, toilRequest("ot-1", "ot-2"))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 8.0, result.Balance)
	assert.Equal(t, 1.0, result.ProjectedBalance)

	// 5.0 hours is short of a day.
	result, err = env.validators.Validate(ctx, toilRequest("ot-1"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "5.0 hours")

	// Non-approved overtime is rejected.
	result, err = env.validators.Validate(ctx, toilRequest("ot-pending"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "not approved")

	// Someone else's overtime is rejected.
	result, err = env.validators.Validate(ctx, toilRequest("ot-other"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "does not belong")

	// An unknown ID is an error, not a validation verdict.
	_, err = env.validators.Validate(ctx, toilRequest("ot-missing"))
	assert.ErrorIs(t, err, overtime.ErrOvertimeNotFound)

	// No IDs selected.
	result, err = env.validators.Validate(ctx, toilRequest())
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateWFHWeeklyLimit(t *testing.T) {
	env := newValidatorEnv(t)
	ctx := context.Background()

	// A pending WFH request on Monday blocks another in the same week.
	monday := validator.NewDate(2025, 6, 2)
	env.requests.mustAdd(leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  leave.TypeWFH,
		StartDate:  monday,
		EndDate:    monday,
		Status:     leave.RequestStatusPending,
	})

	wednesday := monday.AddDays(2)
	result, err := env.validators.Validate(ctx, leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  leave.TypeWFH,
		StartDate:  wednesday,
		EndDate:    wednesday,
		Status:     leave.RequestStatusPending,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "weekly work-from-home limit")

	// The following week is fine.
	nextMonday := monday.AddDays(7)
	result, err = env.validators.Validate(ctx, leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  leave.TypeWFH,
		StartDate:  nextMonday,
		EndDate:    nextMonday,
		Status:     leave.RequestStatusPending,
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateWFHMonthlyLimit(t *testing.T) {
	env := newValidatorEnv(t)
	ctx := context.Background()

	// One approved WFH day in each of the first four weeks of the month.
	for week := 0; week < 4; week++ {
		day := validator.NewDate(2025, 7, 1).AddDays(week * 7)
		env.requests.mustAdd(leave.Request{
			EmployeeID: "emp-1",
			LeaveType:  leave.TypeWFH,
			StartDate:  day,
			EndDate:    day,
			Status:     leave.RequestStatusApproved,
		})
	}

	// A fifth request in the same month trips the monthly cap even though
	// its week is free.
	day := validator.NewDate(2025, 7, 30)
	result, err := env.validators.Validate(ctx, leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  leave.TypeWFH,
		StartDate:  day,
		EndDate:    day,
		Status:     leave.RequestStatusPending,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "monthly work-from-home limit")
}

func TestValidateBereavement(t *testing.T) {
	env := newValidatorEnv(t)
	ctx := context.Background()

	bereavement := func(relationship *string) leave.Request {
		return leave.Request{
			EmployeeID:   "emp-1",
			LeaveType:    leave.TypeBereavement,
			StartDate:    validator.NewDate(2025, 6, 2),
			Relationship: relationship,
			Status:       leave.RequestStatusPending,
		}
	}

	result, err := env.validators.Validate(ctx, bereavement(nil))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	spouse := leave.RelationshipSpouse
	result, err = env.validators.Validate(ctx, bereavement(&spouse))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 5.0, result.Balance)

	parent := "parent"
	result, err = env.validators.Validate(ctx, bereavement(&parent))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 3.0, result.Balance)
}

func TestValidateUnknownType(t *testing.T) {
	env := newValidatorEnv(t)

	_, err := env.validators.Validate(context.Background(), leave.Request{
		EmployeeID: "emp-1",
		LeaveType:  leave.Type("sabbatical"),
		StartDate:  validator.NewDate(2025, 6, 2),
	})
	assert.Error(t, err)
}
