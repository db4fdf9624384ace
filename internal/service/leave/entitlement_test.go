package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/domain/employee"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/validator"
)

func TestAnnualEntitlement(t *testing.T) {
	cases := []struct {
		name     string
		hireDate validator.Date
		year     int
		want     float64
	}{
		{"hired years ago", validator.NewDate(2020, 3, 15), 2025, 30},
		{"hired on January 1st of the year", validator.NewDate(2024, 1, 1), 2024, 30},
		{"hired mid prior year", validator.NewDate(2024, 7, 1), 2025, 30},
		{"four full months", validator.NewDate(2024, 8, 1), 2024, 0},
		{"five full months", validator.NewDate(2024, 7, 1), 2024, 0},
		{"six full months", validator.NewDate(2024, 6, 1), 2024, 0},
		{"seven full months", validator.NewDate(2024, 5, 1), 2024, 2},
		{"nine full months", validator.NewDate(2024, 3, 1), 2024, 6},
		{"ten full months", validator.NewDate(2024, 2, 1), 2024, 8},
		{"eleven full months", validator.NewDate(2024, 1, 2), 2024, 10},
		{"hired after the year ends", validator.NewDate(2026, 2, 1), 2025, 0},
		{"hired on December 31st", validator.NewDate(2024, 12, 31), 2024, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := AnnualEntitlement(c.hireDate, c.year)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestAnnualEntitlementProRatedCap(t *testing.T) {
	// A first-day-of-month hire in month (12-m) yields exactly m full months
	// of service by December 31st.
	for months := 6; months <= 10; months++ {
		hire := validator.NewDate(2024, time.Month(12-months), 1)
		got, err := AnnualEntitlement(hire, 2024)
		require.NoError(t, err)
		assert.Equal(t, float64(2*(months-6)), got)
		assert.LessOrEqual(t, got, float64(ProRatedCapDays))
	}
}

func TestAnnualEntitlementMissingHireDate(t *testing.T) {
	_, err := AnnualEntitlement(validator.Date{}, 2025)
	assert.ErrorIs(t, err, employee.ErrMissingHireDate)
}

func TestFullServiceMonths(t *testing.T) {
	cases := []struct {
		name     string
		hireDate validator.Date
		year     int
		want     int
	}{
		{"before the year", validator.NewDate(2023, 5, 10), 2025, 12},
		{"on January 1st", validator.NewDate(2025, 1, 1), 2025, 12},
		{"February 1st", validator.NewDate(2025, 2, 1), 2025, 10},
		{"August 1st", validator.NewDate(2025, 8, 1), 2025, 4},
		{"mid-month hire rounds down", validator.NewDate(2025, 6, 15), 2025, 6},
		{"after the year", validator.NewDate(2026, 1, 2), 2025, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FullServiceMonths(c.hireDate, c.year))
		})
	}
}
