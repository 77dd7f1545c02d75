package services

import (
	"testing"
	"time"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

func TestTotalDays(t *testing.T) {
	cases := []struct {
		planType string
		duration int
		want     int
	}{
		{models.PlanTypeDaily, 90, 90},
		{models.PlanTypeWeekly, 12, 84},
		{models.PlanTypeMonthly, 6, 180},
		{models.PlanTypeMonthly, 12, 360}, // flat 30-day months, not 365
	}
	for _, c := range cases {
		if got := TotalDays(c.planType, c.duration); got != c.want {
			t.Errorf("TotalDays(%s, %d) = %d, want %d", c.planType, c.duration, got, c.want)
		}
	}
}

// Monthly maturity is calendar-aware even though totalDays uses flat 30-day
// months: six months from Jan 15 is Jul 15, not Jan 15 + 180 days (Jul 13).
func TestMaturityDate_MonthlyCalendar(t *testing.T) {
	start := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	got := MaturityDate(models.PlanTypeMonthly, 6, start)
	want := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MaturityDate = %v, want %v", got, want)
	}
	if days := TotalDays(models.PlanTypeMonthly, 6); days != 180 {
		t.Errorf("TotalDays = %d, want 180", days)
	}
}

func TestMaturityDate_DailyAndWeekly(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	if got := MaturityDate(models.PlanTypeDaily, 100, start); !got.Equal(start.AddDate(0, 0, 100)) {
		t.Errorf("daily maturity = %v", got)
	}
	if got := MaturityDate(models.PlanTypeWeekly, 10, start); !got.Equal(start.AddDate(0, 0, 70)) {
		t.Errorf("weekly maturity = %v", got)
	}
}

func TestCalculateMaturity_PlanDefaults(t *testing.T) {
	plan := &models.Plan{
		Name:         "Monthly 1000",
		Type:         models.PlanTypeMonthly,
		Amount:       1000,
		Duration:     12,
		InterestRate: 5,
	}
	calc := CalculateMaturity(plan, dto.CalculateMaturityRequest{})

	if calc.TotalInvestment != 12000 {
		t.Errorf("investment = %v, want 12000", calc.TotalInvestment)
	}
	if calc.Interest != 600 {
		t.Errorf("interest = %v, want 600", calc.Interest)
	}
	if calc.MaturityAmount != 12600 {
		t.Errorf("maturity = %v, want 12600", calc.MaturityAmount)
	}
}

func TestCalculateMaturity_Overrides(t *testing.T) {
	plan := &models.Plan{
		Name:         "Daily 100",
		Type:         models.PlanTypeDaily,
		Amount:       100,
		Duration:     365,
		InterestRate: 7.5,
	}
	calc := CalculateMaturity(plan, dto.CalculateMaturityRequest{CustomAmount: 50, CustomDuration: 200})

	if calc.Amount != 50 || calc.Duration != 200 {
		t.Fatalf("overrides not applied: %+v", calc)
	}
	if calc.TotalInvestment != 10000 {
		t.Errorf("investment = %v, want 10000", calc.TotalInvestment)
	}
	if calc.Interest != 750 {
		t.Errorf("interest = %v, want 750", calc.Interest)
	}
	if calc.MaturityAmount != 10750 {
		t.Errorf("maturity = %v, want 10750", calc.MaturityAmount)
	}
}

// Decimal arithmetic keeps paise exact where float math would drift.
func TestCalculateMaturity_PaiseExact(t *testing.T) {
	plan := &models.Plan{
		Name:         "Odd",
		Type:         models.PlanTypeDaily,
		Amount:       10.10,
		Duration:     3,
		InterestRate: 10,
	}
	calc := CalculateMaturity(plan, dto.CalculateMaturityRequest{})

	if calc.TotalInvestment != 30.30 {
		t.Errorf("investment = %v, want 30.30", calc.TotalInvestment)
	}
	if calc.Interest != 3.03 {
		t.Errorf("interest = %v, want 3.03", calc.Interest)
	}
	if calc.MaturityAmount != 33.33 {
		t.Errorf("maturity = %v, want 33.33", calc.MaturityAmount)
	}
}
