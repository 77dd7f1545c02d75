package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// TotalDays converts a plan duration into the number of contribution days.
// Monthly plans use a flat 30-day month here even though the maturity date
// is computed on the calendar; the two deliberately disagree and downstream
// reports rely on the flat count.
func TotalDays(planType string, duration int) int {
	switch planType {
	case models.PlanTypeWeekly:
		return duration * 7
	case models.PlanTypeMonthly:
		return duration * 30
	default:
		return duration
	}
}

// MaturityDate computes when an account started at start matures. Daily and
// weekly plans add the flat day count; monthly plans add calendar months.
func MaturityDate(planType string, duration int, start time.Time) time.Time {
	if planType == models.PlanTypeMonthly {
		return start.AddDate(0, duration, 0)
	}
	return start.AddDate(0, 0, TotalDays(planType, duration))
}

// CalculateMaturity projects the payout for a plan, with optional overrides
// for the per-installment amount and the duration. The interest is a flat
// percentage of the invested total, not annualized; computed in decimal and
// rounded to paise.
func CalculateMaturity(plan *models.Plan, req dto.CalculateMaturityRequest) dto.MaturityCalculation {
	amount := plan.Amount
	if req.CustomAmount > 0 {
		amount = req.CustomAmount
	}
	duration := plan.Duration
	if req.CustomDuration > 0 {
		duration = req.CustomDuration
	}

	invested := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(int64(duration)))
	rate := decimal.NewFromFloat(plan.InterestRate).Div(decimal.NewFromInt(100))
	interest := invested.Mul(rate).Round(2)
	maturity := invested.Add(interest).Round(2)

	return dto.MaturityCalculation{
		Plan:            plan.Name,
		Amount:          amount,
		Duration:        duration,
		InterestRate:    plan.InterestRate,
		TotalInvestment: invested.Round(2).InexactFloat64(),
		Interest:        interest.InexactFloat64(),
		MaturityAmount:  maturity.InexactFloat64(),
	}
}
