package models

import "time"

const (
	StatementTypeMonthly   = "monthly"
	StatementTypeQuarterly = "quarterly"
	StatementTypeYearly    = "yearly"
)

// Statement is a derived report snapshot generated on demand; it is not
// kept current as later transactions land.
type Statement struct {
	ID         string `firestore:"id" json:"id"`
	AccountID  string `firestore:"accountId" json:"accountId"`
	CustomerID string `firestore:"customerId" json:"customerId"`

	StartDate time.Time `firestore:"startDate" json:"startDate"`
	EndDate   time.Time `firestore:"endDate" json:"endDate"`
	Type      string    `firestore:"type" json:"type"`

	OpeningBalance   float64 `firestore:"openingBalance" json:"openingBalance"`
	ClosingBalance   float64 `firestore:"closingBalance" json:"closingBalance"`
	TotalDeposits    float64 `firestore:"totalDeposits" json:"totalDeposits"`
	TotalWithdrawals float64 `firestore:"totalWithdrawals" json:"totalWithdrawals"`

	GeneratedBy string    `firestore:"generatedBy" json:"generatedBy"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}
