package models

import "time"

const (
	AccountStatusActive    = "active"
	AccountStatusClosed    = "closed"
	AccountStatusSuspended = "suspended"
	AccountStatusCompleted = "completed"
	AccountStatusMatured   = "matured"

	MaturityStatusPending = "Pending"
	MaturityStatusPaid    = "Paid"
	MaturityStatusDue     = "Due"

	EntryTypeDeposit    = "deposit"
	EntryTypeWithdrawal = "withdrawal"

	EntryStatusPending   = "pending"
	EntryStatusCompleted = "completed"
	EntryStatusFailed    = "failed"
)

// LedgerEntry is one deposit or withdrawal event embedded in the account's
// transaction history. ReferenceNumber correlates the entry with its Payment
// document; the Payment is the source of truth and the entry its projection.
type LedgerEntry struct {
	ReferenceNumber string    `firestore:"referenceNumber" json:"referenceNumber"`
	Date            time.Time `firestore:"date" json:"date"`
	Amount          float64   `firestore:"amount" json:"amount"`
	Type            string    `firestore:"type" json:"type"`
	Method          string    `firestore:"method" json:"method,omitempty"`
	Status          string    `firestore:"status" json:"status"`
	CollectedBy     string    `firestore:"collectedBy" json:"collectedBy,omitempty"`
}

// Account is a customer's subscription to a savings plan. Plan name and
// interest rate are copy-embedded at creation time, mirroring the plan
// document (two sources of truth, as the original kept them).
type Account struct {
	ID            string `firestore:"id" json:"id"`
	AccountNumber string `firestore:"accountNumber" json:"accountNumber"`
	AccountID     string `firestore:"accountId" json:"accountId"`
	CustomerID    string `firestore:"customerId" json:"customerId"`
	CollectorID   string `firestore:"collectorId" json:"collectorId"`
	PlanID        string `firestore:"planId" json:"planId,omitempty"`

	AccountType     string     `firestore:"accountType" json:"accountType"`
	DailyAmount     float64    `firestore:"dailyAmount" json:"dailyAmount"`
	TotalBalance    float64    `firestore:"totalBalance" json:"totalBalance"`
	LastTransaction *time.Time `firestore:"lastTransaction,omitempty" json:"lastTransaction,omitempty"`
	Status          string     `firestore:"status" json:"status"`

	OpeningDate time.Time  `firestore:"openingDate" json:"openingDate"`
	ClosingDate *time.Time `firestore:"closingDate,omitempty" json:"closingDate,omitempty"`

	StartDate      time.Time  `firestore:"startDate" json:"startDate"`
	Duration       int        `firestore:"duration" json:"duration"`
	InterestRate   float64    `firestore:"interestRate" json:"interestRate"`
	TotalDays      int        `firestore:"totalDays" json:"totalDays"`
	MaturityDate   *time.Time `firestore:"maturityDate,omitempty" json:"maturityDate,omitempty"`
	MaturityStatus string     `firestore:"maturityStatus" json:"maturityStatus"`
	WithdrawalDate *time.Time `firestore:"withdrawalDate,omitempty" json:"withdrawalDate,omitempty"`

	PaymentMode      string `firestore:"paymentMode" json:"paymentMode,omitempty"`
	PaymentReference string `firestore:"paymentReference" json:"paymentReference,omitempty"`

	CustomerName  string `firestore:"customerName" json:"customerName,omitempty"`
	PlanName      string `firestore:"planName" json:"planName,omitempty"`
	CollectorName string `firestore:"collectorName" json:"collectorName,omitempty"`

	CreatedBy string `firestore:"createdBy" json:"createdBy"`
	UpdatedBy string `firestore:"updatedBy" json:"updatedBy,omitempty"`
	Remarks   string `firestore:"remarks" json:"remarks,omitempty"`

	Transactions []LedgerEntry `firestore:"transactions" json:"transactions"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
