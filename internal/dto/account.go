package dto

import "github.com/swasthikkulal/pigmy-backend/internal/models"

type CreateAccountRequest struct {
	AccountNumber string  `json:"accountNumber"`
	CustomerID    string  `json:"customerId"`
	CollectorID   string  `json:"collectorId"`
	PlanID        string  `json:"planId,omitempty"`
	AccountType   string  `json:"accountType,omitempty"`
	DailyAmount   float64 `json:"dailyAmount"`
	StartDate     string  `json:"startDate,omitempty"` // YYYY-MM-DD, defaults to today
	Duration      int     `json:"duration,omitempty"`
	InterestRate  float64 `json:"interestRate,omitempty"`
	PaymentMode   string  `json:"paymentMode,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
}

// TransactionRequest applies a deposit or withdrawal directly to an account.
type TransactionRequest struct {
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	CollectedBy string  `json:"collectedBy"`
	Method      string  `json:"method,omitempty"`
}

type UpdateAccountStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
}

type AccountListFilter struct {
	CustomerID  string
	CollectorID string
	Status      string
	Page        PageQuery
}

// TransactionResult pairs the refreshed account with the entry just applied.
type TransactionResult struct {
	Account     *models.Account     `json:"account"`
	Transaction *models.LedgerEntry `json:"transaction"`
}

type AccountTransactions struct {
	AccountNumber string               `json:"accountNumber"`
	Transactions  []models.LedgerEntry `json:"transactions"`
}

type AccountStats struct {
	TotalAccounts  int              `json:"totalAccounts"`
	ActiveAccounts int              `json:"activeAccounts"`
	ClosedAccounts int              `json:"closedAccounts"`
	TotalBalance   float64          `json:"totalBalance"`
	Recent         []RecentActivity `json:"recentTransactions"`
}

type RecentActivity struct {
	AccountNumber string  `json:"accountNumber"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Date          string  `json:"date"`
}

type DeleteAccountResult struct {
	AccountNumber string `json:"accountNumber"`
	Forced        bool   `json:"forced"`
}
