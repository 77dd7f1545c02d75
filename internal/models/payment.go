package models

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusVerified  = "verified"
	PaymentStatusFailed    = "failed"

	PaymentMethodCash       = "cash"
	PaymentMethodOnline     = "online"
	PaymentMethodWithdrawal = "withdrawal"
)

// Payment records one deposit or withdrawal attempt against an account.
type Payment struct {
	ID          string `firestore:"id" json:"id"`
	AccountID   string `firestore:"accountId" json:"accountId"`
	CustomerID  string `firestore:"customerId" json:"customerId"`
	CollectorID string `firestore:"collectorId" json:"collectorId,omitempty"`

	Amount        float64   `firestore:"amount" json:"amount"`
	PaymentDate   time.Time `firestore:"paymentDate" json:"paymentDate"`
	PaymentMethod string    `firestore:"paymentMethod" json:"paymentMethod"`
	Type          string    `firestore:"type" json:"type"`
	Status        string    `firestore:"status" json:"status"`

	ReceiptNumber string `firestore:"receiptNumber" json:"receiptNumber,omitempty"`
	Remarks       string `firestore:"remarks" json:"remarks,omitempty"`

	VerifiedBy string     `firestore:"verifiedBy" json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `firestore:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`

	CreatedByRole string     `firestore:"createdByRole" json:"createdByRole,omitempty"`
	ProcessedAt   *time.Time `firestore:"processedAt,omitempty" json:"processedAt,omitempty"`
	CreatedAt     time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedAt" json:"updatedAt"`
}
