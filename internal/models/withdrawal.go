package models

import "time"

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

// Withdrawal is a customer-initiated request to take money out of an
// account; the balance only moves when a collector or admin approves it.
type Withdrawal struct {
	ID         string `firestore:"id" json:"id"`
	AccountID  string `firestore:"accountId" json:"accountId"`
	CustomerID string `firestore:"customerId" json:"customerId"`

	Amount float64 `firestore:"amount" json:"amount"`
	Reason string  `firestore:"reason" json:"reason"`
	Status string  `firestore:"status" json:"status"`

	ReferenceNumber string `firestore:"referenceNumber" json:"referenceNumber,omitempty"`
	Remarks         string `firestore:"remarks" json:"remarks,omitempty"`

	ProcessedBy string     `firestore:"processedBy" json:"processedBy,omitempty"`
	ProcessedAt *time.Time `firestore:"processedAt,omitempty" json:"processedAt,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
