package models

import "time"

const (
	CustomerStatusActive    = "active"
	CustomerStatusInactive  = "inactive"
	CustomerStatusSuspended = "suspended"
	CustomerStatusDeleted   = "deleted"
)

// Customer holds identity and KYC fields plus the cached totalSavings
// aggregate. Aadhaar and PAN numbers are KMS-encrypted before they reach
// Firestore and decrypted on read.
type Customer struct {
	ID          string    `firestore:"id" json:"id"`
	CustomerID  string    `firestore:"customerId" json:"customerId"`
	Name        string    `firestore:"name" json:"name"`
	Gender      string    `firestore:"gender" json:"gender"`
	DateOfBirth time.Time `firestore:"dateOfBirth" json:"dateOfBirth"`
	Phone       string    `firestore:"phone" json:"phone"`
	Email       string    `firestore:"email" json:"email,omitempty"`
	Address     string    `firestore:"address" json:"address"`

	AadhaarNumber string `firestore:"aadhaarNumber" json:"aadhaarNumber"`
	PANNumber     string `firestore:"panNumber" json:"panNumber,omitempty"`

	// Blind indexes over the encrypted KYC fields, used for uniqueness
	// lookups since KMS ciphertext is not deterministic.
	AadhaarHash string `firestore:"aadhaarHash" json:"-"`
	PANHash     string `firestore:"panHash,omitempty" json:"-"`

	NomineeName     string `firestore:"nomineeName" json:"nomineeName"`
	NomineeRelation string `firestore:"nomineeRelation" json:"nomineeRelation"`
	NomineeContact  string `firestore:"nomineeContact" json:"nomineeContact"`

	CollectorID string `firestore:"collectorId" json:"collectorId,omitempty"`

	Password string `firestore:"password" json:"-"` // bcrypt hash, seeded from customerId

	Status             string     `firestore:"status" json:"status"`
	TotalSavings       float64    `firestore:"totalSavings" json:"totalSavings"`
	LastCollectionDate *time.Time `firestore:"lastCollectionDate,omitempty" json:"lastCollectionDate,omitempty"`
	TotalAccounts      int        `firestore:"totalAccounts" json:"totalAccounts"`
	ActiveAccounts     int        `firestore:"activeAccounts" json:"activeAccounts"`

	LastLogin *time.Time `firestore:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// Age derives the customer's age in whole years at the given time.
func (c *Customer) Age(now time.Time) int {
	age := now.Year() - c.DateOfBirth.Year()
	anniversary := c.DateOfBirth.AddDate(age, 0, 0)
	if anniversary.After(now) {
		age--
	}
	return age
}
