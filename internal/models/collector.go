package models

import "time"

const (
	CollectorStatusActive   = "active"
	CollectorStatusInactive = "inactive"
)

// Collector is a field agent who records customer deposits and withdrawals.
// Password is kept equal to the phone number; changing one changes the other.
type Collector struct {
	ID               string     `firestore:"id" json:"id"`
	CollectorID      string     `firestore:"collectorId" json:"collectorId"`
	Name             string     `firestore:"name" json:"name"`
	Email            string     `firestore:"email" json:"email"`
	Phone            string     `firestore:"phone" json:"phone"`
	Password         string     `firestore:"password" json:"-"`
	Address          string     `firestore:"address" json:"address"`
	Area             string     `firestore:"area" json:"area"`
	JoinDate         time.Time  `firestore:"joinDate" json:"joinDate"`
	Status           string     `firestore:"status" json:"status"`
	TotalCustomers   int        `firestore:"totalCustomers" json:"totalCustomers"`
	TotalCollections int64      `firestore:"totalCollections" json:"totalCollections"`
	LastLogin        *time.Time `firestore:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt        time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `firestore:"updatedAt" json:"updatedAt"`
}
