package models

import "time"

const (
	PlanTypeDaily   = "daily"
	PlanTypeWeekly  = "weekly"
	PlanTypeMonthly = "monthly"

	PlanStatusActive   = "active"
	PlanStatusInactive = "inactive"
	PlanStatusArchived = "archived"
)

type Plan struct {
	ID                 string    `firestore:"id" json:"id"`
	PlanID             string    `firestore:"planId" json:"planId"`
	Name               string    `firestore:"name" json:"name"`
	Description        string    `firestore:"description" json:"description,omitempty"`
	Type               string    `firestore:"type" json:"type"`
	Amount             float64   `firestore:"amount" json:"amount"`
	Duration           int       `firestore:"duration" json:"duration"`
	InterestRate       float64   `firestore:"interestRate" json:"interestRate"`
	MinAmount          float64   `firestore:"minAmount" json:"minAmount"`
	MaxAmount          float64   `firestore:"maxAmount" json:"maxAmount,omitempty"`
	Status             string    `firestore:"status" json:"status"`
	Features           []string  `firestore:"features" json:"features,omitempty"`
	TermsAndConditions string    `firestore:"termsAndConditions" json:"termsAndConditions,omitempty"`
	TotalSubscribers   int64     `firestore:"totalSubscribers" json:"totalSubscribers"`
	TotalCollections   int64     `firestore:"totalCollections" json:"totalCollections"`
	CreatedBy          string    `firestore:"createdBy" json:"createdBy,omitempty"`
	CreatedAt          time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `firestore:"updatedAt" json:"updatedAt"`
}
