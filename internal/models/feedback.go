package models

import "time"

const (
	FeedbackStatusOpen       = "open"
	FeedbackStatusInProgress = "in_progress"
	FeedbackStatusResolved   = "resolved"
	FeedbackStatusClosed     = "closed"

	FeedbackPriorityLow      = "low"
	FeedbackPriorityMedium   = "medium"
	FeedbackPriorityHigh     = "high"
	FeedbackPriorityCritical = "critical"
)

type FeedbackResponse struct {
	Message     string     `firestore:"message" json:"message,omitempty"`
	RespondedBy string     `firestore:"respondedBy" json:"respondedBy,omitempty"`
	RespondedAt *time.Time `firestore:"respondedAt,omitempty" json:"respondedAt,omitempty"`
}

// Feedback is a customer support ticket. Priority is derived from rating:
// 1-2 high, 3 medium, 4-5 low.
type Feedback struct {
	ID         string `firestore:"id" json:"id"`
	CustomerID string `firestore:"customerId" json:"customerId"`

	Type    string `firestore:"type" json:"type"`
	Subject string `firestore:"subject" json:"subject"`
	Message string `firestore:"message" json:"message"`
	Rating  int    `firestore:"rating" json:"rating"`
	Email   string `firestore:"email" json:"email,omitempty"`

	Status     string `firestore:"status" json:"status"`
	Priority   string `firestore:"priority" json:"priority"`
	AssignedTo string `firestore:"assignedTo" json:"assignedTo,omitempty"`

	Response *FeedbackResponse `firestore:"response,omitempty" json:"response,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// PriorityForRating maps a 1-5 rating onto a ticket priority.
func PriorityForRating(rating int) string {
	switch {
	case rating <= 2:
		return FeedbackPriorityHigh
	case rating == 3:
		return FeedbackPriorityMedium
	default:
		return FeedbackPriorityLow
	}
}

const (
	CollectorFeedbackStatusPending     = "pending"
	CollectorFeedbackStatusReviewed    = "reviewed"
	CollectorFeedbackStatusActionTaken = "action_taken"
	CollectorFeedbackStatusResolved    = "resolved"
)

// CollectorFeedback is submitted by a collector, optionally about a
// colleague, and reviewed by admins.
type CollectorFeedback struct {
	ID             string `firestore:"id" json:"id"`
	SubmittedBy    string `firestore:"submittedBy" json:"submittedBy"`
	AboutCollector string `firestore:"aboutCollector" json:"aboutCollector,omitempty"`

	Message  string `firestore:"message" json:"message"`
	Rating   int    `firestore:"rating" json:"rating"`
	Category string `firestore:"category" json:"category"`

	Status     string `firestore:"status" json:"status"`
	AdminNotes string `firestore:"adminNotes" json:"adminNotes,omitempty"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
