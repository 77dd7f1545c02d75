package dto

type CreateFeedbackRequest struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
	Email   string `json:"email,omitempty"`
}

type UpdateFeedbackStatusRequest struct {
	Status          string `json:"status"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}

type FeedbackListFilter struct {
	Status   string
	Type     string
	Priority string
	Page     PageQuery
}

type FeedbackOverview struct {
	Total         int            `json:"total"`
	Open          int            `json:"open"`
	Resolved      int            `json:"resolved"`
	AverageRating float64        `json:"averageRating"`
	ByPriority    map[string]int `json:"byPriority"`
}

type CreateCollectorFeedbackRequest struct {
	AboutCollector string `json:"aboutCollector,omitempty"`
	Message        string `json:"message"`
	Rating         int    `json:"rating"`
	Category       string `json:"category,omitempty"`
}

type UpdateCollectorFeedbackStatusRequest struct {
	Status string `json:"status"`
}

type CollectorFeedbackNotesRequest struct {
	AdminNotes string `json:"adminNotes"`
}
