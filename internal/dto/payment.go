package dto

type ProcessPaymentRequest struct {
	AccountID     string  `json:"accountId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
}

type UpdatePaymentStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
}

type PaymentListFilter struct {
	AccountID   string
	CustomerID  string
	CollectorID string
	Status      string
	Type        string
	Page        PageQuery
}

type PaymentStats struct {
	TotalPayments     int     `json:"totalPayments"`
	PendingPayments   int     `json:"pendingPayments"`
	CompletedPayments int     `json:"completedPayments"`
	FailedPayments    int     `json:"failedPayments"`
	TotalCollected    float64 `json:"totalCollected"`
	TodayCollected    float64 `json:"todayCollected"`
}
