package dto

type CreateWithdrawalRequest struct {
	AccountID string  `json:"accountId"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

// WithdrawalDecisionRequest carries the optional remark recorded with an
// approval or rejection.
type WithdrawalDecisionRequest struct {
	Remarks string `json:"remarks,omitempty"`
}

type UpdateWithdrawalStatusRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks,omitempty"`
}

type WithdrawalListFilter struct {
	CustomerID string
	Status     string
	Page       PageQuery
}

type WithdrawalStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Today    int `json:"today"`
}
