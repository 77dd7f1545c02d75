package dto

type GenerateStatementRequest struct {
	AccountID string `json:"accountId"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate"`   // YYYY-MM-DD
	Type      string `json:"type"`
}

type StatementListFilter struct {
	AccountID  string
	CustomerID string
	Type       string
	Page       PageQuery
}
