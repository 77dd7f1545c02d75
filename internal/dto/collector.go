package dto

type CreateCollectorRequest struct {
	CollectorID string `json:"collectorId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Area        string `json:"area"`
}

type UpdateCollectorRequest struct {
	CollectorID *string `json:"collectorId,omitempty"`
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Area        *string `json:"area,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type CollectorStats struct {
	Collector       string  `json:"collector"`
	TotalCustomers  int     `json:"totalCustomers"`
	ActiveCustomers int     `json:"activeCustomers"`
	TotalSavings    float64 `json:"totalSavings"`
}
