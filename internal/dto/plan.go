package dto

type CreatePlanRequest struct {
	PlanID             string   `json:"planId"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	Type               string   `json:"type"`
	Amount             float64  `json:"amount"`
	Duration           int      `json:"duration"`
	InterestRate       float64  `json:"interestRate"`
	MinAmount          float64  `json:"minAmount,omitempty"`
	MaxAmount          float64  `json:"maxAmount,omitempty"`
	Features           []string `json:"features,omitempty"`
	TermsAndConditions string   `json:"termsAndConditions,omitempty"`
}

type UpdatePlanRequest struct {
	Name               *string  `json:"name,omitempty"`
	Description        *string  `json:"description,omitempty"`
	Amount             *float64 `json:"amount,omitempty"`
	Duration           *int     `json:"duration,omitempty"`
	InterestRate       *float64 `json:"interestRate,omitempty"`
	MinAmount          *float64 `json:"minAmount,omitempty"`
	MaxAmount          *float64 `json:"maxAmount,omitempty"`
	Features           []string `json:"features,omitempty"`
	TermsAndConditions *string  `json:"termsAndConditions,omitempty"`
}

type UpdatePlanStatusRequest struct {
	Status string `json:"status"`
}

type CalculateMaturityRequest struct {
	CustomAmount   float64 `json:"customAmount,omitempty"`
	CustomDuration int     `json:"customDuration,omitempty"`
}

type MaturityCalculation struct {
	Plan            string  `json:"plan"`
	Amount          float64 `json:"amount"`
	Duration        int     `json:"duration"`
	InterestRate    float64 `json:"interestRate"`
	TotalInvestment float64 `json:"totalInvestment"`
	Interest        float64 `json:"interest"`
	MaturityAmount  float64 `json:"maturityAmount"`
}

type PlanStats struct {
	TotalPlans       int     `json:"totalPlans"`
	ActivePlans      int     `json:"activePlans"`
	TotalSubscribers int64   `json:"totalSubscribers"`
	TotalCollections float64 `json:"totalCollections"`
}
