package dto

type CreateCustomerRequest struct {
	CustomerID  string `json:"customerId"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address"`

	AadhaarNumber string `json:"aadhaarNumber"`
	PANNumber     string `json:"panNumber,omitempty"`

	NomineeName     string `json:"nomineeName"`
	NomineeRelation string `json:"nomineeRelation"`
	NomineeContact  string `json:"nomineeContact"`

	CollectorID string `json:"collectorId,omitempty"`
}

type UpdateCustomerRequest struct {
	CustomerID    *string `json:"customerId,omitempty"`
	Name          *string `json:"name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Address       *string `json:"address,omitempty"`
	AadhaarNumber *string `json:"aadhaarNumber,omitempty"`
	PANNumber     *string `json:"panNumber,omitempty"`
	CollectorID   *string `json:"collectorId,omitempty"`
	Status        *string `json:"status,omitempty"`

	NomineeName     *string `json:"nomineeName,omitempty"`
	NomineeRelation *string `json:"nomineeRelation,omitempty"`
	NomineeContact  *string `json:"nomineeContact,omitempty"`
}

type UpdateSavingsRequest struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"` // "add" or "subtract"
}

type SavingsChange struct {
	CustomerID      string  `json:"customerId"`
	Name            string  `json:"name"`
	PreviousSavings float64 `json:"previousSavings"`
	NewSavings      float64 `json:"newSavings"`
	Operation       string  `json:"operation"`
}

type CustomerListFilter struct {
	Status         string
	IncludeDeleted bool
	CollectorID    string
	Page           PageQuery
}

type DeletedCustomer struct {
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
}
