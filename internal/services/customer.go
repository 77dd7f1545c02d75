package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/credentials"
	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

const dateLayout = "2006-01-02"

// customerStore is the Firestore storage interface for customers.
type customerStore interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context, filter dto.CustomerListFilter) ([]*models.Customer, int, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id string) error
	FieldExists(ctx context.Context, field, value, excludeID string) (bool, error)
}

// customerAccountStore answers whether a customer still holds accounts.
type customerAccountStore interface {
	HasActiveAccount(ctx context.Context, customerID string) (bool, error)
}

type customerService struct {
	store    customerStore
	accounts customerAccountStore
}

func NewCustomerService(store customerStore, accounts customerAccountStore) *customerService {
	return &customerService{store: store, accounts: accounts}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*models.Customer, error) {
	if req.CustomerID == "" || req.Name == "" || req.Phone == "" || req.AadhaarNumber == "" {
		return nil, errs.NewValidationError("customerId, name, phone and aadhaarNumber are required")
	}
	if req.NomineeName == "" || req.NomineeRelation == "" || req.NomineeContact == "" {
		return nil, errs.NewValidationError("Nominee details are required")
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, errs.NewValidationError("dateOfBirth must be YYYY-MM-DD")
	}

	now := time.Now()
	c := &models.Customer{
		ID:              uuid.New().String(),
		CustomerID:      req.CustomerID,
		Name:            req.Name,
		Gender:          req.Gender,
		DateOfBirth:     dob,
		Phone:           req.Phone,
		Email:           strings.ToLower(req.Email),
		Address:         req.Address,
		AadhaarNumber:   req.AadhaarNumber,
		PANNumber:       req.PANNumber,
		NomineeName:     req.NomineeName,
		NomineeRelation: req.NomineeRelation,
		NomineeContact:  req.NomineeContact,
		CollectorID:     req.CollectorID,
		Status:          models.CustomerStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if c.Age(now) < 18 {
		return nil, errs.NewValidationError("Customer must be at least 18 years old")
	}

	for _, probe := range []struct{ field, value, message string }{
		{"customerId", req.CustomerID, "Customer ID already exists"},
		{"phone", req.Phone, "Phone number already registered"},
		{"aadhaarNumber", req.AadhaarNumber, "Aadhaar number already registered"},
	} {
		taken, err := s.store.FieldExists(ctx, probe.field, probe.value, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewAlreadyExistsError(probe.message)
		}
	}
	if req.Email != "" {
		taken, err := s.store.FieldExists(ctx, "email", c.Email, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewAlreadyExistsError("Email already registered")
		}
	}

	// the login password starts out as the customer ID
	hash, err := credentials.Hash(req.CustomerID)
	if err != nil {
		return nil, errs.NewEncryptionError("hash password")
	}
	c.Password = hash

	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.Get(ctx, id)
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerListFilter) ([]*models.Customer, int, error) {
	return s.store.List(ctx, filter)
}

func (s *customerService) Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*models.Customer, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, probe := range []struct {
		field, message string
		requested      *string
		current        string
	}{
		{"customerId", "Customer ID already exists", req.CustomerID, c.CustomerID},
		{"phone", "Phone number already registered", req.Phone, c.Phone},
		{"email", "Email already registered", req.Email, c.Email},
		{"aadhaarNumber", "Aadhaar number already registered", req.AadhaarNumber, c.AadhaarNumber},
	} {
		if probe.requested == nil || *probe.requested == probe.current || *probe.requested == "" {
			continue
		}
		taken, err := s.store.FieldExists(ctx, probe.field, *probe.requested, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewAlreadyExistsError(probe.message)
		}
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&c.CustomerID, req.CustomerID)
	apply(&c.Name, req.Name)
	apply(&c.Phone, req.Phone)
	apply(&c.Address, req.Address)
	apply(&c.AadhaarNumber, req.AadhaarNumber)
	apply(&c.PANNumber, req.PANNumber)
	apply(&c.CollectorID, req.CollectorID)
	apply(&c.NomineeName, req.NomineeName)
	apply(&c.NomineeRelation, req.NomineeRelation)
	apply(&c.NomineeContact, req.NomineeContact)
	if req.Email != nil {
		c.Email = strings.ToLower(*req.Email)
	}
	if req.Status != nil {
		switch *req.Status {
		case models.CustomerStatusActive, models.CustomerStatusInactive, models.CustomerStatusSuspended:
			c.Status = *req.Status
		default:
			return nil, errs.NewValidationError("Invalid status")
		}
	}

	c.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SoftDelete marks the customer deleted so default listings skip them; the
// record and its history stay queryable.
func (s *customerService) SoftDelete(ctx context.Context, id string) (*dto.DeletedCustomer, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	active, err := s.accounts.HasActiveAccount(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, errs.NewBusinessRuleError("Cannot delete customer with active accounts")
	}

	c.Status = models.CustomerStatusDeleted
	c.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.DeletedCustomer{CustomerID: c.CustomerID, CustomerName: c.Name}, nil
}

// HardDelete removes the document entirely.
func (s *customerService) HardDelete(ctx context.Context, id string) (*dto.DeletedCustomer, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	active, err := s.accounts.HasActiveAccount(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, errs.NewBusinessRuleError("Cannot delete customer with active accounts")
	}

	if err := s.store.Delete(ctx, c.ID); err != nil {
		return nil, err
	}
	return &dto.DeletedCustomer{CustomerID: c.CustomerID, CustomerName: c.Name}, nil
}

// UpdateSavings adjusts the cached totalSavings aggregate directly. This is
// an admin correction tool and does not touch any account ledger.
func (s *customerService) UpdateSavings(ctx context.Context, id string, req dto.UpdateSavingsRequest) (*dto.SavingsChange, error) {
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("Amount must be positive")
	}
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := c.TotalSavings
	switch req.Type {
	case "add":
		c.TotalSavings = previous + req.Amount
	case "subtract":
		if req.Amount > previous {
			return nil, errs.NewBusinessRuleError("Insufficient savings balance")
		}
		c.TotalSavings = previous - req.Amount
	default:
		return nil, errs.NewValidationError("Type must be add or subtract")
	}

	c.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.SavingsChange{
		CustomerID:      c.CustomerID,
		Name:            c.Name,
		PreviousSavings: previous,
		NewSavings:      c.TotalSavings,
		Operation:       req.Type,
	}, nil
}
