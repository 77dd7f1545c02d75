package services

import (
	"context"
	"errors"
	"testing"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// --- Fakes ---

type fakeCustomerStore struct {
	customers map[string]*models.Customer
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: make(map[string]*models.Customer)}
}

func (f *fakeCustomerStore) Create(_ context.Context, c *models.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerStore) Get(_ context.Context, id string) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, errs.NewNotFoundError("Customer not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerStore) List(_ context.Context, filter dto.CustomerListFilter) ([]*models.Customer, int, error) {
	out := make([]*models.Customer, 0)
	for _, c := range f.customers {
		if !filter.IncludeDeleted && c.Status == models.CustomerStatusDeleted {
			continue
		}
		if filter.CollectorID != "" && c.CollectorID != filter.CollectorID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeCustomerStore) Update(_ context.Context, c *models.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerStore) Delete(_ context.Context, id string) error {
	if _, ok := f.customers[id]; !ok {
		return errs.NewNotFoundError("Customer not found")
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerStore) FieldExists(_ context.Context, field, value, excludeID string) (bool, error) {
	for id, c := range f.customers {
		if id == excludeID {
			continue
		}
		var have string
		switch field {
		case "customerId":
			have = c.CustomerID
		case "phone":
			have = c.Phone
		case "email":
			have = c.Email
		case "aadhaarNumber":
			have = c.AadhaarNumber
		}
		if have != "" && have == value {
			return true, nil
		}
	}
	return false, nil
}

type fakeActiveAccountCheck struct {
	active map[string]bool
}

func (f *fakeActiveAccountCheck) HasActiveAccount(_ context.Context, customerID string) (bool, error) {
	return f.active[customerID], nil
}

func validCustomerRequest() dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{
		CustomerID:      "CUST001",
		Name:            "Raghav",
		Gender:          "male",
		DateOfBirth:     "1990-06-01",
		Phone:           "9876543210",
		Email:           "raghav@example.com",
		Address:         "Mangalore",
		AadhaarNumber:   "123412341234",
		NomineeName:     "Sita",
		NomineeRelation: "spouse",
		NomineeContact:  "9876543211",
	}
}

func newCustomerFixture() (*customerService, *fakeCustomerStore, *fakeActiveAccountCheck) {
	store := newFakeCustomerStore()
	accounts := &fakeActiveAccountCheck{active: make(map[string]bool)}
	return NewCustomerService(store, accounts), store, accounts
}

// --- Create ---

func TestCreateCustomer_OK(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	c, err := svc.Create(context.Background(), validCustomerRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Status != models.CustomerStatusActive {
		t.Errorf("status = %q", c.Status)
	}
	if c.Password == "" || c.Password == "CUST001" {
		t.Error("password not seeded as a hash of the customer ID")
	}
}

func TestCreateCustomer_Underage(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	req := validCustomerRequest()
	req.DateOfBirth = "2015-06-01"
	_, err := svc.Create(context.Background(), req)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestCreateCustomer_DuplicateAadhaar(t *testing.T) {
	svc, _, _ := newCustomerFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCustomerRequest()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	req := validCustomerRequest()
	req.CustomerID = "CUST002"
	req.Phone = "9000000000"
	req.Email = "other@example.com"
	_, err := svc.Create(ctx, req)
	var ae *errs.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %T: %v", err, err)
	}
}

func TestCreateCustomer_MissingNominee(t *testing.T) {
	svc, _, _ := newCustomerFixture()

	req := validCustomerRequest()
	req.NomineeName = ""
	_, err := svc.Create(context.Background(), req)
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

// --- Delete ---

func TestSoftDeleteCustomer_ExcludedFromDefaultList(t *testing.T) {
	svc, store, _ := newCustomerFixture()
	ctx := context.Background()

	c, err := svc.Create(ctx, validCustomerRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SoftDelete(ctx, c.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if store.customers[c.ID].Status != models.CustomerStatusDeleted {
		t.Error("status not marked deleted")
	}

	visible, _, _ := svc.List(ctx, dto.CustomerListFilter{})
	if len(visible) != 0 {
		t.Errorf("deleted customer still listed: %d", len(visible))
	}
	all, _, _ := svc.List(ctx, dto.CustomerListFilter{IncludeDeleted: true})
	if len(all) != 1 {
		t.Errorf("includeDeleted did not surface the customer: %d", len(all))
	}
}

func TestDeleteCustomer_ActiveAccountsBlock(t *testing.T) {
	svc, _, accounts := newCustomerFixture()
	ctx := context.Background()

	c, err := svc.Create(ctx, validCustomerRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	accounts.active[c.ID] = true

	_, err = svc.SoftDelete(ctx, c.ID)
	var be *errs.BusinessRuleError
	if !errors.As(err, &be) {
		t.Fatalf("soft delete: expected BusinessRuleError, got %T: %v", err, err)
	}
	_, err = svc.HardDelete(ctx, c.ID)
	if !errors.As(err, &be) {
		t.Fatalf("hard delete: expected BusinessRuleError, got %T: %v", err, err)
	}
}

// --- Savings ---

func TestUpdateSavings(t *testing.T) {
	svc, store, _ := newCustomerFixture()
	ctx := context.Background()

	c, err := svc.Create(ctx, validCustomerRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	change, err := svc.UpdateSavings(ctx, c.ID, dto.UpdateSavingsRequest{Amount: 500, Type: "add"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if change.NewSavings != 500 {
		t.Errorf("newSavings = %v", change.NewSavings)
	}

	if _, err := svc.UpdateSavings(ctx, c.ID, dto.UpdateSavingsRequest{Amount: 200, Type: "subtract"}); err != nil {
		t.Fatalf("subtract: %v", err)
	}
	if store.customers[c.ID].TotalSavings != 300 {
		t.Errorf("savings = %v, want 300", store.customers[c.ID].TotalSavings)
	}

	_, err = svc.UpdateSavings(ctx, c.ID, dto.UpdateSavingsRequest{Amount: 1000, Type: "subtract"})
	var be *errs.BusinessRuleError
	if !errors.As(err, &be) {
		t.Fatalf("expected BusinessRuleError, got %T: %v", err, err)
	}

	_, err = svc.UpdateSavings(ctx, c.ID, dto.UpdateSavingsRequest{Amount: 100, Type: "multiply"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
