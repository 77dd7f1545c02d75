package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swasthikkulal/pigmy-backend/internal/credentials"
	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
	"github.com/swasthikkulal/pigmy-backend/internal/token"
)

// --- Fakes ---

type fakeAdminStore struct {
	admins map[string]*models.Admin
}

func (f *fakeAdminStore) Create(_ context.Context, a *models.Admin) error {
	f.admins[a.ID] = a
	return nil
}

func (f *fakeAdminStore) Get(_ context.Context, id string) (*models.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return nil, errs.NewNotFoundError("Admin not found")
	}
	return a, nil
}

func (f *fakeAdminStore) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, errs.NewNotFoundError("Admin not found")
}

func (f *fakeAdminStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

type fakeCollectorAuthStore struct {
	collectors map[string]*models.Collector
}

func (f *fakeCollectorAuthStore) Get(_ context.Context, id string) (*models.Collector, error) {
	c, ok := f.collectors[id]
	if !ok {
		return nil, errs.NewNotFoundError("Collector not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCollectorAuthStore) GetByEmailOrPhone(_ context.Context, username string) (*models.Collector, error) {
	for _, c := range f.collectors {
		if c.Email == username || c.Phone == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errs.NewNotFoundError("Collector not found")
}

func (f *fakeCollectorAuthStore) Update(_ context.Context, c *models.Collector) error {
	f.collectors[c.ID] = c
	return nil
}

func (f *fakeCollectorAuthStore) FieldExists(_ context.Context, field, value, excludeID string) (bool, error) {
	for id, c := range f.collectors {
		if id == excludeID {
			continue
		}
		switch field {
		case "email":
			if c.Email == value {
				return true, nil
			}
		case "phone":
			if c.Phone == value {
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeCustomerAuthStore struct {
	customers map[string]*models.Customer
}

func (f *fakeCustomerAuthStore) Get(_ context.Context, id string) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, errs.NewNotFoundError("Customer not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerAuthStore) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errs.NewNotFoundError("Customer not found")
}

func (f *fakeCustomerAuthStore) Update(_ context.Context, c *models.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func newAuthFixture() (*authService, *fakeAdminStore, *fakeCollectorAuthStore, *fakeCustomerAuthStore, *token.Issuer) {
	admins := &fakeAdminStore{admins: make(map[string]*models.Admin)}
	collectors := &fakeCollectorAuthStore{collectors: make(map[string]*models.Collector)}
	customers := &fakeCustomerAuthStore{customers: make(map[string]*models.Customer)}
	tokens := token.NewIssuer("test-secret", time.Hour)
	svc := NewAuthService(admins, collectors, customers, tokens)
	return svc, admins, collectors, customers, tokens
}

// --- Admin ---

func TestRegisterAdmin_ThenLogin(t *testing.T) {
	svc, _, _, _, tokens := newAuthFixture()
	ctx := context.Background()

	admin, err := svc.RegisterAdmin(ctx, dto.RegisterAdminRequest{
		Name: "Admin", Email: "Admin@Example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if admin.Email != "admin@example.com" {
		t.Errorf("email not lowercased: %q", admin.Email)
	}
	if admin.Password == "s3cret" {
		t.Error("password stored in plaintext")
	}

	res, err := svc.LoginAdmin(ctx, dto.AdminLoginRequest{Email: "admin@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.Validate(res.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != token.RoleAdmin || claims.Subject != admin.ID {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginAdmin_WrongPassword(t *testing.T) {
	svc, _, _, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.RegisterAdmin(ctx, dto.RegisterAdminRequest{
		Name: "Admin", Email: "a@b.com", Password: "right",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.LoginAdmin(ctx, dto.AdminLoginRequest{Email: "a@b.com", Password: "wrong"})
	var ue *errs.UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnauthorizedError, got %T: %v", err, err)
	}
}

func TestRegisterAdmin_DuplicateEmail(t *testing.T) {
	svc, _, _, _, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.RegisterAdmin(ctx, dto.RegisterAdminRequest{Name: "A", Email: "a@b.com", Password: "x1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.RegisterAdmin(ctx, dto.RegisterAdminRequest{Name: "B", Email: "a@b.com", Password: "x2"})
	var ae *errs.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %T: %v", err, err)
	}
}

// --- Collector ---

func TestLoginCollector_PhoneIsPassword(t *testing.T) {
	svc, _, collectors, _, tokens := newAuthFixture()
	ctx := context.Background()

	collectors.collectors["c1"] = &models.Collector{
		ID: "c1", Email: "meera@pigmy.in", Phone: "9876543210",
		Password: "9876543210", Status: models.CollectorStatusActive,
	}

	// login by email
	res, err := svc.LoginCollector(ctx, dto.CollectorLoginRequest{Username: "meera@pigmy.in", Password: "9876543210"})
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	claims, err := tokens.Validate(res.Token)
	if err != nil || claims.Role != token.RoleCollector {
		t.Fatalf("claims = %+v, err %v", claims, err)
	}

	// login by phone
	if _, err := svc.LoginCollector(ctx, dto.CollectorLoginRequest{Username: "9876543210", Password: "9876543210"}); err != nil {
		t.Fatalf("login by phone: %v", err)
	}

	// wrong password
	_, err = svc.LoginCollector(ctx, dto.CollectorLoginRequest{Username: "meera@pigmy.in", Password: "nope"})
	var ue *errs.UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnauthorizedError, got %T: %v", err, err)
	}
}

func TestChangeCollectorPassword_RotatesPhone(t *testing.T) {
	svc, _, collectors, _, _ := newAuthFixture()
	ctx := context.Background()

	collectors.collectors["c1"] = &models.Collector{
		ID: "c1", Email: "meera@pigmy.in", Phone: "9876543210",
		Password: "9876543210", Status: models.CollectorStatusActive,
	}

	c, err := svc.ChangeCollectorPassword(ctx, "c1", dto.ChangePasswordRequest{
		CurrentPassword: "9876543210", NewPassword: "9999999999",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	if c.Phone != "9999999999" || c.Password != "9999999999" {
		t.Errorf("phone/password not rotated together: %q / %q", c.Phone, c.Password)
	}
}

func TestUpdateCollectorProfile_PhoneRotatesPassword(t *testing.T) {
	svc, _, collectors, _, _ := newAuthFixture()
	ctx := context.Background()

	collectors.collectors["c1"] = &models.Collector{
		ID: "c1", Email: "meera@pigmy.in", Phone: "9876543210",
		Password: "9876543210", Status: models.CollectorStatusActive,
	}
	phone := "8888888888"
	c, err := svc.UpdateCollectorProfile(ctx, "c1", dto.UpdateCollectorProfileRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if c.Password != phone {
		t.Errorf("password did not follow phone: %q", c.Password)
	}
}

// --- Customer ---

func TestLoginCustomer_SeededPassword(t *testing.T) {
	svc, _, _, customers, _ := newAuthFixture()
	ctx := context.Background()

	hash, err := credentials.Hash("CUST001")
	if err != nil {
		t.Fatal(err)
	}
	customers.customers["u1"] = &models.Customer{
		ID: "u1", CustomerID: "CUST001", Email: "r@pigmy.in",
		Password: hash, Status: models.CustomerStatusActive,
	}

	res, err := svc.LoginCustomer(ctx, dto.CustomerLoginRequest{Email: "r@pigmy.in", Password: "CUST001"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" {
		t.Error("empty token")
	}
}

func TestLoginCustomer_DeletedRejected(t *testing.T) {
	svc, _, _, customers, _ := newAuthFixture()
	ctx := context.Background()

	hash, _ := credentials.Hash("CUST001")
	customers.customers["u1"] = &models.Customer{
		ID: "u1", Email: "r@pigmy.in", Password: hash,
		Status: models.CustomerStatusDeleted,
	}

	_, err := svc.LoginCustomer(ctx, dto.CustomerLoginRequest{Email: "r@pigmy.in", Password: "CUST001"})
	var ue *errs.UnauthorizedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnauthorizedError, got %T: %v", err, err)
	}
}

func TestChangeCustomerPassword(t *testing.T) {
	svc, _, _, customers, _ := newAuthFixture()
	ctx := context.Background()

	hash, _ := credentials.Hash("CUST001")
	customers.customers["u1"] = &models.Customer{
		ID: "u1", Email: "r@pigmy.in", Password: hash,
		Status: models.CustomerStatusActive,
	}

	if err := svc.ChangeCustomerPassword(ctx, "u1", dto.ChangePasswordRequest{
		CurrentPassword: "CUST001", NewPassword: "newpass",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.LoginCustomer(ctx, dto.CustomerLoginRequest{Email: "r@pigmy.in", Password: "newpass"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.LoginCustomer(ctx, dto.CustomerLoginRequest{Email: "r@pigmy.in", Password: "CUST001"}); err == nil {
		t.Error("old password still accepted")
	}
}
