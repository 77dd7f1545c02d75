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
	"github.com/swasthikkulal/pigmy-backend/internal/token"
)

// authAdminStore is the admin storage interface used by authService.
type authAdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	Get(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// authCollectorStore resolves collectors for login and profile updates.
type authCollectorStore interface {
	Get(ctx context.Context, id string) (*models.Collector, error)
	GetByEmailOrPhone(ctx context.Context, username string) (*models.Collector, error)
	Update(ctx context.Context, c *models.Collector) error
	FieldExists(ctx context.Context, field, value, excludeID string) (bool, error)
}

// authCustomerStore resolves customers for login.
type authCustomerStore interface {
	Get(ctx context.Context, id string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
}

type authService struct {
	admins     authAdminStore
	collectors authCollectorStore
	customers  authCustomerStore
	tokens     *token.Issuer

	hashed  credentials.Verifier
	derived credentials.Verifier
}

func NewAuthService(admins authAdminStore, collectors authCollectorStore, customers authCustomerStore, tokens *token.Issuer) *authService {
	return &authService{
		admins:     admins,
		collectors: collectors,
		customers:  customers,
		tokens:     tokens,
		hashed:     credentials.HashedSecret{},
		derived:    credentials.DerivedFromField{},
	}
}

func (s *authService) RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) (*models.Admin, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, errs.NewValidationError("Name, email and password are required")
	}
	taken, err := s.admins.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewAlreadyExistsError("Admin with this email already exists")
	}

	hash, err := credentials.Hash(req.Password)
	if err != nil {
		return nil, errs.NewEncryptionError("hash password")
	}

	now := time.Now()
	admin := &models.Admin{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Password:  hash,
		Role:      models.AdminRoleAdmin,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *authService) LoginAdmin(ctx context.Context, req dto.AdminLoginRequest) (*dto.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errs.NewValidationError("Email and password are required")
	}
	admin, err := s.admins.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewUnauthorizedError("Invalid credentials")
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, errs.NewUnauthorizedError("Account is disabled")
	}
	if !s.hashed.Verify(admin.Password, req.Password) {
		return nil, errs.NewUnauthorizedError("Invalid credentials")
	}

	t, err := s.tokens.Generate(admin.ID, token.RoleAdmin)
	if err != nil {
		return nil, errs.NewEncryptionError("sign token")
	}
	return &dto.AuthResult{Token: t, Profile: admin}, nil
}

func (s *authService) LoginCollector(ctx context.Context, req dto.CollectorLoginRequest) (*dto.AuthResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errs.NewValidationError("Username and password are required")
	}
	c, err := s.collectors.GetByEmailOrPhone(ctx, req.Username)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewUnauthorizedError("Invalid credentials")
		}
		return nil, err
	}
	if c.Status != models.CollectorStatusActive {
		return nil, errs.NewUnauthorizedError("Account is disabled")
	}
	if !s.derived.Verify(c.Password, req.Password) {
		return nil, errs.NewUnauthorizedError("Invalid credentials")
	}

	now := time.Now()
	c.LastLogin = &now
	if err := s.collectors.Update(ctx, c); err != nil {
		return nil, err
	}

	t, err := s.tokens.Generate(c.ID, token.RoleCollector)
	if err != nil {
		return nil, errs.NewEncryptionError("sign token")
	}
	return &dto.AuthResult{Token: t, Profile: c}, nil
}

func (s *authService) LoginCustomer(ctx context.Context, req dto.CustomerLoginRequest) (*dto.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errs.NewValidationError("Email and password are required")
	}
	c, err := s.customers.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewUnauthorizedError("Invalid credentials")
		}
		return nil, err
	}
	if c.Status == models.CustomerStatusDeleted || c.Status == models.CustomerStatusSuspended {
		return nil, errs.NewUnauthorizedError("Account is disabled")
	}
	if !s.hashed.Verify(c.Password, req.Password) {
		return nil, errs.NewUnauthorizedError("Invalid credentials")
	}

	now := time.Now()
	c.LastLogin = &now
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}

	t, err := s.tokens.Generate(c.ID, token.RoleCustomer)
	if err != nil {
		return nil, errs.NewEncryptionError("sign token")
	}
	return &dto.AuthResult{Token: t, Profile: c}, nil
}

func (s *authService) GetAdmin(ctx context.Context, id string) (*models.Admin, error) {
	return s.admins.Get(ctx, id)
}

func (s *authService) GetCollectorProfile(ctx context.Context, id string) (*models.Collector, error) {
	return s.collectors.Get(ctx, id)
}

func (s *authService) UpdateCollectorProfile(ctx context.Context, id string, req dto.UpdateCollectorProfileRequest) (*models.Collector, error) {
	c, err := s.collectors.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != c.Email {
		taken, err := s.collectors.FieldExists(ctx, "email", *req.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewAlreadyExistsError("Email already in use")
		}
		c.Email = *req.Email
	}
	if req.Phone != nil && *req.Phone != c.Phone {
		taken, err := s.collectors.FieldExists(ctx, "phone", *req.Phone, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewAlreadyExistsError("Phone already in use")
		}
		c.Phone = *req.Phone
		// the phone doubles as the password
		c.Password = *req.Phone
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Area != nil {
		c.Area = *req.Area
	}
	if req.Address != nil {
		c.Address = *req.Address
	}

	c.UpdatedAt = time.Now()
	if err := s.collectors.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ChangeCollectorPassword rotates the collector's password, which also
// rotates the phone number since the two are kept equal.
func (s *authService) ChangeCollectorPassword(ctx context.Context, id string, req dto.ChangePasswordRequest) (*models.Collector, error) {
	if req.NewPassword == "" {
		return nil, errs.NewValidationError("New password is required")
	}
	c, err := s.collectors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.derived.Verify(c.Password, req.CurrentPassword) {
		return nil, errs.NewUnauthorizedError("Current password is incorrect")
	}

	c.Password = req.NewPassword
	c.Phone = req.NewPassword
	c.UpdatedAt = time.Now()
	if err := s.collectors.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ChangeCustomerPassword replaces the customer's seeded password with a
// chosen one.
func (s *authService) ChangeCustomerPassword(ctx context.Context, id string, req dto.ChangePasswordRequest) error {
	if req.NewPassword == "" {
		return errs.NewValidationError("New password is required")
	}
	c, err := s.customers.Get(ctx, id)
	if err != nil {
		return err
	}
	if !s.hashed.Verify(c.Password, req.CurrentPassword) {
		return errs.NewUnauthorizedError("Current password is incorrect")
	}

	hash, err := credentials.Hash(req.NewPassword)
	if err != nil {
		return errs.NewEncryptionError("hash password")
	}
	c.Password = hash
	c.UpdatedAt = time.Now()
	return s.customers.Update(ctx, c)
}
