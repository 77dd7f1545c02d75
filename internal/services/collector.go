package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// collectorStore is the Firestore storage interface for collectors.
type collectorStore interface {
	Create(ctx context.Context, c *models.Collector) error
	Get(ctx context.Context, id string) (*models.Collector, error)
	List(ctx context.Context) ([]*models.Collector, error)
	Update(ctx context.Context, c *models.Collector) error
	Delete(ctx context.Context, id string) error
	FieldExists(ctx context.Context, field, value, excludeID string) (bool, error)
}

// collectorCustomerLister lists a collector's assigned customers.
type collectorCustomerLister interface {
	List(ctx context.Context, filter dto.CustomerListFilter) ([]*models.Customer, int, error)
}

type collectorService struct {
	store     collectorStore
	customers collectorCustomerLister
}

func NewCollectorService(store collectorStore, customers collectorCustomerLister) *collectorService {
	return &collectorService{store: store, customers: customers}
}

func (s *collectorService) Create(ctx context.Context, req dto.CreateCollectorRequest) (*models.Collector, error) {
	if req.CollectorID == "" || req.Name == "" || req.Email == "" || req.Phone == "" {
		return nil, errs.NewValidationError("collectorId, name, email and phone are required")
	}

	for _, probe := range []struct{ field, value, message string }{
		{"collectorId", req.CollectorID, "Collector ID already exists"},
		{"email", strings.ToLower(req.Email), "Email already registered"},
		{"phone", req.Phone, "Phone number already registered"},
	} {
		taken, err := s.store.FieldExists(ctx, probe.field, probe.value, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.NewAlreadyExistsError(probe.message)
		}
	}

	now := time.Now()
	c := &models.Collector{
		ID:          uuid.New().String(),
		CollectorID: req.CollectorID,
		Name:        req.Name,
		Email:       strings.ToLower(req.Email),
		Phone:       req.Phone,
		Password:    req.Phone, // phone doubles as the initial password
		Address:     req.Address,
		Area:        req.Area,
		JoinDate:    now,
		Status:      models.CollectorStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *collectorService) Get(ctx context.Context, id string) (*models.Collector, error) {
	return s.store.Get(ctx, id)
}

func (s *collectorService) List(ctx context.Context) ([]*models.Collector, error) {
	return s.store.List(ctx)
}

func (s *collectorService) Update(ctx context.Context, id string, req dto.UpdateCollectorRequest) (*models.Collector, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, probe := range []struct {
		field, message string
		requested      *string
		current        string
	}{
		{"collectorId", "Collector ID already exists", req.CollectorID, c.CollectorID},
		{"email", "Email already registered", req.Email, c.Email},
		{"phone", "Phone number already registered", req.Phone, c.Phone},
	} {
		if probe.requested == nil || *probe.requested == probe.current {
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

	if req.CollectorID != nil {
		c.CollectorID = *req.CollectorID
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = strings.ToLower(*req.Email)
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
		c.Password = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Area != nil {
		c.Area = *req.Area
	}
	if req.Status != nil {
		switch *req.Status {
		case models.CollectorStatusActive, models.CollectorStatusInactive:
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

func (s *collectorService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	_, total, err := s.customers.List(ctx, dto.CustomerListFilter{
		CollectorID: id,
		Page:        dto.PageQuery{Page: 1, Limit: 1},
	})
	if err != nil {
		return err
	}
	if total > 0 {
		return errs.NewBusinessRuleError("Cannot delete collector with assigned customers")
	}
	return s.store.Delete(ctx, id)
}

// Customers lists the customers assigned to a collector.
func (s *collectorService) Customers(ctx context.Context, id string, page dto.PageQuery) ([]*models.Customer, int, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.customers.List(ctx, dto.CustomerListFilter{CollectorID: id, Page: page})
}

// Stats summarizes a collector's book: customer counts and pooled savings.
func (s *collectorService) Stats(ctx context.Context, id string) (*dto.CollectorStats, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	customers, total, err := s.customers.List(ctx, dto.CustomerListFilter{
		CollectorID: id,
		Page:        dto.PageQuery{Page: 1, Limit: 10000},
	})
	if err != nil {
		return nil, err
	}

	stats := &dto.CollectorStats{Collector: c.Name, TotalCustomers: total}
	for _, cust := range customers {
		if cust.Status == models.CustomerStatusActive {
			stats.ActiveCustomers++
		}
		stats.TotalSavings += cust.TotalSavings
	}
	return stats, nil
}
