package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// planStore is the Firestore storage interface for savings plans.
type planStore interface {
	Create(ctx context.Context, p *models.Plan) error
	Get(ctx context.Context, id string) (*models.Plan, error)
	List(ctx context.Context, status, planType string) ([]*models.Plan, error)
	Update(ctx context.Context, p *models.Plan) error
	Delete(ctx context.Context, id string) error
	PlanIDExists(ctx context.Context, planID string) (bool, error)
}

type planService struct {
	store planStore
}

func NewPlanService(store planStore) *planService {
	return &planService{store: store}
}

func validPlanType(t string) bool {
	switch t {
	case models.PlanTypeDaily, models.PlanTypeWeekly, models.PlanTypeMonthly:
		return true
	}
	return false
}

func (s *planService) Create(ctx context.Context, createdBy string, req dto.CreatePlanRequest) (*models.Plan, error) {
	if req.PlanID == "" || req.Name == "" {
		return nil, errs.NewValidationError("planId and name are required")
	}
	if !validPlanType(req.Type) {
		return nil, errs.NewValidationError("Type must be daily, weekly or monthly")
	}
	if req.Amount <= 0 || req.Duration <= 0 {
		return nil, errs.NewValidationError("Amount and duration must be positive")
	}
	if req.InterestRate < 0 {
		return nil, errs.NewValidationError("Interest rate cannot be negative")
	}
	taken, err := s.store.PlanIDExists(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewAlreadyExistsError("Plan ID already exists")
	}

	now := time.Now()
	p := &models.Plan{
		ID:                 uuid.New().String(),
		PlanID:             req.PlanID,
		Name:               req.Name,
		Description:        req.Description,
		Type:               req.Type,
		Amount:             req.Amount,
		Duration:           req.Duration,
		InterestRate:       req.InterestRate,
		MinAmount:          req.MinAmount,
		MaxAmount:          req.MaxAmount,
		Status:             models.PlanStatusActive,
		Features:           req.Features,
		TermsAndConditions: req.TermsAndConditions,
		CreatedBy:          createdBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *planService) Get(ctx context.Context, id string) (*models.Plan, error) {
	return s.store.Get(ctx, id)
}

func (s *planService) List(ctx context.Context, status, planType string) ([]*models.Plan, error) {
	return s.store.List(ctx, status, planType)
}

func (s *planService) Update(ctx context.Context, id string, req dto.UpdatePlanRequest) (*models.Plan, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, errs.NewValidationError("Amount must be positive")
		}
		p.Amount = *req.Amount
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, errs.NewValidationError("Duration must be positive")
		}
		p.Duration = *req.Duration
	}
	if req.InterestRate != nil {
		if *req.InterestRate < 0 {
			return nil, errs.NewValidationError("Interest rate cannot be negative")
		}
		p.InterestRate = *req.InterestRate
	}
	if req.MinAmount != nil {
		p.MinAmount = *req.MinAmount
	}
	if req.MaxAmount != nil {
		p.MaxAmount = *req.MaxAmount
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	if req.TermsAndConditions != nil {
		p.TermsAndConditions = *req.TermsAndConditions
	}

	p.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *planService) UpdateStatus(ctx context.Context, id string, req dto.UpdatePlanStatusRequest) (*models.Plan, error) {
	switch req.Status {
	case models.PlanStatusActive, models.PlanStatusInactive, models.PlanStatusArchived:
	default:
		return nil, errs.NewValidationError("Invalid status")
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Status = req.Status
	p.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete archives a subscribed plan instead of removing it; only plans with
// no subscribers are actually deleted.
func (s *planService) Delete(ctx context.Context, id string) (archived bool, err error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if p.TotalSubscribers > 0 {
		p.Status = models.PlanStatusArchived
		p.UpdatedAt = time.Now()
		return true, s.store.Update(ctx, p)
	}
	return false, s.store.Delete(ctx, id)
}

func (s *planService) CalculateMaturity(ctx context.Context, id string, req dto.CalculateMaturityRequest) (*dto.MaturityCalculation, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CustomAmount < 0 || req.CustomDuration < 0 {
		return nil, errs.NewValidationError("Custom amount and duration cannot be negative")
	}
	calc := CalculateMaturity(p, req)
	return &calc, nil
}

func (s *planService) Stats(ctx context.Context) (*dto.PlanStats, error) {
	plans, err := s.store.List(ctx, "", "")
	if err != nil {
		return nil, err
	}
	stats := &dto.PlanStats{TotalPlans: len(plans)}
	for _, p := range plans {
		if p.Status == models.PlanStatusActive {
			stats.ActivePlans++
		}
		stats.TotalSubscribers += p.TotalSubscribers
		stats.TotalCollections += float64(p.TotalCollections)
	}
	return stats, nil
}
