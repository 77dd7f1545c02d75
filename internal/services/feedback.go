package services

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// feedbackStore is the Firestore storage interface for customer feedback.
type feedbackStore interface {
	Create(ctx context.Context, f *models.Feedback) error
	Get(ctx context.Context, id string) (*models.Feedback, error)
	List(ctx context.Context, filter dto.FeedbackListFilter) ([]*models.Feedback, int, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*models.Feedback, error)
	Update(ctx context.Context, id string, updates []firestore.Update) (*models.Feedback, error)
	Overview(ctx context.Context) (*dto.FeedbackOverview, error)
}

// collectorFeedbackStore is the storage interface for collector feedback.
type collectorFeedbackStore interface {
	Create(ctx context.Context, f *models.CollectorFeedback) error
	List(ctx context.Context, status string, page dto.PageQuery) ([]*models.CollectorFeedback, int, error)
	ListBySubmitter(ctx context.Context, collectorID string) ([]*models.CollectorFeedback, error)
	Update(ctx context.Context, id string, updates []firestore.Update) (*models.CollectorFeedback, error)
}

type feedbackService struct {
	store          feedbackStore
	collectorStore collectorFeedbackStore
}

func NewFeedbackService(store feedbackStore, collectorStore collectorFeedbackStore) *feedbackService {
	return &feedbackService{store: store, collectorStore: collectorStore}
}

func (s *feedbackService) Submit(ctx context.Context, customerID string, req dto.CreateFeedbackRequest) (*models.Feedback, error) {
	if req.Subject == "" || req.Message == "" {
		return nil, errs.NewValidationError("Subject and message are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errs.NewValidationError("Rating must be between 1 and 5")
	}

	now := time.Now()
	f := &models.Feedback{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Type:       req.Type,
		Subject:    req.Subject,
		Message:    req.Message,
		Rating:     req.Rating,
		Email:      req.Email,
		Status:     models.FeedbackStatusOpen,
		Priority:   models.PriorityForRating(req.Rating),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *feedbackService) Get(ctx context.Context, id string) (*models.Feedback, error) {
	return s.store.Get(ctx, id)
}

func (s *feedbackService) List(ctx context.Context, filter dto.FeedbackListFilter) ([]*models.Feedback, int, error) {
	return s.store.List(ctx, filter)
}

func (s *feedbackService) ListMine(ctx context.Context, customerID string) ([]*models.Feedback, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

func (s *feedbackService) UpdateStatus(ctx context.Context, id, adminID string, req dto.UpdateFeedbackStatusRequest) (*models.Feedback, error) {
	switch req.Status {
	case models.FeedbackStatusOpen, models.FeedbackStatusInProgress,
		models.FeedbackStatusResolved, models.FeedbackStatusClosed:
	default:
		return nil, errs.NewValidationError("Invalid status")
	}

	now := time.Now()
	updates := []firestore.Update{
		{Path: "status", Value: req.Status},
		{Path: "updatedAt", Value: now},
	}
	if req.ResponseMessage != "" {
		updates = append(updates, firestore.Update{Path: "response", Value: &models.FeedbackResponse{
			Message:     req.ResponseMessage,
			RespondedBy: adminID,
			RespondedAt: &now,
		}})
	}
	return s.store.Update(ctx, id, updates)
}

func (s *feedbackService) Overview(ctx context.Context) (*dto.FeedbackOverview, error) {
	return s.store.Overview(ctx)
}

func (s *feedbackService) SubmitCollector(ctx context.Context, collectorID string, req dto.CreateCollectorFeedbackRequest) (*models.CollectorFeedback, error) {
	if req.Message == "" {
		return nil, errs.NewValidationError("Message is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errs.NewValidationError("Rating must be between 1 and 5")
	}

	now := time.Now()
	f := &models.CollectorFeedback{
		ID:             uuid.New().String(),
		SubmittedBy:    collectorID,
		AboutCollector: req.AboutCollector,
		Message:        req.Message,
		Rating:         req.Rating,
		Category:       req.Category,
		Status:         models.CollectorFeedbackStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.collectorStore.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *feedbackService) ListCollector(ctx context.Context, status string, page dto.PageQuery) ([]*models.CollectorFeedback, int, error) {
	return s.collectorStore.List(ctx, status, page)
}

func (s *feedbackService) ListCollectorMine(ctx context.Context, collectorID string) ([]*models.CollectorFeedback, error) {
	return s.collectorStore.ListBySubmitter(ctx, collectorID)
}

func (s *feedbackService) UpdateCollectorStatus(ctx context.Context, id string, req dto.UpdateCollectorFeedbackStatusRequest) (*models.CollectorFeedback, error) {
	switch req.Status {
	case models.CollectorFeedbackStatusPending, models.CollectorFeedbackStatusReviewed,
		models.CollectorFeedbackStatusActionTaken, models.CollectorFeedbackStatusResolved:
	default:
		return nil, errs.NewValidationError("Invalid status")
	}
	return s.collectorStore.Update(ctx, id, []firestore.Update{
		{Path: "status", Value: req.Status},
		{Path: "updatedAt", Value: time.Now()},
	})
}

func (s *feedbackService) AddCollectorNotes(ctx context.Context, id string, req dto.CollectorFeedbackNotesRequest) (*models.CollectorFeedback, error) {
	if req.AdminNotes == "" {
		return nil, errs.NewValidationError("adminNotes is required")
	}
	return s.collectorStore.Update(ctx, id, []firestore.Update{
		{Path: "adminNotes", Value: req.AdminNotes},
		{Path: "updatedAt", Value: time.Now()},
	})
}
