package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type feedbackStore struct {
	client *firestore.Client
}

func NewFeedbackStore(client *firestore.Client) *feedbackStore {
	return &feedbackStore{client: client}
}

func (s *feedbackStore) Create(ctx context.Context, f *models.Feedback) error {
	if _, err := s.client.Collection(colFeedback).Doc(f.ID).Create(ctx, f); err != nil {
		return errs.FromStore("feedback.create", "Feedback", err)
	}
	return nil
}

func (s *feedbackStore) Get(ctx context.Context, id string) (*models.Feedback, error) {
	snap, err := s.client.Collection(colFeedback).Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("feedback.get", "Feedback", err)
	}
	return decodeFeedback(snap)
}

func (s *feedbackStore) List(ctx context.Context, filter dto.FeedbackListFilter) ([]*models.Feedback, int, error) {
	q := s.client.Collection(colFeedback).Query
	if filter.Status != "" {
		q = q.Where("status", "==", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type", "==", filter.Type)
	}
	if filter.Priority != "" {
		q = q.Where("priority", "==", filter.Priority)
	}

	total, err := countDocs(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page.Normalize()
	docs, err := q.OrderBy("createdAt", firestore.Desc).
		Offset(page.Offset()).Limit(page.Limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errs.FromStore("feedback.list", "Feedback", err)
	}

	items := make([]*models.Feedback, 0, len(docs))
	for _, d := range docs {
		f, err := decodeFeedback(d)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, nil
}

func (s *feedbackStore) ListByCustomer(ctx context.Context, customerID string) ([]*models.Feedback, error) {
	docs, err := s.client.Collection(colFeedback).
		Where("customerId", "==", customerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("feedback.list", "Feedback", err)
	}
	items := make([]*models.Feedback, 0, len(docs))
	for _, d := range docs {
		f, err := decodeFeedback(d)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, nil
}

func (s *feedbackStore) Update(ctx context.Context, id string, updates []firestore.Update) (*models.Feedback, error) {
	ref := s.client.Collection(colFeedback).Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		return nil, errs.FromStore("feedback.update", "Feedback", err)
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, errs.FromStore("feedback.get", "Feedback", err)
	}
	return decodeFeedback(snap)
}

func (s *feedbackStore) Overview(ctx context.Context) (*dto.FeedbackOverview, error) {
	docs, err := s.client.Collection(colFeedback).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("feedback.overview", "Feedback", err)
	}

	overview := &dto.FeedbackOverview{
		Total:      len(docs),
		ByPriority: map[string]int{},
	}
	ratingSum := 0
	for _, d := range docs {
		f, err := decodeFeedback(d)
		if err != nil {
			return nil, err
		}
		switch f.Status {
		case models.FeedbackStatusOpen:
			overview.Open++
		case models.FeedbackStatusResolved:
			overview.Resolved++
		}
		overview.ByPriority[f.Priority]++
		ratingSum += f.Rating
	}
	if overview.Total > 0 {
		overview.AverageRating = float64(ratingSum) / float64(overview.Total)
	}
	return overview, nil
}

func decodeFeedback(snap *firestore.DocumentSnapshot) (*models.Feedback, error) {
	var f models.Feedback
	if err := snap.DataTo(&f); err != nil {
		return nil, errs.NewDatabaseError("feedback.decode", err.Error())
	}
	f.ID = snap.Ref.ID
	return &f, nil
}

type collectorFeedbackStore struct {
	client *firestore.Client
}

func NewCollectorFeedbackStore(client *firestore.Client) *collectorFeedbackStore {
	return &collectorFeedbackStore{client: client}
}

func (s *collectorFeedbackStore) Create(ctx context.Context, f *models.CollectorFeedback) error {
	if _, err := s.client.Collection(colCollectorFeedback).Doc(f.ID).Create(ctx, f); err != nil {
		return errs.FromStore("collectorFeedback.create", "Feedback", err)
	}
	return nil
}

func (s *collectorFeedbackStore) List(ctx context.Context, status string, page dto.PageQuery) ([]*models.CollectorFeedback, int, error) {
	q := s.client.Collection(colCollectorFeedback).Query
	if status != "" {
		q = q.Where("status", "==", status)
	}

	total, err := countDocs(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	docs, err := q.OrderBy("createdAt", firestore.Desc).
		Offset(page.Offset()).Limit(page.Limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errs.FromStore("collectorFeedback.list", "Feedback", err)
	}

	items := make([]*models.CollectorFeedback, 0, len(docs))
	for _, d := range docs {
		f, err := decodeCollectorFeedback(d)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, nil
}

func (s *collectorFeedbackStore) ListBySubmitter(ctx context.Context, collectorID string) ([]*models.CollectorFeedback, error) {
	docs, err := s.client.Collection(colCollectorFeedback).
		Where("submittedBy", "==", collectorID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("collectorFeedback.list", "Feedback", err)
	}
	items := make([]*models.CollectorFeedback, 0, len(docs))
	for _, d := range docs {
		f, err := decodeCollectorFeedback(d)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, nil
}

func (s *collectorFeedbackStore) Update(ctx context.Context, id string, updates []firestore.Update) (*models.CollectorFeedback, error) {
	ref := s.client.Collection(colCollectorFeedback).Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		return nil, errs.FromStore("collectorFeedback.update", "Feedback", err)
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, errs.FromStore("collectorFeedback.get", "Feedback", err)
	}
	return decodeCollectorFeedback(snap)
}

func decodeCollectorFeedback(snap *firestore.DocumentSnapshot) (*models.CollectorFeedback, error) {
	var f models.CollectorFeedback
	if err := snap.DataTo(&f); err != nil {
		return nil, errs.NewDatabaseError("collectorFeedback.decode", err.Error())
	}
	f.ID = snap.Ref.ID
	return &f, nil
}
