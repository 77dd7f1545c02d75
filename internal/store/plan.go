package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type planStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

func NewPlanStore(client *firestore.Client) *planStore {
	return &planStore{
		client:     client,
		collection: client.Collection(colPlans),
	}
}

func (s *planStore) Create(ctx context.Context, p *models.Plan) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.collection.Doc(p.ID).Create(ctx, p); err != nil {
		return errs.FromStore("plan.create", "Plan", err)
	}
	return nil
}

func (s *planStore) Get(ctx context.Context, id string) (*models.Plan, error) {
	doc, err := s.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("plan.get", "Plan", err)
	}
	return decodePlan(doc)
}

func (s *planStore) List(ctx context.Context, status, planType string) ([]*models.Plan, error) {
	q := s.collection.Query
	if status != "" {
		q = q.Where("status", "==", status)
	}
	if planType != "" {
		q = q.Where("type", "==", planType)
	}
	docs, err := q.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("plan.list", "Plan", err)
	}
	plans := make([]*models.Plan, 0, len(docs))
	for _, d := range docs {
		p, err := decodePlan(d)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (s *planStore) Update(ctx context.Context, p *models.Plan) error {
	p.UpdatedAt = time.Now()
	if _, err := s.collection.Doc(p.ID).Set(ctx, p); err != nil {
		return errs.FromStore("plan.update", "Plan", err)
	}
	return nil
}

func (s *planStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.Doc(id).Delete(ctx); err != nil {
		return errs.FromStore("plan.delete", "Plan", err)
	}
	return nil
}

func (s *planStore) PlanIDExists(ctx context.Context, planID string) (bool, error) {
	return exists(ctx, s.collection.Where("planId", "==", planID))
}

// IncrementSubscribers bumps the subscriber counter when an account is
// opened against the plan.
func (s *planStore) IncrementSubscribers(ctx context.Context, id string, delta int) error {
	_, err := s.collection.Doc(id).Update(ctx, []firestore.Update{
		{Path: "totalSubscribers", Value: firestore.Increment(delta)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errs.FromStore("plan.incrementSubscribers", "Plan", err)
	}
	return nil
}

func decodePlan(doc *firestore.DocumentSnapshot) (*models.Plan, error) {
	var p models.Plan
	if err := doc.DataTo(&p); err != nil {
		return nil, errs.NewDatabaseError("plan.decode", err.Error())
	}
	return &p, nil
}
