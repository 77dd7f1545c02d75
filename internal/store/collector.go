package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type collectorStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

func NewCollectorStore(client *firestore.Client) *collectorStore {
	return &collectorStore{
		client:     client,
		collection: client.Collection(colCollectors),
	}
}

func (s *collectorStore) Create(ctx context.Context, c *models.Collector) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.collection.Doc(c.ID).Create(ctx, c); err != nil {
		return errs.FromStore("collector.create", "Collector", err)
	}
	return nil
}

func (s *collectorStore) Get(ctx context.Context, id string) (*models.Collector, error) {
	doc, err := s.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("collector.get", "Collector", err)
	}
	return decodeCollector(doc)
}

// GetByEmailOrPhone resolves the login username, which may be either field.
func (s *collectorStore) GetByEmailOrPhone(ctx context.Context, username string) (*models.Collector, error) {
	docs, err := s.collection.Where("email", "==", username).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("collector.lookup", "Collector", err)
	}
	if len(docs) == 0 {
		docs, err = s.collection.Where("phone", "==", username).Limit(1).Documents(ctx).GetAll()
		if err != nil {
			return nil, errs.FromStore("collector.lookup", "Collector", err)
		}
	}
	if len(docs) == 0 {
		return nil, errs.NewNotFoundError("No collector found with this email or phone number")
	}
	return decodeCollector(docs[0])
}

func (s *collectorStore) List(ctx context.Context) ([]*models.Collector, error) {
	docs, err := s.collection.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("collector.list", "Collector", err)
	}
	collectors := make([]*models.Collector, 0, len(docs))
	for _, d := range docs {
		c, err := decodeCollector(d)
		if err != nil {
			return nil, err
		}
		collectors = append(collectors, c)
	}
	return collectors, nil
}

func (s *collectorStore) Update(ctx context.Context, c *models.Collector) error {
	c.UpdatedAt = time.Now()
	if _, err := s.collection.Doc(c.ID).Set(ctx, c); err != nil {
		return errs.FromStore("collector.update", "Collector", err)
	}
	return nil
}

func (s *collectorStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.Doc(id).Delete(ctx); err != nil {
		return errs.FromStore("collector.delete", "Collector", err)
	}
	return nil
}

func (s *collectorStore) FieldExists(ctx context.Context, field, value, excludeID string) (bool, error) {
	docs, err := s.collection.Where(field, "==", value).Limit(2).Documents(ctx).GetAll()
	if err != nil {
		return false, errs.FromStore("collector.fieldExists", "Collector", err)
	}
	for _, d := range docs {
		if d.Ref.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func decodeCollector(doc *firestore.DocumentSnapshot) (*models.Collector, error) {
	var c models.Collector
	if err := doc.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("collector.decode", err.Error())
	}
	return &c, nil
}
