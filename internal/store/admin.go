package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type adminStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

func NewAdminStore(client *firestore.Client) *adminStore {
	return &adminStore{
		client:     client,
		collection: client.Collection(colAdmins),
	}
}

func (s *adminStore) Create(ctx context.Context, admin *models.Admin) error {
	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if _, err := s.collection.Doc(admin.ID).Create(ctx, admin); err != nil {
		return errs.FromStore("admin.create", "Admin", err)
	}
	return nil
}

func (s *adminStore) Get(ctx context.Context, id string) (*models.Admin, error) {
	doc, err := s.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("admin.get", "Admin", err)
	}
	var admin models.Admin
	if err := doc.DataTo(&admin); err != nil {
		return nil, errs.NewDatabaseError("admin.get", err.Error())
	}
	return &admin, nil
}

func (s *adminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	docs, err := s.collection.Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("admin.getByEmail", "Admin", err)
	}
	if len(docs) == 0 {
		return nil, errs.NewNotFoundError("Admin not found")
	}
	var admin models.Admin
	if err := docs[0].DataTo(&admin); err != nil {
		return nil, errs.NewDatabaseError("admin.getByEmail", err.Error())
	}
	return &admin, nil
}

func (s *adminStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return exists(ctx, s.collection.Where("email", "==", email))
}
