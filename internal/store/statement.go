package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type statementStore struct {
	client *firestore.Client
}

func NewStatementStore(client *firestore.Client) *statementStore {
	return &statementStore{client: client}
}

func (s *statementStore) Create(ctx context.Context, st *models.Statement) error {
	if _, err := s.client.Collection(colStatements).Doc(st.ID).Create(ctx, st); err != nil {
		return errs.FromStore("statement.create", "Statement", err)
	}
	return nil
}

func (s *statementStore) Get(ctx context.Context, id string) (*models.Statement, error) {
	snap, err := s.client.Collection(colStatements).Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("statement.get", "Statement", err)
	}
	return decodeStatement(snap)
}

func (s *statementStore) List(ctx context.Context, filter dto.StatementListFilter) ([]*models.Statement, int, error) {
	q := s.client.Collection(colStatements).Query
	if filter.AccountID != "" {
		q = q.Where("accountId", "==", filter.AccountID)
	}
	if filter.CustomerID != "" {
		q = q.Where("customerId", "==", filter.CustomerID)
	}
	if filter.Type != "" {
		q = q.Where("type", "==", filter.Type)
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
		return nil, 0, errs.FromStore("statement.list", "Statement", err)
	}

	statements := make([]*models.Statement, 0, len(docs))
	for _, d := range docs {
		st, err := decodeStatement(d)
		if err != nil {
			return nil, 0, err
		}
		statements = append(statements, st)
	}
	return statements, total, nil
}

func (s *statementStore) Delete(ctx context.Context, id string) error {
	ref := s.client.Collection(colStatements).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return errs.FromStore("statement.delete", "Statement", err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return errs.FromStore("statement.delete", "Statement", err)
	}
	return nil
}

func decodeStatement(snap *firestore.DocumentSnapshot) (*models.Statement, error) {
	var st models.Statement
	if err := snap.DataTo(&st); err != nil {
		return nil, errs.NewDatabaseError("statement.decode", err.Error())
	}
	st.ID = snap.Ref.ID
	return &st, nil
}
