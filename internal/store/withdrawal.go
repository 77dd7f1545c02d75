package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type withdrawalStore struct {
	client *firestore.Client
}

func NewWithdrawalStore(client *firestore.Client) *withdrawalStore {
	return &withdrawalStore{client: client}
}

func (s *withdrawalStore) Create(ctx context.Context, w *models.Withdrawal) error {
	if _, err := s.client.Collection(colWithdrawals).Doc(w.ID).Create(ctx, w); err != nil {
		return errs.FromStore("withdrawal.create", "Withdrawal request", err)
	}
	return nil
}

func (s *withdrawalStore) Get(ctx context.Context, id string) (*models.Withdrawal, error) {
	snap, err := s.client.Collection(colWithdrawals).Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("withdrawal.get", "Withdrawal request", err)
	}
	return decodeWithdrawal(snap)
}

func (s *withdrawalStore) List(ctx context.Context, filter dto.WithdrawalListFilter) ([]*models.Withdrawal, int, error) {
	q := s.client.Collection(colWithdrawals).Query
	if filter.CustomerID != "" {
		q = q.Where("customerId", "==", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status", "==", filter.Status)
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
		return nil, 0, errs.FromStore("withdrawal.list", "Withdrawal request", err)
	}

	withdrawals := make([]*models.Withdrawal, 0, len(docs))
	for _, d := range docs {
		w, err := decodeWithdrawal(d)
		if err != nil {
			return nil, 0, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, total, nil
}

// HasPending reports whether the account already has an undecided request.
func (s *withdrawalStore) HasPending(ctx context.Context, accountID string) (bool, error) {
	return exists(ctx, s.client.Collection(colWithdrawals).
		Where("accountId", "==", accountID).
		Where("status", "==", models.WithdrawalStatusPending))
}

func (s *withdrawalStore) Stats(ctx context.Context) (*dto.WithdrawalStats, error) {
	docs, err := s.client.Collection(colWithdrawals).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("withdrawal.stats", "Withdrawal request", err)
	}

	dayStart := time.Now().Truncate(24 * time.Hour)
	stats := &dto.WithdrawalStats{Total: len(docs)}
	for _, d := range docs {
		w, err := decodeWithdrawal(d)
		if err != nil {
			return nil, err
		}
		switch w.Status {
		case models.WithdrawalStatusPending:
			stats.Pending++
		case models.WithdrawalStatusApproved:
			stats.Approved++
		case models.WithdrawalStatusRejected:
			stats.Rejected++
		}
		if !w.CreatedAt.Before(dayStart) {
			stats.Today++
		}
	}
	return stats, nil
}

func decodeWithdrawal(snap *firestore.DocumentSnapshot) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := snap.DataTo(&w); err != nil {
		return nil, errs.NewDatabaseError("withdrawal.decode", err.Error())
	}
	w.ID = snap.Ref.ID
	return &w, nil
}
