package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type paymentStore struct {
	client *firestore.Client
}

func NewPaymentStore(client *firestore.Client) *paymentStore {
	return &paymentStore{client: client}
}

func (s *paymentStore) Get(ctx context.Context, id string) (*models.Payment, error) {
	snap, err := s.client.Collection(colPayments).Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("payment.get", "Payment", err)
	}
	return decodePayment(snap)
}

func (s *paymentStore) List(ctx context.Context, filter dto.PaymentListFilter) ([]*models.Payment, int, error) {
	q := s.client.Collection(colPayments).Query
	if filter.AccountID != "" {
		q = q.Where("accountId", "==", filter.AccountID)
	}
	if filter.CustomerID != "" {
		q = q.Where("customerId", "==", filter.CustomerID)
	}
	if filter.CollectorID != "" {
		q = q.Where("collectorId", "==", filter.CollectorID)
	}
	if filter.Status != "" {
		q = q.Where("status", "==", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type", "==", filter.Type)
	}

	total, err := countDocs(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page.Normalize()
	docs, err := q.OrderBy("paymentDate", firestore.Desc).
		Offset(page.Offset()).Limit(page.Limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errs.FromStore("payment.list", "Payment", err)
	}

	payments := make([]*models.Payment, 0, len(docs))
	for _, d := range docs {
		p, err := decodePayment(d)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	return payments, total, nil
}

func (s *paymentStore) Delete(ctx context.Context, id string) error {
	ref := s.client.Collection(colPayments).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		return errs.FromStore("payment.delete", "Payment", err)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return errs.FromStore("payment.delete", "Payment", err)
	}
	return nil
}

// Stats scans all payments; the collection is small enough at pigmy scale
// that this is preferable to maintaining counters.
func (s *paymentStore) Stats(ctx context.Context) (*dto.PaymentStats, error) {
	docs, err := s.client.Collection(colPayments).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("payment.stats", "Payment", err)
	}

	dayStart := time.Now().Truncate(24 * time.Hour)
	stats := &dto.PaymentStats{TotalPayments: len(docs)}
	for _, d := range docs {
		p, err := decodePayment(d)
		if err != nil {
			return nil, err
		}
		switch p.Status {
		case models.PaymentStatusPending:
			stats.PendingPayments++
		case models.PaymentStatusFailed:
			stats.FailedPayments++
		case models.PaymentStatusCompleted, models.PaymentStatusVerified:
			stats.CompletedPayments++
			if p.Type == models.EntryTypeDeposit {
				stats.TotalCollected += p.Amount
				if !p.PaymentDate.Before(dayStart) {
					stats.TodayCollected += p.Amount
				}
			}
		}
	}
	return stats, nil
}

func decodePayment(snap *firestore.DocumentSnapshot) (*models.Payment, error) {
	var p models.Payment
	if err := snap.DataTo(&p); err != nil {
		return nil, errs.NewDatabaseError("payment.decode", err.Error())
	}
	p.ID = snap.Ref.ID
	return &p, nil
}
