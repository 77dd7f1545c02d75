package store

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type accountStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

func NewAccountStore(client *firestore.Client) *accountStore {
	return &accountStore{
		client:     client,
		collection: client.Collection(colAccounts),
	}
}

func (s *accountStore) Create(ctx context.Context, a *models.Account) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Transactions == nil {
		a.Transactions = []models.LedgerEntry{}
	}
	if _, err := s.collection.Doc(a.ID).Create(ctx, a); err != nil {
		return errs.FromStore("account.create", "Account", err)
	}
	return nil
}

func (s *accountStore) Get(ctx context.Context, id string) (*models.Account, error) {
	doc, err := s.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("account.get", "Account", err)
	}
	return decodeAccount(doc)
}

func (s *accountStore) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	docs, err := s.collection.Where("accountNumber", "==", accountNumber).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("account.getByNumber", "Account", err)
	}
	if len(docs) == 0 {
		return nil, errs.NewNotFoundError("Account not found")
	}
	return decodeAccount(docs[0])
}

// Resolve looks an account up by document id first and falls back to the
// human-readable account number, in that order.
func (s *accountStore) Resolve(ctx context.Context, ref string) (*models.Account, error) {
	a, err := s.Get(ctx, ref)
	if err == nil {
		return a, nil
	}
	if _, ok := err.(*errs.NotFoundError); !ok {
		return nil, err
	}
	return s.GetByNumber(ctx, ref)
}

func (s *accountStore) List(ctx context.Context, filter dto.AccountListFilter) ([]*models.Account, int, error) {
	q := s.collection.Query
	if filter.CustomerID != "" {
		q = q.Where("customerId", "==", filter.CustomerID)
	}
	if filter.CollectorID != "" {
		q = q.Where("collectorId", "==", filter.CollectorID)
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
		return nil, 0, errs.FromStore("account.list", "Account", err)
	}

	accounts := make([]*models.Account, 0, len(docs))
	for _, d := range docs {
		a, err := decodeAccount(d)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, nil
}

func (s *accountStore) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	return exists(ctx, s.collection.Where("accountNumber", "==", accountNumber))
}

func (s *accountStore) HasActiveAccount(ctx context.Context, customerID string) (bool, error) {
	return exists(ctx, s.collection.
		Where("customerId", "==", customerID).
		Where("status", "==", models.AccountStatusActive))
}

// UpdateStatus transitions the account and recomputes the owning customer's
// savings aggregate in the same Firestore transaction, since an account
// leaving or re-entering the active set changes the sum.
func (s *accountStore) UpdateStatus(ctx context.Context, id, status, remarks, updatedBy string) (*models.Account, error) {
	var updated *models.Account

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		accRef := s.collection.Doc(id)
		snap, err := tx.Get(accRef)
		if err != nil {
			return errs.FromStore("account.updateStatus", "Account", err)
		}
		acc, err := decodeAccount(snap)
		if err != nil {
			return err
		}

		custRef := s.client.Collection(colCustomers).Doc(acc.CustomerID)
		custSnap, err := tx.Get(custRef)
		if err != nil {
			return errs.FromStore("account.updateStatus", "Customer", err)
		}
		var cust models.Customer
		if err := custSnap.DataTo(&cust); err != nil {
			return errs.NewDatabaseError("account.updateStatus", err.Error())
		}

		siblings, err := tx.Documents(s.collection.
			Where("customerId", "==", acc.CustomerID).
			Where("status", "==", models.AccountStatusActive)).GetAll()
		if err != nil {
			return errs.FromStore("account.updateStatus", "Account", err)
		}

		now := time.Now()
		savings := 0.0
		active := 0
		for _, d := range siblings {
			sib, err := decodeAccount(d)
			if err != nil {
				return err
			}
			if sib.ID == acc.ID {
				continue // re-counted below under the new status
			}
			savings += sib.TotalBalance
			active++
		}
		if status == models.AccountStatusActive {
			savings += acc.TotalBalance
			active++
		}

		updates := []firestore.Update{
			{Path: "status", Value: status},
			{Path: "updatedAt", Value: now},
		}
		if updatedBy != "" {
			updates = append(updates, firestore.Update{Path: "updatedBy", Value: updatedBy})
		}
		if remarks != "" {
			updates = append(updates, firestore.Update{Path: "remarks", Value: remarks})
		}
		acc.Status = status
		acc.UpdatedAt = now
		switch status {
		case models.AccountStatusClosed:
			updates = append(updates, firestore.Update{Path: "closingDate", Value: now})
			acc.ClosingDate = &now
		case models.AccountStatusCompleted:
			updates = append(updates,
				firestore.Update{Path: "maturityStatus", Value: models.MaturityStatusPaid},
				firestore.Update{Path: "withdrawalDate", Value: now})
			acc.MaturityStatus = models.MaturityStatusPaid
			acc.WithdrawalDate = &now
		}

		if err := tx.Update(accRef, updates); err != nil {
			return errs.FromStore("account.updateStatus", "Account", err)
		}
		if err := tx.Update(custRef, []firestore.Update{
			{Path: "totalSavings", Value: savings},
			{Path: "activeAccounts", Value: active},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return errs.FromStore("account.updateStatus", "Customer", err)
		}

		updated = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *accountStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.Doc(id).Delete(ctx); err != nil {
		return errs.FromStore("account.delete", "Account", err)
	}
	return nil
}

// Stats aggregates the overview counters and the ten most recent embedded
// transactions across all accounts.
func (s *accountStore) Stats(ctx context.Context) (*dto.AccountStats, error) {
	docs, err := s.collection.Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("account.stats", "Account", err)
	}

	stats := &dto.AccountStats{Recent: []dto.RecentActivity{}}
	type dated struct {
		entry  models.LedgerEntry
		number string
	}
	var all []dated

	for _, d := range docs {
		a, err := decodeAccount(d)
		if err != nil {
			return nil, err
		}
		stats.TotalAccounts++
		switch a.Status {
		case models.AccountStatusActive:
			stats.ActiveAccounts++
		case models.AccountStatusClosed:
			stats.ClosedAccounts++
		}
		stats.TotalBalance += a.TotalBalance
		for _, e := range a.Transactions {
			all = append(all, dated{entry: e, number: a.AccountNumber})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].entry.Date.After(all[j].entry.Date)
	})
	for i, d := range all {
		if i == 10 {
			break
		}
		stats.Recent = append(stats.Recent, dto.RecentActivity{
			AccountNumber: d.number,
			Amount:        d.entry.Amount,
			Type:          d.entry.Type,
			Date:          d.entry.Date.Format(time.RFC3339),
		})
	}
	return stats, nil
}

func decodeAccount(doc *firestore.DocumentSnapshot) (*models.Account, error) {
	var a models.Account
	if err := doc.DataTo(&a); err != nil {
		return nil, errs.NewDatabaseError("account.decode", err.Error())
	}
	return &a, nil
}
