package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// ledgerStore owns every money mutation. A single Firestore transaction
// covers the Payment document (source of truth), the Account balance and
// its embedded entry projection, the owning Customer's savings aggregate
// and the acting Collector's collection counter, so a mid-sequence failure
// can no longer leave the aggregates diverged and two concurrent
// withdrawals cannot both pass the balance check.
type ledgerStore struct {
	client *firestore.Client
}

func NewLedgerStore(client *firestore.Client) *ledgerStore {
	return &ledgerStore{client: client}
}

// accountMutation carries the read phase of a balance change. Firestore
// transactions require all reads to happen before the first write, so the
// mutation is assembled first and written in one go.
type accountMutation struct {
	accRef     *firestore.DocumentRef
	custRef    *firestore.DocumentRef
	account    *models.Account
	newBalance float64
	savings    float64 // customer totalSavings with the new balance applied
}

// readMutation performs the read phase: account lookup, status and balance
// checks, and the full re-scan of the customer's active accounts that backs
// the totalSavings recompute.
func (s *ledgerStore) readMutation(tx *firestore.Transaction, accountID string, amount float64, entryType string) (*accountMutation, error) {
	if amount <= 0 {
		return nil, errs.NewValidationError("Transaction amount must be positive")
	}

	accRef := s.client.Collection(colAccounts).Doc(accountID)
	snap, err := tx.Get(accRef)
	if err != nil {
		return nil, errs.FromStore("ledger.account", "Account", err)
	}
	acc, err := decodeAccount(snap)
	if err != nil {
		return nil, err
	}

	if acc.Status != models.AccountStatusActive {
		return nil, errs.NewBusinessRuleError("Cannot add transaction to inactive account")
	}

	var newBalance float64
	switch entryType {
	case models.EntryTypeDeposit:
		newBalance = acc.TotalBalance + amount
	case models.EntryTypeWithdrawal:
		if amount > acc.TotalBalance {
			return nil, errs.NewBusinessRuleError("Insufficient account balance")
		}
		newBalance = acc.TotalBalance - amount
	default:
		return nil, errs.NewValidationError("Invalid transaction type")
	}

	custRef := s.client.Collection(colCustomers).Doc(acc.CustomerID)
	if _, err := tx.Get(custRef); err != nil {
		return nil, errs.FromStore("ledger.customer", "Customer", err)
	}

	siblings, err := tx.Documents(s.client.Collection(colAccounts).
		Where("customerId", "==", acc.CustomerID).
		Where("status", "==", models.AccountStatusActive)).GetAll()
	if err != nil {
		return nil, errs.FromStore("ledger.savings", "Account", err)
	}
	savings := newBalance
	for _, d := range siblings {
		sib, err := decodeAccount(d)
		if err != nil {
			return nil, err
		}
		if sib.ID != acc.ID {
			savings += sib.TotalBalance
		}
	}

	return &accountMutation{
		accRef:     accRef,
		custRef:    custRef,
		account:    acc,
		newBalance: newBalance,
		savings:    savings,
	}, nil
}

// writeMutation applies the write phase over a prepared mutation. The
// entries slice must already reflect the appended or updated projection.
func (s *ledgerStore) writeMutation(tx *firestore.Transaction, m *accountMutation, entries []models.LedgerEntry, now time.Time) error {
	if err := tx.Update(m.accRef, []firestore.Update{
		{Path: "totalBalance", Value: m.newBalance},
		{Path: "transactions", Value: entries},
		{Path: "lastTransaction", Value: now},
		{Path: "updatedAt", Value: now},
	}); err != nil {
		return errs.FromStore("ledger.account", "Account", err)
	}
	if err := tx.Update(m.custRef, []firestore.Update{
		{Path: "totalSavings", Value: m.savings},
		{Path: "lastCollectionDate", Value: now},
		{Path: "updatedAt", Value: now},
	}); err != nil {
		return errs.FromStore("ledger.customer", "Customer", err)
	}
	return nil
}

func (s *ledgerStore) incrementCollector(tx *firestore.Transaction, collectorID string, now time.Time) error {
	if collectorID == "" {
		return nil
	}
	ref := s.client.Collection(colCollectors).Doc(collectorID)
	if err := tx.Update(ref, []firestore.Update{
		{Path: "totalCollections", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: now},
	}); err != nil {
		return errs.FromStore("ledger.collector", "Collector", err)
	}
	return nil
}

// Apply records the payment and, unless it is pending, applies its balance
// effect. The payment must carry AccountID (document id), amount, type,
// method, status and receipt number; CustomerID is filled from the account.
func (s *ledgerStore) Apply(ctx context.Context, p *models.Payment) (*models.Account, error) {
	var result *models.Account

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()

		if p.CollectorID != "" {
			// reject unknown collectors before any write
			if _, err := tx.Get(s.client.Collection(colCollectors).Doc(p.CollectorID)); err != nil {
				if errs.IsNotFound(err) {
					return errs.NewValidationError("Collector not found")
				}
				return errs.FromStore("ledger.collector", "Collector", err)
			}
		}

		entry := models.LedgerEntry{
			ReferenceNumber: p.ReceiptNumber,
			Date:            p.PaymentDate,
			Amount:          p.Amount,
			Type:            p.Type,
			Method:          p.PaymentMethod,
			CollectedBy:     p.CollectorID,
		}

		if p.Status == models.PaymentStatusPending {
			// no balance effect yet; project a pending entry so the
			// reference number is already correlated
			accRef := s.client.Collection(colAccounts).Doc(p.AccountID)
			snap, err := tx.Get(accRef)
			if err != nil {
				return errs.FromStore("ledger.account", "Account", err)
			}
			acc, err := decodeAccount(snap)
			if err != nil {
				return err
			}
			if acc.Status != models.AccountStatusActive {
				return errs.NewBusinessRuleError("Cannot add transaction to inactive account")
			}
			if p.Amount <= 0 {
				return errs.NewValidationError("Transaction amount must be positive")
			}

			entry.Status = models.EntryStatusPending
			entries := append(acc.Transactions, entry)

			p.CustomerID = acc.CustomerID
			p.CreatedAt = now
			p.UpdatedAt = now
			if err := tx.Create(s.client.Collection(colPayments).Doc(p.ID), p); err != nil {
				return errs.FromStore("ledger.payment", "Payment", err)
			}
			if err := tx.Update(accRef, []firestore.Update{
				{Path: "transactions", Value: entries},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return errs.FromStore("ledger.account", "Account", err)
			}
			acc.Transactions = entries
			result = acc
			return nil
		}

		m, err := s.readMutation(tx, p.AccountID, p.Amount, p.Type)
		if err != nil {
			return err
		}

		entry.Status = models.EntryStatusCompleted
		entries := append(m.account.Transactions, entry)

		p.CustomerID = m.account.CustomerID
		p.ProcessedAt = &now
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := tx.Create(s.client.Collection(colPayments).Doc(p.ID), p); err != nil {
			return errs.FromStore("ledger.payment", "Payment", err)
		}
		if err := s.writeMutation(tx, m, entries, now); err != nil {
			return err
		}
		if err := s.incrementCollector(tx, p.CollectorID, now); err != nil {
			return err
		}

		m.account.TotalBalance = m.newBalance
		m.account.Transactions = entries
		m.account.LastTransaction = &now
		result = m.account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SettlePayment advances a pending payment to completed, verified or
// failed. Completion applies the balance effect and flips the projected
// entry, matched on receipt number.
func (s *ledgerStore) SettlePayment(ctx context.Context, paymentID, target, actorID, remarks string) (*models.Payment, error) {
	var result *models.Payment

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()

		payRef := s.client.Collection(colPayments).Doc(paymentID)
		snap, err := tx.Get(payRef)
		if err != nil {
			return errs.FromStore("ledger.payment", "Payment", err)
		}
		var p models.Payment
		if err := snap.DataTo(&p); err != nil {
			return errs.NewDatabaseError("ledger.payment", err.Error())
		}
		if p.Status != models.PaymentStatusPending {
			return errs.NewBusinessRuleError("Payment is already " + p.Status)
		}

		updates := []firestore.Update{
			{Path: "status", Value: target},
			{Path: "processedAt", Value: now},
			{Path: "updatedAt", Value: now},
		}
		if remarks != "" {
			updates = append(updates, firestore.Update{Path: "remarks", Value: remarks})
		}
		p.Status = target
		p.ProcessedAt = &now

		switch target {
		case models.PaymentStatusCompleted, models.PaymentStatusVerified:
			if target == models.PaymentStatusVerified {
				updates = append(updates,
					firestore.Update{Path: "verifiedBy", Value: actorID},
					firestore.Update{Path: "verifiedAt", Value: now})
				p.VerifiedBy = actorID
				p.VerifiedAt = &now
			}

			m, err := s.readMutation(tx, p.AccountID, p.Amount, p.Type)
			if err != nil {
				return err
			}
			entries := settleEntry(m.account.Transactions, p.ReceiptNumber, models.EntryStatusCompleted)

			if err := tx.Update(payRef, updates); err != nil {
				return errs.FromStore("ledger.payment", "Payment", err)
			}
			if err := s.writeMutation(tx, m, entries, now); err != nil {
				return err
			}
			if err := s.incrementCollector(tx, p.CollectorID, now); err != nil {
				return err
			}

		case models.PaymentStatusFailed:
			accRef := s.client.Collection(colAccounts).Doc(p.AccountID)
			accSnap, err := tx.Get(accRef)
			if err != nil {
				return errs.FromStore("ledger.account", "Account", err)
			}
			acc, err := decodeAccount(accSnap)
			if err != nil {
				return err
			}
			entries := settleEntry(acc.Transactions, p.ReceiptNumber, models.EntryStatusFailed)

			if err := tx.Update(payRef, updates); err != nil {
				return errs.FromStore("ledger.payment", "Payment", err)
			}
			if err := tx.Update(accRef, []firestore.Update{
				{Path: "transactions", Value: entries},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return errs.FromStore("ledger.account", "Account", err)
			}

		default:
			return errs.NewValidationError("Invalid payment status")
		}

		result = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveWithdrawal decrements the balance, projects the entry under the
// request's reference number and mirrors the event as a completed Payment.
// collectorID is empty when an admin approves; only collectors get their
// collection counter incremented.
func (s *ledgerStore) ApproveWithdrawal(ctx context.Context, withdrawalID, processedBy, collectorID, remarks string) (*models.Withdrawal, error) {
	var result *models.Withdrawal

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()

		wRef := s.client.Collection(colWithdrawals).Doc(withdrawalID)
		snap, err := tx.Get(wRef)
		if err != nil {
			return errs.FromStore("ledger.withdrawal", "Withdrawal request", err)
		}
		var w models.Withdrawal
		if err := snap.DataTo(&w); err != nil {
			return errs.NewDatabaseError("ledger.withdrawal", err.Error())
		}
		if w.Status != models.WithdrawalStatusPending {
			return errs.NewBusinessRuleError("Withdrawal request is already " + w.Status)
		}

		m, err := s.readMutation(tx, w.AccountID, w.Amount, models.EntryTypeWithdrawal)
		if err != nil {
			return err
		}

		ref := w.ReferenceNumber
		if ref == "" {
			ref = uuid.New().String()
		}
		entries := append(m.account.Transactions, models.LedgerEntry{
			ReferenceNumber: ref,
			Date:            now,
			Amount:          w.Amount,
			Type:            models.EntryTypeWithdrawal,
			Method:          models.PaymentMethodWithdrawal,
			Status:          models.EntryStatusCompleted,
			CollectedBy:     collectorID,
		})

		mirror := &models.Payment{
			ID:            uuid.New().String(),
			AccountID:     w.AccountID,
			CustomerID:    m.account.CustomerID,
			CollectorID:   collectorID,
			Amount:        w.Amount,
			PaymentDate:   now,
			PaymentMethod: models.PaymentMethodWithdrawal,
			Type:          models.EntryTypeWithdrawal,
			Status:        models.PaymentStatusCompleted,
			ReceiptNumber: ref,
			Remarks:       remarks,
			ProcessedAt:   &now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		wUpdates := []firestore.Update{
			{Path: "status", Value: models.WithdrawalStatusApproved},
			{Path: "referenceNumber", Value: ref},
			{Path: "processedBy", Value: processedBy},
			{Path: "processedAt", Value: now},
			{Path: "updatedAt", Value: now},
		}
		if remarks != "" {
			wUpdates = append(wUpdates, firestore.Update{Path: "remarks", Value: remarks})
		}

		if err := tx.Update(wRef, wUpdates); err != nil {
			return errs.FromStore("ledger.withdrawal", "Withdrawal request", err)
		}
		if err := tx.Create(s.client.Collection(colPayments).Doc(mirror.ID), mirror); err != nil {
			return errs.FromStore("ledger.payment", "Payment", err)
		}
		if err := s.writeMutation(tx, m, entries, now); err != nil {
			return err
		}
		if err := s.incrementCollector(tx, collectorID, now); err != nil {
			return err
		}

		w.Status = models.WithdrawalStatusApproved
		w.ReferenceNumber = ref
		w.ProcessedBy = processedBy
		w.ProcessedAt = &now
		w.Remarks = remarks
		result = &w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RejectWithdrawal records the decision and remark; the balance stays
// untouched.
func (s *ledgerStore) RejectWithdrawal(ctx context.Context, withdrawalID, processedBy, remarks string) (*models.Withdrawal, error) {
	var result *models.Withdrawal

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now()

		wRef := s.client.Collection(colWithdrawals).Doc(withdrawalID)
		snap, err := tx.Get(wRef)
		if err != nil {
			return errs.FromStore("ledger.withdrawal", "Withdrawal request", err)
		}
		var w models.Withdrawal
		if err := snap.DataTo(&w); err != nil {
			return errs.NewDatabaseError("ledger.withdrawal", err.Error())
		}
		if w.Status != models.WithdrawalStatusPending {
			return errs.NewBusinessRuleError("Withdrawal request is already " + w.Status)
		}

		updates := []firestore.Update{
			{Path: "status", Value: models.WithdrawalStatusRejected},
			{Path: "processedBy", Value: processedBy},
			{Path: "processedAt", Value: now},
			{Path: "updatedAt", Value: now},
		}
		if remarks != "" {
			updates = append(updates, firestore.Update{Path: "remarks", Value: remarks})
		}
		if err := tx.Update(wRef, updates); err != nil {
			return errs.FromStore("ledger.withdrawal", "Withdrawal request", err)
		}

		w.Status = models.WithdrawalStatusRejected
		w.ProcessedBy = processedBy
		w.ProcessedAt = &now
		w.Remarks = remarks
		result = &w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// settleEntry flips the status of the entry matching the reference number.
// Reference numbers are generated as UUIDs so duplicates do not occur; the
// first match wins regardless.
func settleEntry(entries []models.LedgerEntry, referenceNumber, status string) []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].ReferenceNumber == referenceNumber {
			out[i].Status = status
			break
		}
	}
	return out
}
