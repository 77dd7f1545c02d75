package services

import (
	"context"
	"errors"
	"testing"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type fakePaymentStore struct {
	ledger *fakeLedger
}

func (f *fakePaymentStore) Get(_ context.Context, id string) (*models.Payment, error) {
	for _, p := range f.ledger.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errs.NewNotFoundError("Payment not found")
}

func (f *fakePaymentStore) List(_ context.Context, filter dto.PaymentListFilter) ([]*models.Payment, int, error) {
	out := make([]*models.Payment, 0)
	for _, p := range f.ledger.payments {
		if filter.AccountID != "" && p.AccountID != filter.AccountID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakePaymentStore) Delete(_ context.Context, id string) error {
	for i, p := range f.ledger.payments {
		if p.ID == id {
			f.ledger.payments = append(f.ledger.payments[:i], f.ledger.payments[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFoundError("Payment not found")
}

func (f *fakePaymentStore) Stats(_ context.Context) (*dto.PaymentStats, error) {
	return &dto.PaymentStats{TotalPayments: len(f.ledger.payments)}, nil
}

func newPaymentFixture() (*paymentService, *fakeAccountStore, *fakeLedger) {
	accounts := newFakeAccountStore()
	ledger := &fakeLedger{store: accounts}
	store := &fakePaymentStore{ledger: ledger}
	return NewPaymentService(store, ledger, accounts), accounts, ledger
}

func (f *fakeLedger) SettlePayment(_ context.Context, paymentID, target, actorID, remarks string) (*models.Payment, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, p := range f.payments {
		if p.ID != paymentID {
			continue
		}
		if p.Status != models.PaymentStatusPending {
			return nil, errs.NewBusinessRuleError("Payment is already " + p.Status)
		}
		p.Status = target
		if target == models.PaymentStatusCompleted || target == models.PaymentStatusVerified {
			acc := f.store.accounts[p.AccountID]
			if acc != nil {
				acc.TotalBalance += p.Amount
			}
		}
		return p, nil
	}
	return nil, errs.NewNotFoundError("Payment not found")
}

func TestProcessPayment_OnlineStartsPending(t *testing.T) {
	svc, accounts, _ := newPaymentFixture()
	acc := seedAccount(accounts, 0, models.AccountStatusActive)

	p, err := svc.Process(context.Background(), "cust-1", dto.ProcessPaymentRequest{
		AccountID: acc.ID, Amount: 200, PaymentMethod: models.PaymentMethodOnline,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != models.PaymentStatusPending {
		t.Errorf("status = %q, want pending", p.Status)
	}
	if accounts.accounts[acc.ID].TotalBalance != 0 {
		t.Errorf("pending payment moved money: %v", accounts.accounts[acc.ID].TotalBalance)
	}
}

func TestProcessPayment_CashCompletesImmediately(t *testing.T) {
	svc, accounts, _ := newPaymentFixture()
	acc := seedAccount(accounts, 0, models.AccountStatusActive)

	p, err := svc.Process(context.Background(), "cust-1", dto.ProcessPaymentRequest{
		AccountID: acc.ID, Amount: 200, PaymentMethod: models.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != models.PaymentStatusCompleted {
		t.Errorf("status = %q, want completed", p.Status)
	}
	if accounts.accounts[acc.ID].TotalBalance != 200 {
		t.Errorf("balance = %v, want 200", accounts.accounts[acc.ID].TotalBalance)
	}
}

func TestProcessPayment_WrongOwner(t *testing.T) {
	svc, accounts, _ := newPaymentFixture()
	acc := seedAccount(accounts, 0, models.AccountStatusActive)

	_, err := svc.Process(context.Background(), "intruder", dto.ProcessPaymentRequest{
		AccountID: acc.ID, Amount: 200,
	})
	var fe *errs.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("expected ForbiddenError, got %T: %v", err, err)
	}
}

func TestVerifyPayment_SettlesAndApplies(t *testing.T) {
	svc, accounts, _ := newPaymentFixture()
	acc := seedAccount(accounts, 0, models.AccountStatusActive)
	ctx := context.Background()

	p, err := svc.Process(ctx, "cust-1", dto.ProcessPaymentRequest{AccountID: acc.ID, Amount: 300})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	verified, err := svc.Verify(ctx, p.ID, "coll-1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verified.Status != models.PaymentStatusVerified {
		t.Errorf("status = %q", verified.Status)
	}
	if accounts.accounts[acc.ID].TotalBalance != 300 {
		t.Errorf("balance = %v, want 300", accounts.accounts[acc.ID].TotalBalance)
	}

	// settling twice fails
	_, err = svc.Verify(ctx, p.ID, "coll-1")
	var be *errs.BusinessRuleError
	if !errors.As(err, &be) {
		t.Fatalf("expected BusinessRuleError, got %T: %v", err, err)
	}
}

func TestDeletePayment_SettledRefused(t *testing.T) {
	svc, accounts, _ := newPaymentFixture()
	acc := seedAccount(accounts, 0, models.AccountStatusActive)
	ctx := context.Background()

	settled, err := svc.Process(ctx, "cust-1", dto.ProcessPaymentRequest{
		AccountID: acc.ID, Amount: 100, PaymentMethod: models.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	err = svc.Delete(ctx, settled.ID)
	var be *errs.BusinessRuleError
	if !errors.As(err, &be) {
		t.Fatalf("expected BusinessRuleError, got %T: %v", err, err)
	}

	pending, err := svc.Process(ctx, "cust-1", dto.ProcessPaymentRequest{AccountID: acc.ID, Amount: 100})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if err := svc.Delete(ctx, pending.ID); err != nil {
		t.Fatalf("delete pending: %v", err)
	}
}

func TestUpdatePaymentStatus_InvalidTarget(t *testing.T) {
	svc, _, _ := newPaymentFixture()
	_, err := svc.UpdateStatus(context.Background(), "p1", "admin-1", dto.UpdatePaymentStatusRequest{Status: "refunded"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
