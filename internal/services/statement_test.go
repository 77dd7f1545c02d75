package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type fakeStatementStore struct {
	statements map[string]*models.Statement
}

func (f *fakeStatementStore) Create(_ context.Context, st *models.Statement) error {
	f.statements[st.ID] = st
	return nil
}

func (f *fakeStatementStore) Get(_ context.Context, id string) (*models.Statement, error) {
	st, ok := f.statements[id]
	if !ok {
		return nil, errs.NewNotFoundError("Statement not found")
	}
	return st, nil
}

func (f *fakeStatementStore) List(_ context.Context, _ dto.StatementListFilter) ([]*models.Statement, int, error) {
	out := make([]*models.Statement, 0, len(f.statements))
	for _, st := range f.statements {
		out = append(out, st)
	}
	return out, len(out), nil
}

func newStatementFixture() (*statementService, *fakeAccountStore) {
	accounts := newFakeAccountStore()
	store := &fakeStatementStore{statements: make(map[string]*models.Statement)}
	return NewStatementService(store, accounts), accounts
}

func entry(date string, amount float64, typ, status string) models.LedgerEntry {
	d, _ := time.Parse("2006-01-02", date)
	return models.LedgerEntry{Date: d, Amount: amount, Type: typ, Status: status}
}

func TestGenerateStatement_Totals(t *testing.T) {
	svc, accounts := newStatementFixture()
	acc := seedAccount(accounts, 0, models.AccountStatusActive)
	acc.Transactions = []models.LedgerEntry{
		// before the window: net opening 300
		entry("2024-01-05", 500, models.EntryTypeDeposit, models.EntryStatusCompleted),
		entry("2024-01-20", 200, models.EntryTypeWithdrawal, models.EntryStatusCompleted),
		// inside the window
		entry("2024-02-01", 100, models.EntryTypeDeposit, models.EntryStatusCompleted),
		entry("2024-02-15", 250, models.EntryTypeDeposit, models.EntryStatusCompleted),
		entry("2024-02-29", 50, models.EntryTypeWithdrawal, models.EntryStatusCompleted),
		// pending entries never count
		entry("2024-02-20", 999, models.EntryTypeDeposit, models.EntryStatusPending),
		// after the window
		entry("2024-03-02", 400, models.EntryTypeDeposit, models.EntryStatusCompleted),
	}

	st, err := svc.Generate(context.Background(), "admin-1", dto.GenerateStatementRequest{
		AccountID: acc.ID,
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.OpeningBalance != 300 {
		t.Errorf("opening = %v, want 300", st.OpeningBalance)
	}
	if st.TotalDeposits != 350 {
		t.Errorf("deposits = %v, want 350", st.TotalDeposits)
	}
	if st.TotalWithdrawals != 50 {
		t.Errorf("withdrawals = %v, want 50", st.TotalWithdrawals)
	}
	if st.ClosingBalance != 600 {
		t.Errorf("closing = %v, want 600", st.ClosingBalance)
	}
	if st.Type != models.StatementTypeMonthly {
		t.Errorf("type defaulted to %q", st.Type)
	}
}

func TestGenerateStatement_InclusiveEndDate(t *testing.T) {
	svc, accounts := newStatementFixture()
	acc := seedAccount(accounts, 0, models.AccountStatusActive)
	acc.Transactions = []models.LedgerEntry{
		entry("2024-02-29", 75, models.EntryTypeDeposit, models.EntryStatusCompleted),
	}

	st, err := svc.Generate(context.Background(), "admin-1", dto.GenerateStatementRequest{
		AccountID: acc.ID, StartDate: "2024-02-01", EndDate: "2024-02-29",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.TotalDeposits != 75 {
		t.Errorf("entry on the end date excluded: deposits = %v", st.TotalDeposits)
	}
}

func TestGenerateStatement_BadRange(t *testing.T) {
	svc, accounts := newStatementFixture()
	acc := seedAccount(accounts, 0, models.AccountStatusActive)

	_, err := svc.Generate(context.Background(), "admin-1", dto.GenerateStatementRequest{
		AccountID: acc.ID, StartDate: "2024-03-01", EndDate: "2024-02-01",
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}

	_, err = svc.Generate(context.Background(), "admin-1", dto.GenerateStatementRequest{
		AccountID: acc.ID, StartDate: "01/02/2024", EndDate: "2024-02-29",
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for bad date format, got %T: %v", err, err)
	}
}
