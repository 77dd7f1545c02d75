package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// --- Fakes ---

type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]*models.Account)}
}

func (f *fakeAccountStore) Create(_ context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountStore) Get(_ context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, errs.NewNotFoundError("Account not found")
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountStore) Resolve(ctx context.Context, ref string) (*models.Account, error) {
	if a, err := f.Get(ctx, ref); err == nil {
		return a, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.AccountNumber == ref {
			cp := *a
			return &cp, nil
		}
	}
	return nil, errs.NewNotFoundError("Account not found")
}

func (f *fakeAccountStore) List(_ context.Context, _ dto.AccountListFilter) ([]*models.Account, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Account, 0, len(f.accounts))
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (f *fakeAccountStore) AccountNumberExists(_ context.Context, accountNumber string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.AccountNumber == accountNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountStore) UpdateStatus(_ context.Context, id, status, remarks, updatedBy string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, errs.NewNotFoundError("Account not found")
	}
	a.Status = status
	a.Remarks = remarks
	a.UpdatedBy = updatedBy
	cp := *a
	return &cp, nil
}

func (f *fakeAccountStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return errs.NewNotFoundError("Account not found")
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountStore) Stats(_ context.Context) (*dto.AccountStats, error) {
	return &dto.AccountStats{}, nil
}

// fakeLedger mirrors the transactional balance rules, serialized by the
// store mutex so concurrent calls contend the way Firestore transactions do.
type fakeLedger struct {
	store    *fakeAccountStore
	payments []*models.Payment
}

func (f *fakeLedger) Apply(_ context.Context, p *models.Payment) (*models.Account, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	acc, ok := f.store.accounts[p.AccountID]
	if !ok {
		return nil, errs.NewNotFoundError("Account not found")
	}
	if acc.Status != models.AccountStatusActive {
		return nil, errs.NewBusinessRuleError("Cannot add transaction to inactive account")
	}
	if p.Amount <= 0 {
		return nil, errs.NewValidationError("Transaction amount must be positive")
	}

	entry := models.LedgerEntry{
		ReferenceNumber: p.ReceiptNumber,
		Date:            p.PaymentDate,
		Amount:          p.Amount,
		Type:            p.Type,
		Method:          p.PaymentMethod,
		Status:          models.EntryStatusCompleted,
		CollectedBy:     p.CollectorID,
	}

	if p.Status == models.PaymentStatusPending {
		entry.Status = models.EntryStatusPending
		acc.Transactions = append(acc.Transactions, entry)
		f.payments = append(f.payments, p)
		cp := *acc
		return &cp, nil
	}

	switch p.Type {
	case models.EntryTypeDeposit:
		acc.TotalBalance += p.Amount
	case models.EntryTypeWithdrawal:
		if p.Amount > acc.TotalBalance {
			return nil, errs.NewBusinessRuleError("Insufficient account balance")
		}
		acc.TotalBalance -= p.Amount
	default:
		return nil, errs.NewValidationError("Invalid transaction type")
	}
	acc.Transactions = append(acc.Transactions, entry)
	f.payments = append(f.payments, p)
	cp := *acc
	return &cp, nil
}

type fakeCustomerDirectory struct {
	mu        sync.Mutex
	customers map[string]*models.Customer
}

func newFakeCustomerDirectory() *fakeCustomerDirectory {
	return &fakeCustomerDirectory{customers: make(map[string]*models.Customer)}
}

func (f *fakeCustomerDirectory) Get(_ context.Context, id string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok {
		return nil, errs.NewNotFoundError("Customer not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerDirectory) Update(_ context.Context, c *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers[c.ID] = c
	return nil
}

type fakeCollectorDirectory struct {
	collectors map[string]*models.Collector
}

func (f *fakeCollectorDirectory) Get(_ context.Context, id string) (*models.Collector, error) {
	c, ok := f.collectors[id]
	if !ok {
		return nil, errs.NewNotFoundError("Collector not found")
	}
	return c, nil
}

type fakePlanDirectory struct {
	plans       map[string]*models.Plan
	subscribers map[string]int
}

func (f *fakePlanDirectory) Get(_ context.Context, id string) (*models.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, errs.NewNotFoundError("Plan not found")
	}
	return p, nil
}

func (f *fakePlanDirectory) IncrementSubscribers(_ context.Context, id string, delta int) error {
	if f.subscribers == nil {
		f.subscribers = make(map[string]int)
	}
	f.subscribers[id] += delta
	return nil
}

func newAccountFixture() (*accountService, *fakeAccountStore, *fakeCustomerDirectory) {
	store := newFakeAccountStore()
	customers := newFakeCustomerDirectory()
	customers.customers["cust-1"] = &models.Customer{
		ID:         "cust-1",
		CustomerID: "CUST001",
		Name:       "Raghav",
		Status:     models.CustomerStatusActive,
	}
	collectors := &fakeCollectorDirectory{collectors: map[string]*models.Collector{
		"coll-1": {ID: "coll-1", CollectorID: "COL001", Name: "Meera", Status: models.CollectorStatusActive},
	}}
	plans := &fakePlanDirectory{plans: map[string]*models.Plan{
		"plan-1": {ID: "plan-1", PlanID: "PLAN001", Name: "Daily 100", Type: models.PlanTypeDaily,
			Amount: 100, Duration: 365, InterestRate: 5, Status: models.PlanStatusActive},
	}}
	svc := NewAccountService(store, &fakeLedger{store: store}, customers, collectors, plans)
	return svc, store, customers
}

func seedAccount(store *fakeAccountStore, balance float64, status string) *models.Account {
	acc := &models.Account{
		ID:            uuid.New().String(),
		AccountNumber: "ACC-" + uuid.New().String()[:8],
		CustomerID:    "cust-1",
		CollectorID:   "coll-1",
		Status:        status,
		TotalBalance:  balance,
		Transactions:  []models.LedgerEntry{},
	}
	store.accounts[acc.ID] = acc
	return acc
}

// --- Create ---

func TestCreateAccount_OK(t *testing.T) {
	svc, _, customers := newAccountFixture()

	acc, err := svc.Create(context.Background(), "admin-1", dto.CreateAccountRequest{
		AccountNumber: "ACC1001",
		CustomerID:    "cust-1",
		CollectorID:   "coll-1",
		PlanID:        "plan-1",
		DailyAmount:   100,
		StartDate:     "2024-01-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.PlanName != "Daily 100" {
		t.Errorf("expected plan name copied onto account, got %q", acc.PlanName)
	}
	if acc.InterestRate != 5 {
		t.Errorf("expected interest rate copied from plan, got %v", acc.InterestRate)
	}
	if acc.TotalDays != 365 {
		t.Errorf("expected totalDays 365, got %d", acc.TotalDays)
	}
	if acc.MaturityStatus != models.MaturityStatusPending {
		t.Errorf("expected pending maturity status, got %q", acc.MaturityStatus)
	}

	c, _ := customers.Get(context.Background(), "cust-1")
	if c.TotalAccounts != 1 || c.ActiveAccounts != 1 {
		t.Errorf("expected customer counters 1/1, got %d/%d", c.TotalAccounts, c.ActiveAccounts)
	}
}

func TestCreateAccount_DuplicateNumber(t *testing.T) {
	svc, store, _ := newAccountFixture()
	acc := seedAccount(store, 0, models.AccountStatusActive)

	_, err := svc.Create(context.Background(), "admin-1", dto.CreateAccountRequest{
		AccountNumber: acc.AccountNumber,
		CustomerID:    "cust-1",
		CollectorID:   "coll-1",
		DailyAmount:   100,
	})
	var ae *errs.AlreadyExistsError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AlreadyExistsError, got %T: %v", err, err)
	}
}

func TestCreateAccount_UnknownCustomer(t *testing.T) {
	svc, _, _ := newAccountFixture()
	_, err := svc.Create(context.Background(), "admin-1", dto.CreateAccountRequest{
		AccountNumber: "ACC1002",
		CustomerID:    "nope",
		CollectorID:   "coll-1",
		DailyAmount:   100,
	})
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

// --- Transactions ---

func TestAddTransaction_BalanceFollowsLedger(t *testing.T) {
	svc, store, _ := newAccountFixture()
	acc := seedAccount(store, 0, models.AccountStatusActive)

	steps := []struct {
		typ    string
		amount float64
	}{
		{models.EntryTypeDeposit, 500},
		{models.EntryTypeDeposit, 250},
		{models.EntryTypeWithdrawal, 100},
		{models.EntryTypeDeposit, 50},
		{models.EntryTypeWithdrawal, 200},
	}
	var want float64
	for _, s := range steps {
		res, err := svc.AddTransaction(context.Background(), acc.ID, "admin", dto.TransactionRequest{
			Amount: s.amount, Type: s.typ, CollectedBy: "coll-1",
		})
		if err != nil {
			t.Fatalf("%s %v: unexpected error: %v", s.typ, s.amount, err)
		}
		if s.typ == models.EntryTypeDeposit {
			want += s.amount
		} else {
			want -= s.amount
		}
		if res.Account.TotalBalance != want {
			t.Fatalf("after %s %v: balance %v, want %v", s.typ, s.amount, res.Account.TotalBalance, want)
		}
		if res.Transaction.Amount != s.amount || res.Transaction.Type != s.typ {
			t.Fatalf("entry mismatch: %+v", res.Transaction)
		}
	}
}

func TestAddTransaction_OverBalanceRejected(t *testing.T) {
	svc, store, _ := newAccountFixture()
	acc := seedAccount(store, 100, models.AccountStatusActive)

	_, err := svc.AddTransaction(context.Background(), acc.ID, "admin", dto.TransactionRequest{
		Amount: 150, Type: models.EntryTypeWithdrawal,
	})
	var be *errs.BusinessRuleError
	if !errors.As(err, &be) {
		t.Fatalf("expected BusinessRuleError, got %T: %v", err, err)
	}

	after, _ := store.Get(context.Background(), acc.ID)
	if after.TotalBalance != 100 {
		t.Errorf("balance changed on rejected withdrawal: %v", after.TotalBalance)
	}
	if len(after.Transactions) != 0 {
		t.Errorf("entry recorded for rejected withdrawal")
	}
}

func TestAddTransaction_InactiveAccountRejected(t *testing.T) {
	svc, store, _ := newAccountFixture()
	acc := seedAccount(store, 100, models.AccountStatusSuspended)

	_, err := svc.AddTransaction(context.Background(), acc.ID, "admin", dto.TransactionRequest{
		Amount: 50, Type: models.EntryTypeDeposit,
	})
	var be *errs.BusinessRuleError
	if !errors.As(err, &be) {
		t.Fatalf("expected BusinessRuleError, got %T: %v", err, err)
	}
}

func TestAddTransaction_InvalidType(t *testing.T) {
	svc, store, _ := newAccountFixture()
	acc := seedAccount(store, 100, models.AccountStatusActive)

	_, err := svc.AddTransaction(context.Background(), acc.ID, "admin", dto.TransactionRequest{
		Amount: 50, Type: "transfer",
	})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

// Concurrent withdrawals must never draw the balance below zero: with 100
// on the account and ten racing 60-rupee withdrawals, exactly one wins.
func TestAddTransaction_ConcurrentWithdrawals(t *testing.T) {
	svc, store, _ := newAccountFixture()
	acc := seedAccount(store, 100, models.AccountStatusActive)

	const attempts = 10
	var wg sync.WaitGroup
	errsCh := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddTransaction(context.Background(), acc.ID, "admin", dto.TransactionRequest{
				Amount: 60, Type: models.EntryTypeWithdrawal,
			})
			errsCh <- err
		}()
	}
	wg.Wait()
	close(errsCh)

	succeeded := 0
	for err := range errsCh {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("expected exactly 1 withdrawal to succeed, got %d", succeeded)
	}
	after, _ := store.Get(context.Background(), acc.ID)
	if after.TotalBalance != 40 {
		t.Errorf("expected final balance 40, got %v", after.TotalBalance)
	}
}

// --- Delete ---

func TestDeleteAccount_BalanceRequiresForce(t *testing.T) {
	svc, store, _ := newAccountFixture()
	acc := seedAccount(store, 500, models.AccountStatusActive)

	_, err := svc.Delete(context.Background(), acc.ID, false)
	var be *errs.BusinessRuleError
	if !errors.As(err, &be) {
		t.Fatalf("expected BusinessRuleError, got %T: %v", err, err)
	}

	res, err := svc.Delete(context.Background(), acc.ID, true)
	if err != nil {
		t.Fatalf("forced delete failed: %v", err)
	}
	if !res.Forced {
		t.Error("expected forced flag set")
	}
	if _, err := store.Get(context.Background(), acc.ID); !errs.IsNotFound(err) {
		t.Error("account still present after forced delete")
	}
}

func TestGetAccount_ByNumberFallback(t *testing.T) {
	svc, store, _ := newAccountFixture()
	acc := seedAccount(store, 0, models.AccountStatusActive)

	got, err := svc.Get(context.Background(), acc.AccountNumber)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != acc.ID {
		t.Errorf("resolved wrong account: %s", got.ID)
	}
}
