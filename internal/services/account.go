package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// accountStore is the Firestore storage interface for accounts.
type accountStore interface {
	Create(ctx context.Context, a *models.Account) error
	Get(ctx context.Context, id string) (*models.Account, error)
	Resolve(ctx context.Context, ref string) (*models.Account, error)
	List(ctx context.Context, filter dto.AccountListFilter) ([]*models.Account, int, error)
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
	UpdateStatus(ctx context.Context, id, status, remarks, updatedBy string) (*models.Account, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.AccountStats, error)
}

// accountLedger applies money movements atomically.
type accountLedger interface {
	Apply(ctx context.Context, p *models.Payment) (*models.Account, error)
}

// accountCustomerStore reads and writes the owning customer.
type accountCustomerStore interface {
	Get(ctx context.Context, id string) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
}

// accountCollectorStore resolves the assigned collector.
type accountCollectorStore interface {
	Get(ctx context.Context, id string) (*models.Collector, error)
}

// accountPlanStore resolves plans and maintains the subscriber counter.
type accountPlanStore interface {
	Get(ctx context.Context, id string) (*models.Plan, error)
	IncrementSubscribers(ctx context.Context, id string, delta int) error
}

type accountService struct {
	store      accountStore
	ledger     accountLedger
	customers  accountCustomerStore
	collectors accountCollectorStore
	plans      accountPlanStore
}

func NewAccountService(store accountStore, ledger accountLedger, customers accountCustomerStore, collectors accountCollectorStore, plans accountPlanStore) *accountService {
	return &accountService{
		store:      store,
		ledger:     ledger,
		customers:  customers,
		collectors: collectors,
		plans:      plans,
	}
}

func (s *accountService) Create(ctx context.Context, createdBy string, req dto.CreateAccountRequest) (*models.Account, error) {
	if req.AccountNumber == "" || req.CustomerID == "" || req.CollectorID == "" {
		return nil, errs.NewValidationError("accountNumber, customerId and collectorId are required")
	}
	if req.DailyAmount <= 0 {
		return nil, errs.NewValidationError("dailyAmount must be positive")
	}

	taken, err := s.store.AccountNumberExists(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewAlreadyExistsError("Account number already exists")
	}

	customer, err := s.customers.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.Status != models.CustomerStatusActive {
		return nil, errs.NewBusinessRuleError("Customer is not active")
	}
	collector, err := s.collectors.Get(ctx, req.CollectorID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if req.StartDate != "" {
		start, err = time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return nil, errs.NewValidationError("startDate must be YYYY-MM-DD")
		}
	}

	now := time.Now()
	acc := &models.Account{
		ID:            uuid.New().String(),
		AccountNumber: req.AccountNumber,
		AccountID:     req.AccountNumber,
		CustomerID:    customer.ID,
		CollectorID:   collector.ID,
		AccountType:   req.AccountType,
		DailyAmount:   req.DailyAmount,
		Status:        models.AccountStatusActive,
		OpeningDate:   now,
		StartDate:     start,
		Duration:      req.Duration,
		InterestRate:  req.InterestRate,
		PaymentMode:   req.PaymentMode,
		CustomerName:  customer.Name,
		CollectorName: collector.Name,
		CreatedBy:     createdBy,
		Remarks:       req.Remarks,
		Transactions:  []models.LedgerEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if acc.AccountType == "" {
		acc.AccountType = models.PlanTypeDaily
	}

	if req.PlanID != "" {
		plan, err := s.plans.Get(ctx, req.PlanID)
		if err != nil {
			return nil, err
		}
		if plan.Status != models.PlanStatusActive {
			return nil, errs.NewBusinessRuleError("Plan is not active")
		}
		acc.PlanID = plan.ID
		acc.PlanName = plan.Name
		acc.AccountType = plan.Type
		if acc.Duration == 0 {
			acc.Duration = plan.Duration
		}
		if acc.InterestRate == 0 {
			acc.InterestRate = plan.InterestRate
		}
	}

	if acc.Duration > 0 {
		acc.TotalDays = TotalDays(acc.AccountType, acc.Duration)
		maturity := MaturityDate(acc.AccountType, acc.Duration, acc.StartDate)
		acc.MaturityDate = &maturity
		acc.MaturityStatus = models.MaturityStatusPending
	}

	if err := s.store.Create(ctx, acc); err != nil {
		return nil, err
	}

	customer.TotalAccounts++
	customer.ActiveAccounts++
	customer.UpdatedAt = now
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	if acc.PlanID != "" {
		if err := s.plans.IncrementSubscribers(ctx, acc.PlanID, 1); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Get resolves an account by document id or account number.
func (s *accountService) Get(ctx context.Context, ref string) (*models.Account, error) {
	return s.store.Resolve(ctx, ref)
}

func (s *accountService) List(ctx context.Context, filter dto.AccountListFilter) ([]*models.Account, int, error) {
	return s.store.List(ctx, filter)
}

// AddTransaction applies a deposit or withdrawal directly, recording a
// completed payment alongside the ledger entry in one atomic step.
func (s *accountService) AddTransaction(ctx context.Context, ref, actorRole string, req dto.TransactionRequest) (*dto.TransactionResult, error) {
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("Transaction amount must be positive")
	}
	if req.Type != models.EntryTypeDeposit && req.Type != models.EntryTypeWithdrawal {
		return nil, errs.NewValidationError("Type must be deposit or withdrawal")
	}

	acc, err := s.store.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = models.PaymentMethodCash
	}
	p := &models.Payment{
		ID:            uuid.New().String(),
		AccountID:     acc.ID,
		CollectorID:   req.CollectedBy,
		Amount:        req.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: method,
		Type:          req.Type,
		Status:        models.PaymentStatusCompleted,
		ReceiptNumber: uuid.New().String(),
		CreatedByRole: actorRole,
	}

	updated, err := s.ledger.Apply(ctx, p)
	if err != nil {
		return nil, err
	}

	entry := updated.Transactions[len(updated.Transactions)-1]
	return &dto.TransactionResult{Account: updated, Transaction: &entry}, nil
}

// Transactions returns the embedded ledger, newest first.
func (s *accountService) Transactions(ctx context.Context, ref string) (*dto.AccountTransactions, error) {
	acc, err := s.store.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	entries := make([]models.LedgerEntry, len(acc.Transactions))
	copy(entries, acc.Transactions)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return &dto.AccountTransactions{AccountNumber: acc.AccountNumber, Transactions: entries}, nil
}

func (s *accountService) UpdateStatus(ctx context.Context, ref, updatedBy string, req dto.UpdateAccountStatusRequest) (*models.Account, error) {
	switch req.Status {
	case models.AccountStatusActive, models.AccountStatusClosed, models.AccountStatusSuspended,
		models.AccountStatusCompleted, models.AccountStatusMatured:
	default:
		return nil, errs.NewValidationError("Invalid status")
	}
	acc, err := s.store.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateStatus(ctx, acc.ID, req.Status, req.Remarks, updatedBy)
}

// Delete removes an account. A non-zero balance blocks deletion unless
// force is set; the customer's account counters are adjusted either way.
func (s *accountService) Delete(ctx context.Context, ref string, force bool) (*dto.DeleteAccountResult, error) {
	acc, err := s.store.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if acc.TotalBalance > 0 && !force {
		return nil, errs.NewBusinessRuleError("Account has a balance; use force to delete anyway")
	}

	if err := s.store.Delete(ctx, acc.ID); err != nil {
		return nil, err
	}

	customer, err := s.customers.Get(ctx, acc.CustomerID)
	if err == nil {
		if customer.TotalAccounts > 0 {
			customer.TotalAccounts--
		}
		if acc.Status == models.AccountStatusActive && customer.ActiveAccounts > 0 {
			customer.ActiveAccounts--
		}
		customer.TotalSavings -= acc.TotalBalance
		if customer.TotalSavings < 0 {
			customer.TotalSavings = 0
		}
		customer.UpdatedAt = time.Now()
		if err := s.customers.Update(ctx, customer); err != nil {
			return nil, err
		}
	} else if !errs.IsNotFound(err) {
		return nil, err
	}
	if acc.PlanID != "" {
		if err := s.plans.IncrementSubscribers(ctx, acc.PlanID, -1); err != nil {
			return nil, err
		}
	}

	return &dto.DeleteAccountResult{AccountNumber: acc.AccountNumber, Forced: force}, nil
}

func (s *accountService) Stats(ctx context.Context) (*dto.AccountStats, error) {
	return s.store.Stats(ctx)
}
