package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// statementStore is the Firestore storage interface for statements.
type statementStore interface {
	Create(ctx context.Context, st *models.Statement) error
	Get(ctx context.Context, id string) (*models.Statement, error)
	List(ctx context.Context, filter dto.StatementListFilter) ([]*models.Statement, int, error)
}

// statementAccountStore resolves the account whose ledger is summarized.
type statementAccountStore interface {
	Resolve(ctx context.Context, ref string) (*models.Account, error)
}

type statementService struct {
	store    statementStore
	accounts statementAccountStore
}

func NewStatementService(store statementStore, accounts statementAccountStore) *statementService {
	return &statementService{store: store, accounts: accounts}
}

// Generate summarizes the account's ledger over [startDate, endDate]. Only
// settled entries count; the closing balance replays the ledger rather than
// trusting the cached account balance.
func (s *statementService) Generate(ctx context.Context, generatedBy string, req dto.GenerateStatementRequest) (*models.Statement, error) {
	if req.AccountID == "" {
		return nil, errs.NewValidationError("accountId is required")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, errs.NewValidationError("startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, errs.NewValidationError("endDate must be YYYY-MM-DD")
	}
	end = end.AddDate(0, 0, 1) // inclusive end date
	if !start.Before(end) {
		return nil, errs.NewValidationError("startDate must be before endDate")
	}
	stType := req.Type
	if stType == "" {
		stType = models.StatementTypeMonthly
	}
	switch stType {
	case models.StatementTypeMonthly, models.StatementTypeQuarterly, models.StatementTypeYearly:
	default:
		return nil, errs.NewValidationError("Invalid statement type")
	}

	acc, err := s.accounts.Resolve(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	opening := decimal.Zero
	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for _, e := range acc.Transactions {
		if e.Status != models.EntryStatusCompleted {
			continue
		}
		amount := decimal.NewFromFloat(e.Amount)
		switch {
		case e.Date.Before(start):
			if e.Type == models.EntryTypeDeposit {
				opening = opening.Add(amount)
			} else {
				opening = opening.Sub(amount)
			}
		case e.Date.Before(end):
			if e.Type == models.EntryTypeDeposit {
				deposits = deposits.Add(amount)
			} else {
				withdrawals = withdrawals.Add(amount)
			}
		}
	}
	closing := opening.Add(deposits).Sub(withdrawals)

	now := time.Now()
	st := &models.Statement{
		ID:               uuid.New().String(),
		AccountID:        acc.ID,
		CustomerID:       acc.CustomerID,
		StartDate:        start,
		EndDate:          end.AddDate(0, 0, -1),
		Type:             stType,
		OpeningBalance:   opening.Round(2).InexactFloat64(),
		ClosingBalance:   closing.Round(2).InexactFloat64(),
		TotalDeposits:    deposits.Round(2).InexactFloat64(),
		TotalWithdrawals: withdrawals.Round(2).InexactFloat64(),
		GeneratedBy:      generatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *statementService) Get(ctx context.Context, id string) (*models.Statement, error) {
	return s.store.Get(ctx, id)
}

func (s *statementService) List(ctx context.Context, filter dto.StatementListFilter) ([]*models.Statement, int, error) {
	return s.store.List(ctx, filter)
}
