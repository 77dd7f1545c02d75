package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// withdrawalStore is the Firestore storage interface for withdrawal requests.
type withdrawalStore interface {
	Create(ctx context.Context, w *models.Withdrawal) error
	Get(ctx context.Context, id string) (*models.Withdrawal, error)
	List(ctx context.Context, filter dto.WithdrawalListFilter) ([]*models.Withdrawal, int, error)
	HasPending(ctx context.Context, accountID string) (bool, error)
	Stats(ctx context.Context) (*dto.WithdrawalStats, error)
}

// withdrawalLedger applies approval decisions atomically.
type withdrawalLedger interface {
	ApproveWithdrawal(ctx context.Context, withdrawalID, processedBy, collectorID, remarks string) (*models.Withdrawal, error)
	RejectWithdrawal(ctx context.Context, withdrawalID, processedBy, remarks string) (*models.Withdrawal, error)
}

// withdrawalAccountStore resolves the account being drawn from.
type withdrawalAccountStore interface {
	Resolve(ctx context.Context, ref string) (*models.Account, error)
}

type withdrawalService struct {
	store    withdrawalStore
	ledger   withdrawalLedger
	accounts withdrawalAccountStore
}

func NewWithdrawalService(store withdrawalStore, ledger withdrawalLedger, accounts withdrawalAccountStore) *withdrawalService {
	return &withdrawalService{store: store, ledger: ledger, accounts: accounts}
}

// Request opens a withdrawal request. The balance check here is advisory;
// the binding check happens inside the approval transaction.
func (s *withdrawalService) Request(ctx context.Context, customerID string, req dto.CreateWithdrawalRequest) (*models.Withdrawal, error) {
	if req.AccountID == "" {
		return nil, errs.NewValidationError("accountId is required")
	}
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("Amount must be positive")
	}

	acc, err := s.accounts.Resolve(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if acc.CustomerID != customerID {
		return nil, errs.NewForbiddenError("Account does not belong to this customer")
	}
	if acc.Status != models.AccountStatusActive {
		return nil, errs.NewBusinessRuleError("Cannot withdraw from an inactive account")
	}
	if req.Amount > acc.TotalBalance {
		return nil, errs.NewBusinessRuleError("Insufficient account balance")
	}
	pending, err := s.store.HasPending(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, errs.NewBusinessRuleError("Account already has a pending withdrawal request")
	}

	now := time.Now()
	w := &models.Withdrawal{
		ID:              uuid.New().String(),
		AccountID:       acc.ID,
		CustomerID:      customerID,
		Amount:          req.Amount,
		Reason:          req.Reason,
		Status:          models.WithdrawalStatusPending,
		ReferenceNumber: uuid.New().String(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *withdrawalService) Get(ctx context.Context, id string) (*models.Withdrawal, error) {
	return s.store.Get(ctx, id)
}

func (s *withdrawalService) List(ctx context.Context, filter dto.WithdrawalListFilter) ([]*models.Withdrawal, int, error) {
	return s.store.List(ctx, filter)
}

// Approve applies the withdrawal. collectorID is empty when an admin
// approves.
func (s *withdrawalService) Approve(ctx context.Context, id, processedBy, collectorID, remarks string) (*models.Withdrawal, error) {
	return s.ledger.ApproveWithdrawal(ctx, id, processedBy, collectorID, remarks)
}

func (s *withdrawalService) Reject(ctx context.Context, id, processedBy, remarks string) (*models.Withdrawal, error) {
	return s.ledger.RejectWithdrawal(ctx, id, processedBy, remarks)
}

// UpdateStatus is the compatibility route: it maps a status body onto the
// approve/reject decisions.
func (s *withdrawalService) UpdateStatus(ctx context.Context, id, processedBy, collectorID string, req dto.UpdateWithdrawalStatusRequest) (*models.Withdrawal, error) {
	switch req.Status {
	case models.WithdrawalStatusApproved:
		return s.Approve(ctx, id, processedBy, collectorID, req.Remarks)
	case models.WithdrawalStatusRejected:
		return s.Reject(ctx, id, processedBy, req.Remarks)
	default:
		return nil, errs.NewValidationError("Status must be approved or rejected")
	}
}

func (s *withdrawalService) Stats(ctx context.Context) (*dto.WithdrawalStats, error) {
	return s.store.Stats(ctx)
}
