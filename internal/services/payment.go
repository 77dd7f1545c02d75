package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// paymentStore reads recorded payments.
type paymentStore interface {
	Get(ctx context.Context, id string) (*models.Payment, error)
	List(ctx context.Context, filter dto.PaymentListFilter) ([]*models.Payment, int, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.PaymentStats, error)
}

// paymentLedger owns the atomic payment mutations.
type paymentLedger interface {
	Apply(ctx context.Context, p *models.Payment) (*models.Account, error)
	SettlePayment(ctx context.Context, paymentID, target, actorID, remarks string) (*models.Payment, error)
}

// paymentAccountStore resolves the target account.
type paymentAccountStore interface {
	Resolve(ctx context.Context, ref string) (*models.Account, error)
}

type paymentService struct {
	store    paymentStore
	ledger   paymentLedger
	accounts paymentAccountStore
}

func NewPaymentService(store paymentStore, ledger paymentLedger, accounts paymentAccountStore) *paymentService {
	return &paymentService{store: store, ledger: ledger, accounts: accounts}
}

// Process records a customer-initiated deposit. Online payments start
// pending and settle after verification; cash is applied immediately.
func (s *paymentService) Process(ctx context.Context, customerID string, req dto.ProcessPaymentRequest) (*models.Payment, error) {
	if req.AccountID == "" {
		return nil, errs.NewValidationError("accountId is required")
	}
	if req.Amount <= 0 {
		return nil, errs.NewValidationError("Amount must be positive")
	}
	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodOnline
	}
	if method != models.PaymentMethodCash && method != models.PaymentMethodOnline {
		return nil, errs.NewValidationError("paymentMethod must be cash or online")
	}

	acc, err := s.accounts.Resolve(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if acc.CustomerID != customerID {
		return nil, errs.NewForbiddenError("Account does not belong to this customer")
	}

	status := models.PaymentStatusCompleted
	if method == models.PaymentMethodOnline {
		status = models.PaymentStatusPending
	}

	p := &models.Payment{
		ID:            uuid.New().String(),
		AccountID:     acc.ID,
		Amount:        req.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: method,
		Type:          models.EntryTypeDeposit,
		Status:        status,
		ReceiptNumber: uuid.New().String(),
		Remarks:       req.Remarks,
		CreatedByRole: "customer",
	}
	if _, err := s.ledger.Apply(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *paymentService) Get(ctx context.Context, id string) (*models.Payment, error) {
	return s.store.Get(ctx, id)
}

func (s *paymentService) List(ctx context.Context, filter dto.PaymentListFilter) ([]*models.Payment, int, error) {
	return s.store.List(ctx, filter)
}

// UpdateStatus settles a pending payment to the requested status.
func (s *paymentService) UpdateStatus(ctx context.Context, id, actorID string, req dto.UpdatePaymentStatusRequest) (*models.Payment, error) {
	switch req.Status {
	case models.PaymentStatusCompleted, models.PaymentStatusVerified, models.PaymentStatusFailed:
	default:
		return nil, errs.NewValidationError("Status must be completed, verified or failed")
	}
	return s.ledger.SettlePayment(ctx, id, req.Status, actorID, req.Remarks)
}

// Verify is the collector confirmation path for online payments.
func (s *paymentService) Verify(ctx context.Context, id, verifierID string) (*models.Payment, error) {
	return s.ledger.SettlePayment(ctx, id, models.PaymentStatusVerified, verifierID, "")
}

func (s *paymentService) AccountHistory(ctx context.Context, accountRef string, page dto.PageQuery) ([]*models.Payment, int, error) {
	acc, err := s.accounts.Resolve(ctx, accountRef)
	if err != nil {
		return nil, 0, err
	}
	return s.store.List(ctx, dto.PaymentListFilter{AccountID: acc.ID, Page: page})
}

// Delete removes a payment record. Settled payments moved money and stay;
// only pending and failed records can be deleted.
func (s *paymentService) Delete(ctx context.Context, id string) error {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Status == models.PaymentStatusCompleted || p.Status == models.PaymentStatusVerified {
		return errs.NewBusinessRuleError("Cannot delete a settled payment")
	}
	return s.store.Delete(ctx, id)
}

func (s *paymentService) Stats(ctx context.Context) (*dto.PaymentStats, error) {
	return s.store.Stats(ctx)
}
