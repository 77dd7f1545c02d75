package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/crypto"
	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

// customerStore persists customers with Aadhaar and PAN numbers encrypted
// at rest through the configured Cipher.
type customerStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
	cipher     crypto.Cipher
}

func NewCustomerStore(client *firestore.Client, cipher crypto.Cipher) *customerStore {
	return &customerStore{
		client:     client,
		collection: client.Collection(colCustomers),
		cipher:     cipher,
	}
}

func (s *customerStore) Create(ctx context.Context, c *models.Customer) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	enc, err := s.seal(ctx, c)
	if err != nil {
		return err
	}
	if _, err := s.collection.Doc(c.ID).Create(ctx, enc); err != nil {
		return errs.FromStore("customer.create", "Customer", err)
	}
	return nil
}

func (s *customerStore) Get(ctx context.Context, id string) (*models.Customer, error) {
	doc, err := s.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.FromStore("customer.get", "Customer", err)
	}
	return s.decode(ctx, doc)
}

func (s *customerStore) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	docs, err := s.collection.Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.FromStore("customer.getByEmail", "Customer", err)
	}
	if len(docs) == 0 {
		return nil, errs.NewNotFoundError("Customer not found")
	}
	return s.decode(ctx, docs[0])
}

// List applies the status filter and pagination; customers soft-deleted via
// status are excluded unless the filter opts in.
func (s *customerStore) List(ctx context.Context, filter dto.CustomerListFilter) ([]*models.Customer, int, error) {
	q := s.collection.Query
	if filter.Status != "" {
		q = q.Where("status", "==", filter.Status)
	} else if !filter.IncludeDeleted {
		q = q.Where("status", "in", []string{
			models.CustomerStatusActive,
			models.CustomerStatusInactive,
			models.CustomerStatusSuspended,
		})
	}
	if filter.CollectorID != "" {
		q = q.Where("collectorId", "==", filter.CollectorID)
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
		return nil, 0, errs.FromStore("customer.list", "Customer", err)
	}

	customers := make([]*models.Customer, 0, len(docs))
	for _, d := range docs {
		c, err := s.decode(ctx, d)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, total, nil
}

func (s *customerStore) Update(ctx context.Context, c *models.Customer) error {
	c.UpdatedAt = time.Now()
	enc, err := s.seal(ctx, c)
	if err != nil {
		return err
	}
	if _, err := s.collection.Doc(c.ID).Set(ctx, enc); err != nil {
		return errs.FromStore("customer.update", "Customer", err)
	}
	return nil
}

// Delete removes the document permanently (the original kept hard delete).
func (s *customerStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.Doc(id).Delete(ctx); err != nil {
		return errs.FromStore("customer.delete", "Customer", err)
	}
	return nil
}

// FieldExists reports a duplicate on a unique field, ignoring excludeID.
// KYC fields are matched through their blind-index hash because KMS
// ciphertext is not deterministic.
func (s *customerStore) FieldExists(ctx context.Context, field, value, excludeID string) (bool, error) {
	probe := value
	switch field {
	case "aadhaarNumber":
		field, probe = "aadhaarHash", blindIndex(value)
	case "panNumber":
		field, probe = "panHash", blindIndex(value)
	}
	docs, err := s.collection.Where(field, "==", probe).Limit(2).Documents(ctx).GetAll()
	if err != nil {
		return false, errs.FromStore("customer.fieldExists", "Customer", err)
	}
	for _, d := range docs {
		if d.Ref.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *customerStore) seal(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	sealed := *c
	var err error
	if sealed.AadhaarNumber != "" {
		sealed.AadhaarHash = blindIndex(c.AadhaarNumber)
		if sealed.AadhaarNumber, err = s.cipher.Encrypt(ctx, c.AadhaarNumber); err != nil {
			return nil, errs.NewEncryptionError(err.Error())
		}
	}
	if sealed.PANNumber != "" {
		sealed.PANHash = blindIndex(c.PANNumber)
		if sealed.PANNumber, err = s.cipher.Encrypt(ctx, c.PANNumber); err != nil {
			return nil, errs.NewEncryptionError(err.Error())
		}
	}
	return &sealed, nil
}

func blindIndex(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func (s *customerStore) decode(ctx context.Context, doc *firestore.DocumentSnapshot) (*models.Customer, error) {
	var c models.Customer
	if err := doc.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("customer.decode", err.Error())
	}
	var err error
	if c.AadhaarNumber != "" {
		if c.AadhaarNumber, err = s.cipher.Decrypt(ctx, c.AadhaarNumber); err != nil {
			return nil, errs.NewEncryptionError(err.Error())
		}
	}
	if c.PANNumber != "" {
		if c.PANNumber, err = s.cipher.Decrypt(ctx, c.PANNumber); err != nil {
			return nil, errs.NewEncryptionError(err.Error())
		}
	}
	return &c, nil
}
