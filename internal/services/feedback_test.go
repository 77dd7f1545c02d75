package services

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/swasthikkulal/pigmy-backend/internal/dto"
	"github.com/swasthikkulal/pigmy-backend/internal/errs"
	"github.com/swasthikkulal/pigmy-backend/internal/models"
)

type fakeFeedbackStore struct {
	items map[string]*models.Feedback
}

func (f *fakeFeedbackStore) Create(_ context.Context, fb *models.Feedback) error {
	f.items[fb.ID] = fb
	return nil
}

func (f *fakeFeedbackStore) Get(_ context.Context, id string) (*models.Feedback, error) {
	fb, ok := f.items[id]
	if !ok {
		return nil, errs.NewNotFoundError("Feedback not found")
	}
	return fb, nil
}

func (f *fakeFeedbackStore) List(_ context.Context, _ dto.FeedbackListFilter) ([]*models.Feedback, int, error) {
	out := make([]*models.Feedback, 0, len(f.items))
	for _, fb := range f.items {
		out = append(out, fb)
	}
	return out, len(out), nil
}

func (f *fakeFeedbackStore) ListByCustomer(_ context.Context, customerID string) ([]*models.Feedback, error) {
	out := make([]*models.Feedback, 0)
	for _, fb := range f.items {
		if fb.CustomerID == customerID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackStore) Update(_ context.Context, id string, updates []firestore.Update) (*models.Feedback, error) {
	fb, ok := f.items[id]
	if !ok {
		return nil, errs.NewNotFoundError("Feedback not found")
	}
	for _, u := range updates {
		switch u.Path {
		case "status":
			fb.Status = u.Value.(string)
		case "response":
			fb.Response = u.Value.(*models.FeedbackResponse)
		}
	}
	return fb, nil
}

func (f *fakeFeedbackStore) Overview(_ context.Context) (*dto.FeedbackOverview, error) {
	return &dto.FeedbackOverview{Total: len(f.items)}, nil
}

type fakeCollectorFeedbackStore struct {
	items map[string]*models.CollectorFeedback
}

func (f *fakeCollectorFeedbackStore) Create(_ context.Context, fb *models.CollectorFeedback) error {
	f.items[fb.ID] = fb
	return nil
}

func (f *fakeCollectorFeedbackStore) List(_ context.Context, status string, _ dto.PageQuery) ([]*models.CollectorFeedback, int, error) {
	out := make([]*models.CollectorFeedback, 0)
	for _, fb := range f.items {
		if status != "" && fb.Status != status {
			continue
		}
		out = append(out, fb)
	}
	return out, len(out), nil
}

func (f *fakeCollectorFeedbackStore) ListBySubmitter(_ context.Context, collectorID string) ([]*models.CollectorFeedback, error) {
	out := make([]*models.CollectorFeedback, 0)
	for _, fb := range f.items {
		if fb.SubmittedBy == collectorID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (f *fakeCollectorFeedbackStore) Update(_ context.Context, id string, updates []firestore.Update) (*models.CollectorFeedback, error) {
	fb, ok := f.items[id]
	if !ok {
		return nil, errs.NewNotFoundError("Feedback not found")
	}
	for _, u := range updates {
		switch u.Path {
		case "status":
			fb.Status = u.Value.(string)
		case "adminNotes":
			fb.AdminNotes = u.Value.(string)
		}
	}
	return fb, nil
}

func newFeedbackFixture() *feedbackService {
	return NewFeedbackService(
		&fakeFeedbackStore{items: make(map[string]*models.Feedback)},
		&fakeCollectorFeedbackStore{items: make(map[string]*models.CollectorFeedback)},
	)
}

func TestSubmitFeedback_PriorityFromRating(t *testing.T) {
	svc := newFeedbackFixture()
	ctx := context.Background()

	cases := []struct {
		rating int
		want   string
	}{
		{1, models.FeedbackPriorityHigh},
		{2, models.FeedbackPriorityHigh},
		{3, models.FeedbackPriorityMedium},
		{4, models.FeedbackPriorityLow},
		{5, models.FeedbackPriorityLow},
	}
	for _, c := range cases {
		fb, err := svc.Submit(ctx, "cust-1", dto.CreateFeedbackRequest{
			Subject: "s", Message: "m", Rating: c.rating,
		})
		if err != nil {
			t.Fatalf("rating %d: %v", c.rating, err)
		}
		if fb.Priority != c.want {
			t.Errorf("rating %d: priority = %q, want %q", c.rating, fb.Priority, c.want)
		}
		if fb.Status != models.FeedbackStatusOpen {
			t.Errorf("rating %d: status = %q", c.rating, fb.Status)
		}
	}
}

func TestSubmitFeedback_RatingOutOfRange(t *testing.T) {
	svc := newFeedbackFixture()
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), "cust-1", dto.CreateFeedbackRequest{
			Subject: "s", Message: "m", Rating: rating,
		})
		var ve *errs.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("rating %d: expected ValidationError, got %T: %v", rating, err, err)
		}
	}
}

func TestUpdateFeedbackStatus_WithResponse(t *testing.T) {
	svc := newFeedbackFixture()
	ctx := context.Background()

	fb, err := svc.Submit(ctx, "cust-1", dto.CreateFeedbackRequest{Subject: "s", Message: "m", Rating: 2})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, fb.ID, "admin-1", dto.UpdateFeedbackStatusRequest{
		Status: models.FeedbackStatusResolved, ResponseMessage: "fixed",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.FeedbackStatusResolved {
		t.Errorf("status = %q", updated.Status)
	}
	if updated.Response == nil || updated.Response.Message != "fixed" || updated.Response.RespondedBy != "admin-1" {
		t.Errorf("response = %+v", updated.Response)
	}
}

func TestCollectorFeedback_Flow(t *testing.T) {
	svc := newFeedbackFixture()
	ctx := context.Background()

	fb, err := svc.SubmitCollector(ctx, "coll-1", dto.CreateCollectorFeedbackRequest{
		Message: "route too long", Rating: 3, Category: "workload",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fb.Status != models.CollectorFeedbackStatusPending {
		t.Errorf("status = %q", fb.Status)
	}

	mine, err := svc.ListCollectorMine(ctx, "coll-1")
	if err != nil || len(mine) != 1 {
		t.Fatalf("mine = %v, err %v", mine, err)
	}

	if _, err := svc.UpdateCollectorStatus(ctx, fb.ID, dto.UpdateCollectorFeedbackStatusRequest{
		Status: models.CollectorFeedbackStatusReviewed,
	}); err != nil {
		t.Fatalf("update status: %v", err)
	}
	noted, err := svc.AddCollectorNotes(ctx, fb.ID, dto.CollectorFeedbackNotesRequest{AdminNotes: "rebalance area"})
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if noted.AdminNotes != "rebalance area" {
		t.Errorf("notes = %q", noted.AdminNotes)
	}
}
