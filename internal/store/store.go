package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"

	"github.com/swasthikkulal/pigmy-backend/internal/errs"
)

// Firestore collection names.
const (
	colAdmins            = "admins"
	colCollectors        = "collectors"
	colCustomers         = "customers"
	colPlans             = "plans"
	colAccounts          = "accounts"
	colPayments          = "payments"
	colWithdrawals       = "withdrawals"
	colStatements        = "statements"
	colFeedback          = "feedback"
	colCollectorFeedback = "collector_feedback"
)

// countDocs runs a server-side count aggregation over the query.
func countDocs(ctx context.Context, q firestore.Query) (int, error) {
	res, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, errs.FromStore("count", "documents", err)
	}
	v, ok := res["total"].(*firestorepb.Value)
	if !ok {
		return 0, errs.NewDatabaseError("count", "unexpected aggregation result")
	}
	return int(v.GetIntegerValue()), nil
}

// exists reports whether the query matches at least one document.
func exists(ctx context.Context, q firestore.Query) (bool, error) {
	docs, err := q.Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return false, errs.FromStore("exists", "documents", err)
	}
	return len(docs) > 0, nil
}
