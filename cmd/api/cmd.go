package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/swasthikkulal/pigmy-backend/internal/bootstrap"
	"github.com/swasthikkulal/pigmy-backend/internal/config"
	"github.com/swasthikkulal/pigmy-backend/internal/crypto"
	"github.com/swasthikkulal/pigmy-backend/internal/handlers"
	"github.com/swasthikkulal/pigmy-backend/internal/middleware"
	"github.com/swasthikkulal/pigmy-backend/internal/response"
	"github.com/swasthikkulal/pigmy-backend/internal/router"
	"github.com/swasthikkulal/pigmy-backend/internal/services"
	"github.com/swasthikkulal/pigmy-backend/internal/store"
	"github.com/swasthikkulal/pigmy-backend/internal/token"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	secret, err := bs.JWTSecret(context.Background(), cfg)
	exitOnError("jwt secret resolution failed", err, bs.Log)
	tokens := token.NewIssuer(secret, cfg.TokenTTL)

	var cipher crypto.Cipher = crypto.Plaintext{}
	if cfg.KMSKeyName != "" {
		cipher = crypto.NewKMS(bs.KMS, cfg.KMSKeyName)
	}

	// stores
	adstore := store.NewAdminStore(bs.Firestore)
	clstore := store.NewCollectorStore(bs.Firestore)
	custore := store.NewCustomerStore(bs.Firestore, cipher)
	acstore := store.NewAccountStore(bs.Firestore)
	plstore := store.NewPlanStore(bs.Firestore)
	pystore := store.NewPaymentStore(bs.Firestore)
	wdstore := store.NewWithdrawalStore(bs.Firestore)
	ststore := store.NewStatementStore(bs.Firestore)
	fbstore := store.NewFeedbackStore(bs.Firestore)
	cfstore := store.NewCollectorFeedbackStore(bs.Firestore)
	ledger := store.NewLedgerStore(bs.Firestore)

	// services
	auserv := services.NewAuthService(adstore, clstore, custore, tokens)
	acserv := services.NewAccountService(acstore, ledger, custore, clstore, plstore)
	cuserv := services.NewCustomerService(custore, acstore)
	clserv := services.NewCollectorService(clstore, custore)
	plserv := services.NewPlanService(plstore)
	pyserv := services.NewPaymentService(pystore, ledger, acstore)
	wdserv := services.NewWithdrawalService(wdstore, ledger, acstore)
	stserv := services.NewStatementService(ststore, acstore)
	fbserv := services.NewFeedbackService(fbstore, cfstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Auth = middleware.NewMiddleware(tokens, rh)
	deps.AuthSvc = auserv
	deps.AccountSvc = acserv
	deps.CustomerSvc = cuserv
	deps.CollectorSvc = clserv
	deps.PlanSvc = plserv
	deps.PaymentSvc = pyserv
	deps.WithdrawalSvc = wdserv
	deps.StatementSvc = stserv
	deps.FeedbackSvc = fbserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), r)
	exitOnError("server start failed", err, bs.Log)
}
