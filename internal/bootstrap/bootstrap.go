package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	gcpkms "cloud.google.com/go/kms/apiv1"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/swasthikkulal/pigmy-backend/internal/config"
	"github.com/swasthikkulal/pigmy-backend/internal/store"
	"github.com/swasthikkulal/pigmy-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	KMS       *gcpkms.KeyManagementClient
	Secrets   *secretmanager.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel)
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	if cfg.KMSKeyName != "" {
		bs.KMS, err = InitKMS(applicationCtx)
		if err != nil {
			return bs, err
		}
	}
	if cfg.JWTSecretName != "" {
		bs.Secrets, err = InitSecretManager(applicationCtx)
		if err != nil {
			return bs, err
		}
	}

	return bs, nil
}

// JWTSecret resolves the token signing key. A Secret Manager name wins over
// the plain env value; local runs set JWTSECRET directly.
func (bs *Bootstrap) JWTSecret(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.JWTSecretName != "" {
		return store.NewSecretsStore(bs.Secrets, cfg.ProjectID).Get(ctx, cfg.JWTSecretName)
	}
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}
	return "", errors.New("bootstrap: neither JWTSECRETNAME nor JWTSECRET is set")
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		bs.Firestore.Close()
	}
	if bs.KMS != nil {
		bs.KMS.Close()
	}
	if bs.Secrets != nil {
		bs.Secrets.Close()
	}
}
