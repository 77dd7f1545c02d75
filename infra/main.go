package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/swasthikkulal/pigmy-backend/infra/cloudrun"
	"github.com/swasthikkulal/pigmy-backend/infra/docker"
	"github.com/swasthikkulal/pigmy-backend/infra/firestore"
	"github.com/swasthikkulal/pigmy-backend/infra/kms"
	"github.com/swasthikkulal/pigmy-backend/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the project
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// key used to encrypt customer identity fields at rest
		_, err = kms.SetupKMS(ctx, prov)
		if err != nil {
			return err
		}
		piiKey, err := kms.CreateKey(ctx, prov, "pigmy", "customer-pii")
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, piiKey, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
