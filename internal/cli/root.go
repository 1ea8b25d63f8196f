// Package cli implements invoicectl, an operator tool that reads and writes invoice documents
// and emits synthetic change events to a running notifier.
package cli

import (
	"context"
	"fmt"
	"os"

	"invoice-notifier/internal/config"
	"invoice-notifier/internal/repository"

	"github.com/spf13/cobra"
)

// RepositoryFactory opens an invoice repository and returns a close function.
type RepositoryFactory func(ctx context.Context, projectID string) (repository.InvoiceRepository, func() error, error)

type options struct {
	projectID string
	newRepo   RepositoryFactory
}

func newRootCmd(newRepo RepositoryFactory) *cobra.Command {
	opts := &options{newRepo: newRepo}
	cmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Manage invoices and emit invoice change events",
		Long:          "invoicectl reads and writes invoice documents in Firestore and sends synthetic Firestore change events to a running invoice notifier.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.projectID, "project", os.Getenv("GOOGLE_CLOUD_PROJECT"), "Google Cloud project id")

	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newPutCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newEmitCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command with an injected repository factory.
func NewRootCmdForTest(newRepo RepositoryFactory) *cobra.Command {
	return newRootCmd(newRepo)
}

func Execute() error {
	return newRootCmd(firestoreRepository).ExecuteContext(context.Background())
}

func firestoreRepository(ctx context.Context, projectID string) (repository.InvoiceRepository, func() error, error) {
	cfg, err := config.LoadConfig(config.PathFromEnv(), ".env")
	if err != nil {
		return nil, nil, err
	}
	if projectID == "" {
		projectID = cfg.ProjectID
	}
	if projectID == "" {
		return nil, nil, fmt.Errorf("project id is required (--project or GOOGLE_CLOUD_PROJECT)")
	}

	client, err := repository.NewFirestoreClient(ctx, projectID, cfg.Firestore.Database, cfg.FCM.CredentialsPath)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewFirestoreInvoiceRepository(client), client.Close, nil
}
