package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"invoice-notifier/internal/repository"

	"github.com/spf13/cobra"
)

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <invoiceId>",
		Short: "Print an invoice document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := opts.newRepo(cmd.Context(), opts.projectID)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			fields, err := repo.Get(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("invoices/%s: %w", args[0], err)
			}
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(fields, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode invoices/%s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
