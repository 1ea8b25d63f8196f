package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPutCmd(opts *options) *cobra.Command {
	var pairs []string
	cmd := &cobra.Command{
		Use:   "put <invoiceId>",
		Short: "Create or overwrite an invoice document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(pairs)
			if err != nil {
				return err
			}
			repo, closeFn, err := opts.newRepo(cmd.Context(), opts.projectID)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			if err := repo.Put(cmd.Context(), args[0], fields); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invoices/%s written\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&pairs, "field", nil, "document field as key=value (repeatable)")
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <invoiceId>",
		Short: "Delete an invoice document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := opts.newRepo(cmd.Context(), opts.projectID)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			if err := repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invoices/%s deleted\n", args[0])
			return nil
		},
	}
}
