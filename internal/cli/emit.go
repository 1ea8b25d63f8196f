package cli

import (
	"fmt"

	"invoice-notifier/internal/models"
	"invoice-notifier/internal/repository"
	"invoice-notifier/internal/trigger"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/spf13/cobra"
)

const (
	defaultTarget  = "http://localhost:8080/"
	defaultProject = "local-project"
)

func newEmitCmd(opts *options) *cobra.Command {
	var (
		target  string
		deleted bool
		pairs   []string
	)
	cmd := &cobra.Command{
		Use:   "emit <invoiceId>",
		Short: "Send a synthetic Firestore change event for an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoiceID := args[0]
			fields, err := parseFields(pairs)
			if err != nil {
				return err
			}
			if _, ok := fields[models.InvoiceIDField]; !ok {
				fields[models.InvoiceIDField] = invoiceID
			}

			projectID := opts.projectID
			if projectID == "" {
				projectID = defaultProject
			}
			eventOpts := trigger.FirestoreEventOptions{
				ProjectID: projectID,
				Document:  repository.InvoicesCollection + "/" + invoiceID,
				After:     fields,
			}
			if deleted {
				eventOpts.Type = trigger.TypeDocumentDeleted
				eventOpts.Before, eventOpts.After = fields, nil
			}
			e, err := trigger.NewFirestoreEvent(eventOpts)
			if err != nil {
				return err
			}

			client, err := cloudevents.NewClientHTTP()
			if err != nil {
				return fmt.Errorf("create cloudevents client: %w", err)
			}
			res := client.Send(cloudevents.ContextWithTarget(cmd.Context(), target), e)
			if cloudevents.IsUndelivered(res) {
				return fmt.Errorf("event %s not delivered to %s: %w", e.ID(), target, res)
			}
			if !cloudevents.IsACK(res) {
				return fmt.Errorf("event %s rejected by %s: %w", e.ID(), target, res)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "event %s (%s) delivered for %s\n", e.ID(), e.Type(), eventOpts.Document)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", defaultTarget, "URL of the notifier server")
	cmd.Flags().BoolVar(&deleted, "deleted", false, "emit a deletion instead of a write")
	cmd.Flags().StringArrayVar(&pairs, "field", nil, "document field as key=value (repeatable)")
	return cmd
}
