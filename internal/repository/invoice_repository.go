package repository

import (
	"context"
	"errors"
	"fmt"

	"invoice-notifier/internal/models"
	"invoice-notifier/internal/service"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// InvoicesCollection holds the documents watched by the notifier.
const InvoicesCollection = "invoices"

const defaultDatabase = "(default)"

var ErrNotFound = errors.New("invoice not found")

// InvoiceRepository writes invoice documents. The notifier never uses it; it
// exists for operator tooling that produces change events.
type InvoiceRepository interface {
	Put(ctx context.Context, documentID string, fields map[string]any) error
	Get(ctx context.Context, documentID string) (map[string]any, error)
	Delete(ctx context.Context, documentID string) error
}

type firestoreInvoiceRepository struct {
	client *firestore.Client
}

var _ InvoiceRepository = (*firestoreInvoiceRepository)(nil)

func NewFirestoreInvoiceRepository(client *firestore.Client) InvoiceRepository {
	return &firestoreInvoiceRepository{client: client}
}

// NewFirestoreClient connects to Firestore. The default database goes through the
// Firebase App; named databases use the Firestore client directly. Both honour
// FIRESTORE_EMULATOR_HOST.
func NewFirestoreClient(ctx context.Context, projectID, database, credentialsPath string) (*firestore.Client, error) {
	if database == "" || database == defaultDatabase {
		app, err := service.NewFirebaseApp(ctx, projectID, credentialsPath)
		if err != nil {
			return nil, err
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("error getting Firestore client: %w", err)
		}
		return client, nil
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating Firestore client for database %s: %w", database, err)
	}
	return client, nil
}

// Put overwrites the document and makes sure it carries its id field.
func (r *firestoreInvoiceRepository) Put(ctx context.Context, documentID string, fields map[string]any) error {
	data := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		data[k] = v
	}
	if _, ok := data[models.InvoiceIDField]; !ok {
		data[models.InvoiceIDField] = documentID
	}

	if _, err := r.doc(documentID).Set(ctx, data); err != nil {
		return fmt.Errorf("put invoice %s: %w", documentID, err)
	}
	return nil
}

func (r *firestoreInvoiceRepository) Get(ctx context.Context, documentID string) (map[string]any, error) {
	snap, err := r.doc(documentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get invoice %s: %w", documentID, err)
	}
	return snap.Data(), nil
}

func (r *firestoreInvoiceRepository) Delete(ctx context.Context, documentID string) error {
	if _, err := r.doc(documentID).Delete(ctx); err != nil {
		return fmt.Errorf("delete invoice %s: %w", documentID, err)
	}
	return nil
}

func (r *firestoreInvoiceRepository) doc(documentID string) *firestore.DocumentRef {
	return r.client.Collection(InvoicesCollection).Doc(documentID)
}
