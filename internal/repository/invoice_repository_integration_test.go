//go:build integration
// +build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"invoice-notifier/internal/repository"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testProjectID        = "invoice-notifier-test"
	testFirestoreImage   = "gcr.io/google.com/cloudsdktool/cloud-sdk:emulators"
	testFirestorePort    = "8080/tcp"
	testFirestoreStarted = "Dev App Server is now running"
)

func setupFirestoreEmulator(t *testing.T, ctx context.Context) *firestore.Client {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        testFirestoreImage,
		ExposedPorts: []string{testFirestorePort},
		Cmd:          []string{"gcloud", "beta", "emulators", "firestore", "start", fmt.Sprintf("--project=%s", testProjectID), "--host-port=0.0.0.0:8080"},
		WaitingFor:   wait.ForLog(testFirestoreStarted).WithStartupTimeout(90 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Terminate(ctx)) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, testFirestorePort)
	require.NoError(t, err)
	t.Setenv("FIRESTORE_EMULATOR_HOST", fmt.Sprintf("%s:%s", host, port.Port()))

	client, err := repository.NewFirestoreClient(ctx, testProjectID, "(default)", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestFirestoreInvoiceRepository(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	repo := repository.NewFirestoreInvoiceRepository(setupFirestoreEmulator(t, ctx))

	require.NoError(t, repo.Put(ctx, "INV-42", map[string]any{"amount": 1250.5}))
	data, err := repo.Get(ctx, "INV-42")
	require.NoError(t, err)
	assert.Equal(t, "INV-42", data["id"])
	assert.Equal(t, 1250.5, data["amount"])

	require.NoError(t, repo.Put(ctx, "doc-7", map[string]any{"id": "INV-7"}))
	data, err = repo.Get(ctx, "doc-7")
	require.NoError(t, err)
	assert.Equal(t, "INV-7", data["id"])

	require.NoError(t, repo.Delete(ctx, "INV-42"))
	_, err = repo.Get(ctx, "INV-42")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
