package trigger

import (
	"testing"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = "acme-billing"

func TestNewFirestoreEvent_Decode(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	e, err := NewFirestoreEvent(FirestoreEventOptions{
		ProjectID: testProject,
		Document:  "invoices/INV-42",
		ID:        "evt-1",
		Time:      at,
		Before:    map[string]any{"id": "INV-42", "status": "draft"},
		After: map[string]any{
			"id":       "INV-42",
			"status":   "submitted",
			"amount":   1250.5,
			"lines":    int64(3),
			"paid":     false,
			"tags":     []any{"q1", int64(7)},
			"customer": map[string]any{"name": "Acme"},
			"due":      at.Add(24 * time.Hour),
			"note":     nil,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, TypeDocumentWritten, e.Type())
	assert.Equal(t, "//firestore.googleapis.com/projects/acme-billing/databases/(default)", e.Source())
	assert.Equal(t, "documents/invoices/INV-42", e.Subject())
	assert.Equal(t, "application/protobuf", e.DataContentType())

	change, ec, err := DecodeFirestoreEvent(e)
	require.NoError(t, err)

	assert.Equal(t, "evt-1", ec.EventID)
	assert.Equal(t, "invoices/INV-42", ec.Document)
	assert.True(t, ec.Time.Equal(at))
	assert.Nil(t, ec.Params)

	require.True(t, change.Before.Exists())
	assert.Equal(t, "draft", change.Before.Data()["status"])

	require.True(t, change.After.Exists())
	after := change.After.Data()
	assert.Equal(t, "projects/acme-billing/databases/(default)/documents/invoices/INV-42", change.After.Name)
	assert.Equal(t, "INV-42", after["id"])
	assert.Equal(t, 1250.5, after["amount"])
	assert.Equal(t, int64(3), after["lines"])
	assert.Equal(t, false, after["paid"])
	assert.Equal(t, []any{"q1", int64(7)}, after["tags"])
	assert.Equal(t, map[string]any{"name": "Acme"}, after["customer"])
	assert.True(t, at.Add(24*time.Hour).Equal(after["due"].(time.Time)))
	assert.Contains(t, after, "note")
	assert.Nil(t, after["note"])
	assert.True(t, change.After.UpdateTime.Equal(at))
}

func TestDecodeFirestoreEvent_Deleted(t *testing.T) {
	e, err := NewFirestoreEvent(FirestoreEventOptions{
		ProjectID: testProject,
		Document:  "invoices/INV-42",
		Type:      TypeDocumentDeleted,
		Before:    map[string]any{"id": "INV-42"},
	})
	require.NoError(t, err)

	change, ec, err := DecodeFirestoreEvent(e)
	require.NoError(t, err)
	assert.True(t, change.Before.Exists())
	assert.False(t, change.After.Exists())
	assert.Nil(t, change.After.Data())
	// The path comes from the old value when the new one is gone.
	assert.Equal(t, "invoices/INV-42", ec.Document)
}

func TestDecodeFirestoreEvent_EmptyDocumentExists(t *testing.T) {
	e, err := NewFirestoreEvent(FirestoreEventOptions{
		ProjectID: testProject,
		Document:  "invoices/INV-1",
		After:     map[string]any{},
	})
	require.NoError(t, err)

	change, _, err := DecodeFirestoreEvent(e)
	require.NoError(t, err)
	assert.True(t, change.After.Exists())
	assert.Empty(t, change.After.Data())
}

func newRawEvent(t *testing.T, contentType string, data []byte) event.Event {
	t.Helper()
	e := event.New()
	e.SetID("evt-raw")
	e.SetType(TypeDocumentUpdated)
	e.SetSource("//firestore.googleapis.com/projects/acme-billing/databases/(default)")
	e.SetSubject("documents/invoices/INV-5")
	require.NoError(t, e.SetData(contentType, data))
	return e
}

func TestDecodeFirestoreEvent_JSON(t *testing.T) {
	payload := `{
		"value": {
			"name": "projects/acme-billing/databases/(default)/documents/invoices/INV-77",
			"fields": {
				"id": {"stringValue": "INV-77"},
				"amount": {"integerValue": "900"}
			}
		},
		"unknownField": true
	}`
	e := newRawEvent(t, "application/json; charset=utf-8", []byte(payload))

	change, ec, err := DecodeFirestoreEvent(e)
	require.NoError(t, err)
	assert.Equal(t, "invoices/INV-77", ec.Document)
	assert.Equal(t, "INV-77", change.After.Data()["id"])
	assert.Equal(t, int64(900), change.After.Data()["amount"])
	assert.False(t, change.Before.Exists())
}

func TestDecodeFirestoreEvent_PathFallbacks(t *testing.T) {
	e := newRawEvent(t, "application/protobuf", []byte{})

	_, ec, err := DecodeFirestoreEvent(e)
	require.NoError(t, err)
	assert.Equal(t, "invoices/INV-5", ec.Document)

	e.SetExtension("document", "invoices/INV-6")
	_, ec, err = DecodeFirestoreEvent(e)
	require.NoError(t, err)
	assert.Equal(t, "invoices/INV-6", ec.Document)
}

func TestDecodeFirestoreEvent_Errors(t *testing.T) {
	_, _, err := DecodeFirestoreEvent(newRawEvent(t, "text/plain", []byte("hello")))
	assert.ErrorContains(t, err, "unsupported content type")

	_, _, err = DecodeFirestoreEvent(newRawEvent(t, "application/json", []byte("{not json")))
	assert.Error(t, err)

	_, _, err = DecodeFirestoreEvent(newRawEvent(t, "application/protobuf", []byte{0xff, 0xff, 0xff}))
	assert.Error(t, err)
}

func TestNewFirestoreEvent_Validation(t *testing.T) {
	_, err := NewFirestoreEvent(FirestoreEventOptions{Document: "invoices/INV-1"})
	assert.ErrorContains(t, err, "project id")

	_, err = NewFirestoreEvent(FirestoreEventOptions{ProjectID: testProject})
	assert.ErrorContains(t, err, "document path")

	_, err = NewFirestoreEvent(FirestoreEventOptions{
		ProjectID: testProject,
		Document:  "invoices/INV-1",
		After:     map[string]any{"bad": struct{}{}},
	})
	assert.ErrorContains(t, err, "unsupported field type")
}

func TestIsDocumentEvent(t *testing.T) {
	assert.True(t, IsDocumentEvent(TypeDocumentWritten))
	assert.True(t, IsDocumentEvent(TypeDocumentDeleted+".withAuthContext"))
	assert.False(t, IsDocumentEvent("google.cloud.pubsub.topic.v1.messagePublished"))
}
