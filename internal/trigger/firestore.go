package trigger

import (
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Firestore CloudEvent types.
const (
	TypeDocumentWritten = "google.cloud.firestore.document.v1.written"
	TypeDocumentCreated = "google.cloud.firestore.document.v1.created"
	TypeDocumentUpdated = "google.cloud.firestore.document.v1.updated"
	TypeDocumentDeleted = "google.cloud.firestore.document.v1.deleted"

	authContextSuffix = ".withAuthContext"
	documentsMarker   = "/documents/"
	defaultDatabase   = "(default)"

	contentTypeProtobuf = "application/protobuf"
	contentTypeJSON     = "application/json"
)

// IsDocumentEvent reports whether typ is one of the Firestore document event types.
func IsDocumentEvent(typ string) bool {
	switch strings.TrimSuffix(typ, authContextSuffix) {
	case TypeDocumentWritten, TypeDocumentCreated, TypeDocumentUpdated, TypeDocumentDeleted:
		return true
	}
	return false
}

// DecodeFirestoreEvent extracts the document change carried by a Firestore CloudEvent.
// Params of the returned Context are left empty; the router fills them.
func DecodeFirestoreEvent(e event.Event) (Change, Context, error) {
	var data firestoredata.DocumentEventData
	if err := unmarshalEventData(e, &data); err != nil {
		return Change{}, Context{}, fmt.Errorf("decode firestore event %s: %w", e.ID(), err)
	}

	change := Change{
		Before: snapshotFromDocument(data.GetOldValue()),
		After:  snapshotFromDocument(data.GetValue()),
	}
	ec := Context{
		EventID:  e.ID(),
		Type:     e.Type(),
		Time:     e.Time(),
		Document: documentPath(e, &data),
	}
	return change, ec, nil
}

func unmarshalEventData(e event.Event, data *firestoredata.DocumentEventData) error {
	mediaType := contentTypeProtobuf
	if ct := e.DataContentType(); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return fmt.Errorf("invalid content type %q: %w", ct, err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case contentTypeProtobuf:
		return proto.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(e.Data(), data)
	case contentTypeJSON:
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(e.Data(), data)
	default:
		return fmt.Errorf("unsupported content type %q", mediaType)
	}
}

// documentPath resolves the database-relative document path, preferring the
// document names carried in the payload over event attributes.
func documentPath(e event.Event, data *firestoredata.DocumentEventData) string {
	for _, name := range []string{data.GetValue().GetName(), data.GetOldValue().GetName()} {
		if i := strings.Index(name, documentsMarker); i >= 0 {
			return name[i+len(documentsMarker):]
		}
	}
	if doc, ok := e.Extensions()["document"]; ok {
		if s, ok := doc.(string); ok && s != "" {
			return strings.Trim(s, "/")
		}
	}
	return strings.TrimPrefix(e.Subject(), "documents/")
}

func snapshotFromDocument(doc *firestoredata.Document) Snapshot {
	if doc == nil {
		return Snapshot{}
	}
	fields := make(map[string]any, len(doc.GetFields()))
	for k, v := range doc.GetFields() {
		fields[k] = fromValue(v)
	}
	s := Snapshot{Name: doc.GetName(), Fields: fields}
	if ts := doc.GetCreateTime(); ts != nil {
		s.CreateTime = ts.AsTime()
	}
	if ts := doc.GetUpdateTime(); ts != nil {
		s.UpdateTime = ts.AsTime()
	}
	return s
}

func fromValue(v *firestoredata.Value) any {
	switch t := v.GetValueType().(type) {
	case *firestoredata.Value_NullValue:
		return nil
	case *firestoredata.Value_BooleanValue:
		return t.BooleanValue
	case *firestoredata.Value_IntegerValue:
		return t.IntegerValue
	case *firestoredata.Value_DoubleValue:
		return t.DoubleValue
	case *firestoredata.Value_TimestampValue:
		return t.TimestampValue.AsTime()
	case *firestoredata.Value_StringValue:
		return t.StringValue
	case *firestoredata.Value_BytesValue:
		return t.BytesValue
	case *firestoredata.Value_ReferenceValue:
		return t.ReferenceValue
	case *firestoredata.Value_GeoPointValue:
		return map[string]any{
			"latitude":  t.GeoPointValue.GetLatitude(),
			"longitude": t.GeoPointValue.GetLongitude(),
		}
	case *firestoredata.Value_ArrayValue:
		values := t.ArrayValue.GetValues()
		out := make([]any, len(values))
		for i, item := range values {
			out[i] = fromValue(item)
		}
		return out
	case *firestoredata.Value_MapValue:
		out := make(map[string]any, len(t.MapValue.GetFields()))
		for k, item := range t.MapValue.GetFields() {
			out[k] = fromValue(item)
		}
		return out
	default:
		return nil
	}
}

func toValue(v any) (*firestoredata.Value, error) {
	switch t := v.(type) {
	case nil:
		return &firestoredata.Value{ValueType: &firestoredata.Value_NullValue{NullValue: structpb.NullValue_NULL_VALUE}}, nil
	case bool:
		return &firestoredata.Value{ValueType: &firestoredata.Value_BooleanValue{BooleanValue: t}}, nil
	case int:
		return &firestoredata.Value{ValueType: &firestoredata.Value_IntegerValue{IntegerValue: int64(t)}}, nil
	case int64:
		return &firestoredata.Value{ValueType: &firestoredata.Value_IntegerValue{IntegerValue: t}}, nil
	case float64:
		return &firestoredata.Value{ValueType: &firestoredata.Value_DoubleValue{DoubleValue: t}}, nil
	case string:
		return &firestoredata.Value{ValueType: &firestoredata.Value_StringValue{StringValue: t}}, nil
	case []byte:
		return &firestoredata.Value{ValueType: &firestoredata.Value_BytesValue{BytesValue: t}}, nil
	case time.Time:
		return &firestoredata.Value{ValueType: &firestoredata.Value_TimestampValue{TimestampValue: timestamppb.New(t)}}, nil
	case []any:
		values := make([]*firestoredata.Value, len(t))
		for i, item := range t {
			fv, err := toValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			values[i] = fv
		}
		return &firestoredata.Value{ValueType: &firestoredata.Value_ArrayValue{ArrayValue: &firestoredata.ArrayValue{Values: values}}}, nil
	case map[string]any:
		fields, err := toFields(t)
		if err != nil {
			return nil, err
		}
		return &firestoredata.Value{ValueType: &firestoredata.Value_MapValue{MapValue: &firestoredata.MapValue{Fields: fields}}}, nil
	default:
		return nil, fmt.Errorf("unsupported field type %T", v)
	}
}

func toFields(m map[string]any) (map[string]*firestoredata.Value, error) {
	fields := make(map[string]*firestoredata.Value, len(m))
	for k, v := range m {
		fv, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		fields[k] = fv
	}
	return fields, nil
}

// FirestoreEventOptions describes a synthetic Firestore document event.
type FirestoreEventOptions struct {
	ProjectID string
	Database  string         // "(default)" when empty
	Document  string         // e.g. invoices/INV-42
	Type      string         // TypeDocumentWritten when empty
	ID        string         // random when empty
	Time      time.Time      // now when zero
	Before    map[string]any // nil when the document did not exist
	After     map[string]any // nil when the document was deleted
}

// NewFirestoreEvent builds a protobuf encoded Firestore CloudEvent, shaped like the
// ones Eventarc delivers.
func NewFirestoreEvent(opts FirestoreEventOptions) (event.Event, error) {
	if opts.ProjectID == "" {
		return event.Event{}, fmt.Errorf("project id is required")
	}
	doc := strings.Trim(opts.Document, "/")
	if doc == "" {
		return event.Event{}, fmt.Errorf("document path is required")
	}
	if opts.Database == "" {
		opts.Database = defaultDatabase
	}
	if opts.Type == "" {
		opts.Type = TypeDocumentWritten
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Time.IsZero() {
		opts.Time = time.Now().UTC()
	}

	name := fmt.Sprintf("projects/%s/databases/%s/documents/%s", opts.ProjectID, opts.Database, doc)
	var data firestoredata.DocumentEventData
	var err error
	if data.OldValue, err = toDocument(name, opts.Before, opts.Time); err != nil {
		return event.Event{}, fmt.Errorf("before: %w", err)
	}
	if data.Value, err = toDocument(name, opts.After, opts.Time); err != nil {
		return event.Event{}, fmt.Errorf("after: %w", err)
	}
	payload, err := proto.Marshal(&data)
	if err != nil {
		return event.Event{}, fmt.Errorf("marshal document event: %w", err)
	}

	e := event.New()
	e.SetID(opts.ID)
	e.SetType(opts.Type)
	e.SetSource(fmt.Sprintf("//firestore.googleapis.com/projects/%s/databases/%s", opts.ProjectID, opts.Database))
	e.SetSubject("documents/" + doc)
	e.SetTime(opts.Time)
	e.SetExtension("project", opts.ProjectID)
	e.SetExtension("database", opts.Database)
	e.SetExtension("document", doc)
	if err := e.SetData(contentTypeProtobuf, payload); err != nil {
		return event.Event{}, fmt.Errorf("set event data: %w", err)
	}
	return e, nil
}

func toDocument(name string, fields map[string]any, at time.Time) (*firestoredata.Document, error) {
	if fields == nil {
		return nil, nil
	}
	pbFields, err := toFields(fields)
	if err != nil {
		return nil, err
	}
	ts := timestamppb.New(at)
	return &firestoredata.Document{Name: name, Fields: pbFields, CreateTime: ts, UpdateTime: ts}, nil
}
