package models

import (
	"fmt"
	"strconv"
)

// InvoiceIDField is the document field carrying the business invoice number.
const InvoiceIDField = "id"

// Invoice is a read-only view of an invoice document taken from a change event.
type Invoice struct {
	DocumentID string         // path parameter invoiceId
	ID         string         // value of the "id" field
	HasID      bool           // false when the document has no "id" field
	Fields     map[string]any // raw snapshot data
}

// InvoiceFromData builds an Invoice from snapshot data. Only the id field is
// interpreted; everything else is kept as is.
//
// A missing or null id field leaves HasID false and DisplayID falls back to the
// document id from the path. Such a document is never rendered as "Invoice undefined"
// or "Invoice null" in the notification body.
func InvoiceFromData(documentID string, data map[string]any) Invoice {
	inv := Invoice{DocumentID: documentID, Fields: data}
	raw, ok := data[InvoiceIDField]
	if !ok || raw == nil {
		return inv
	}
	inv.ID = formatField(raw)
	inv.HasID = true
	return inv
}

// DisplayID is the identifier shown to users: the id field, or the document id when
// the field is missing.
func (i Invoice) DisplayID() string {
	if i.HasID {
		return i.ID
	}
	return i.DocumentID
}

func formatField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
