// Package trigger turns document change events delivered by an external event source
// into calls of registered handlers.
package trigger

import (
	"context"
	"time"
)

// Snapshot is a read-only point-in-time view of a document.
type Snapshot struct {
	Name       string         // full resource name, empty when the document does not exist
	Fields     map[string]any // nil when the document does not exist
	CreateTime time.Time
	UpdateTime time.Time
}

// Exists reports whether the snapshot holds a document.
func (s Snapshot) Exists() bool {
	return s.Fields != nil
}

// Data returns the document fields, or nil for a missing document.
func (s Snapshot) Data() map[string]any {
	return s.Fields
}

// Change carries the document state before and after a write.
type Change struct {
	Before Snapshot
	After  Snapshot
}

// Context describes the event that produced a Change.
type Context struct {
	EventID  string
	Type     string
	Time     time.Time
	Document string            // path relative to the database root, e.g. invoices/INV-42
	Params   map[string]string // wildcard values captured by the matching pattern
}

// Handler reacts to a single document change.
type Handler func(ctx context.Context, change Change, ec Context) error

// Source is anything that delivers document changes to handlers registered
// against a path pattern such as "invoices/{invoiceId}".
type Source interface {
	Register(pattern string, h Handler) error
}
