package trigger

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudevents/sdk-go/v2/event"
	"go.uber.org/zap"
)

type route struct {
	pattern pattern
	handler Handler
}

// Router is a Source fed by Firestore CloudEvents. Routes are tried in
// registration order and the first match wins.
type Router struct {
	mu     sync.RWMutex
	routes []route
	logger *zap.Logger
}

var _ Source = (*Router)(nil)

func NewRouter(logger *zap.Logger) *Router {
	return &Router{logger: logger.Named("trigger_router")}
}

// Register adds h for documents matching pattern.
func (r *Router) Register(raw string, h Handler) error {
	if h == nil {
		return fmt.Errorf("nil handler for pattern %q", raw)
	}
	p, err := parsePattern(raw)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.routes {
		if existing.pattern.raw == p.raw {
			return fmt.Errorf("pattern %q is already registered", p.raw)
		}
	}
	r.routes = append(r.routes, route{pattern: p, handler: h})
	r.logger.Debug("Handler registered", zap.String("pattern", p.raw))
	return nil
}

// Dispatch hands an already decoded change to the handler whose pattern matches
// ec.Document. Documents without a matching route are ignored.
func (r *Router) Dispatch(ctx context.Context, change Change, ec Context) error {
	h, params, ok := r.lookup(ec.Document)
	if !ok {
		r.logger.Debug("No handler for document", zap.String("document", ec.Document), zap.String("event_id", ec.EventID))
		return nil
	}
	ec.Params = params
	return h(ctx, change, ec)
}

// HandleCloudEvent decodes a Firestore document event and dispatches it. Its
// signature matches functions.CloudEvent and the cloudevents HTTP receiver.
func (r *Router) HandleCloudEvent(ctx context.Context, e event.Event) error {
	if !IsDocumentEvent(e.Type()) {
		r.logger.Warn("Ignoring unsupported event type", zap.String("type", e.Type()), zap.String("event_id", e.ID()))
		return nil
	}
	change, ec, err := DecodeFirestoreEvent(e)
	if err != nil {
		r.logger.Error("Failed to decode event", zap.String("event_id", e.ID()), zap.Error(err))
		return err
	}
	return r.Dispatch(ctx, change, ec)
}

func (r *Router) lookup(document string) (Handler, map[string]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rt := range r.routes {
		if params, ok := rt.pattern.match(document); ok {
			return rt.handler, params, true
		}
	}
	return nil, nil, false
}
