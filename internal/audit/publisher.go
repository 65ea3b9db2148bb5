package audit

import (
	"context"

	"github.com/Kamduis/name-combo/pkg/domain"
	"github.com/Kamduis/name-combo/pkg/requestcontext"
)

// Emitter forwards events to an external sink (e.g. Kafka). Emit failures
// must not fail the originating request; the Publisher logs and continues.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store    Store
	emitters []Emitter
}

func NewPublisher(store Store, emitters ...Emitter) *Publisher {
	return &Publisher{store: store, emitters: emitters}
}

// Emit stamps missing metadata from the request context, appends the event,
// and forwards it to all emitters.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.Actor(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, e := range p.emitters {
		if err := e.Emit(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// List returns the audit trail for one person.
func (p *Publisher) List(ctx context.Context, personID domain.PersonID) ([]Event, error) {
	return p.store.ListByPerson(ctx, personID)
}
