package audit

import (
	"context"
	"log/slog"
)

// Worker decouples slow emitters from the request path. Events are queued on
// a buffered channel; when the buffer is full the event is dropped and
// logged rather than blocking a request.
type Worker struct {
	emitter Emitter
	logger  *slog.Logger
	inbox   chan Event
}

func NewWorker(emitter Emitter, logger *slog.Logger, buffer int) *Worker {
	if buffer <= 0 {
		buffer = 256
	}
	return &Worker{
		emitter: emitter,
		logger:  logger,
		inbox:   make(chan Event, buffer),
	}
}

// Emit queues the event for background delivery. It never blocks.
func (w *Worker) Emit(_ context.Context, event Event) error {
	select {
	case w.inbox <- event:
	default:
		w.logger.Warn("audit inbox full, dropping event",
			"action", event.Action,
			"person_id", event.PersonID.String(),
		)
	}
	return nil
}

// Run delivers queued events until ctx is cancelled, then drains the inbox.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.deliver(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case event := <-w.inbox:
			w.deliver(context.Background(), event)
		default:
			return
		}
	}
}

func (w *Worker) deliver(ctx context.Context, event Event) {
	if err := w.emitter.Emit(ctx, event); err != nil {
		w.logger.Error("delivering audit event",
			"action", event.Action,
			"person_id", event.PersonID.String(),
			"error", err,
		)
	}
}
