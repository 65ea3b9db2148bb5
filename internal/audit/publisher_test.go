package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamduis/name-combo/pkg/domain"
	"github.com/Kamduis/name-combo/pkg/requestcontext"
)

type recordingEmitter struct {
	events []Event
}

func (r *recordingEmitter) Emit(_ context.Context, event Event) error {
	r.events = append(r.events, event)
	return nil
}

func TestPublisherStampsFromContext(t *testing.T) {
	store := NewInMemoryStore()
	emitter := &recordingEmitter{}
	publisher := NewPublisher(store, emitter)

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithActor(ctx, "registrar-1")
	ctx = requestcontext.WithRequestID(ctx, "req-42")

	id := domain.NewPersonID()
	require.NoError(t, publisher.Emit(ctx, Event{
		Action:   ActionPersonRegistered,
		PersonID: id,
	}))

	events, err := publisher.List(ctx, id)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionPersonRegistered, events[0].Action)
	assert.Equal(t, "registrar-1", events[0].Actor)
	assert.Equal(t, "req-42", events[0].RequestID)
	assert.Equal(t, now, events[0].Timestamp)

	require.Len(t, emitter.events, 1)
	assert.Equal(t, events[0], emitter.events[0])
}

func TestPublisherKeepsExplicitMetadata(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	stamped := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	id := domain.NewPersonID()
	require.NoError(t, publisher.Emit(context.Background(), Event{
		Action:    ActionPersonRenamed,
		PersonID:  id,
		Actor:     "importer",
		Timestamp: stamped,
	}))

	events, err := publisher.List(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "importer", events[0].Actor)
	assert.Equal(t, stamped, events[0].Timestamp)
}

func TestPublisherListFiltersByPerson(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)
	ctx := context.Background()

	a := domain.NewPersonID()
	b := domain.NewPersonID()
	require.NoError(t, publisher.Emit(ctx, Event{Action: ActionPersonRegistered, PersonID: a}))
	require.NoError(t, publisher.Emit(ctx, Event{Action: ActionPersonRegistered, PersonID: b}))
	require.NoError(t, publisher.Emit(ctx, Event{Action: ActionPersonDeleted, PersonID: a}))

	events, err := publisher.List(ctx, a)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionPersonRegistered, events[0].Action)
	assert.Equal(t, ActionPersonDeleted, events[1].Action)
}

func TestWorkerDeliversQueuedEvents(t *testing.T) {
	emitter := &recordingEmitter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	worker := NewWorker(emitter, logger, 8)

	id := domain.NewPersonID()
	require.NoError(t, worker.Emit(context.Background(), Event{Action: ActionPersonRegistered, PersonID: id}))
	require.NoError(t, worker.Emit(context.Background(), Event{Action: ActionPersonRenamed, PersonID: id}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := worker.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	require.Len(t, emitter.events, 2)
	assert.Equal(t, ActionPersonRegistered, emitter.events[0].Action)
	assert.Equal(t, ActionPersonRenamed, emitter.events[1].Action)
}
