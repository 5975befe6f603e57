package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventUserRegistered, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "e1", Type: EventUserRegistered})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "e1", received[0].ID)

	// Events of other types are not delivered.
	err = dispatcher.Publish(context.Background(), Event{ID: "e2", Type: EventUserDeleted})
	require.NoError(t, err)
	assert.Len(t, received, 1)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var calls int
	dispatcher.Subscribe(EventSecurityDenied, func(context.Context, Event) error {
		calls++
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventSecurityDenied, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventSecurityDenied})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
