package worker

import (
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphuraprojects/farming-sub001/internal/events"
)

type fakeNotifier struct {
	err      error
	subjects []string
	messages []string
}

func (n *fakeNotifier) Notify(subject, message string) error {
	if n.err != nil {
		return n.err
	}
	n.subjects = append(n.subjects, subject)
	n.messages = append(n.messages, message)
	return nil
}

func delivery(t *testing.T, key string, v any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return amqp.Delivery{RoutingKey: key, Body: body}
}

func TestHandleRequested(t *testing.T) {
	n := &fakeNotifier{}
	nc := &NotifyConsumer{notifier: n}

	err := nc.handle(delivery(t, events.RKBookingRequested, events.BookingRequested{
		BookingID: "b1",
		MachineID: "m1",
		Start:     1772668800, // 2026-03-05
		End:       1772928000, // 2026-03-08
	}))
	require.NoError(t, err)
	require.Len(t, n.subjects, 1)
	assert.Equal(t, "Booking requested", n.subjects[0])
	assert.Contains(t, n.messages[0], "b1")
	assert.Contains(t, n.messages[0], "2026-03-05 to 2026-03-08")
}

func TestHandleRejectedCarriesReason(t *testing.T) {
	n := &fakeNotifier{}
	nc := &NotifyConsumer{notifier: n}

	err := nc.handle(delivery(t, events.RKBookingRejected, events.BookingDecided{
		BookingID: "b1",
		Reason:    "machine in service",
	}))
	require.NoError(t, err)
	require.Len(t, n.messages, 1)
	assert.Contains(t, n.messages[0], "rejected")
	assert.Contains(t, n.messages[0], "Reason: machine in service")
}

// A payload that will never decode must not be requeued; handle marks it
// with errDrop so Run nacks without requeue.
func TestHandleUndecodableIsDropped(t *testing.T) {
	n := &fakeNotifier{}
	nc := &NotifyConsumer{notifier: n}

	err := nc.handle(amqp.Delivery{
		RoutingKey: events.RKBookingAccepted,
		Body:       []byte("{not json"),
	})
	assert.ErrorIs(t, err, errDrop)
	assert.Empty(t, n.subjects)
}

// A failing notifier is transient: the error comes back plain (not errDrop)
// so Run requeues the delivery.
func TestHandleNotifierFailureRequeues(t *testing.T) {
	n := &fakeNotifier{err: errors.New("smtp down")}
	nc := &NotifyConsumer{notifier: n}

	err := nc.handle(delivery(t, events.RKBookingCancelled, events.BookingSimple{BookingID: "b1"}))
	require.Error(t, err)
	assert.False(t, errors.Is(err, errDrop))
}

func TestHandleUnknownKeySkipped(t *testing.T) {
	n := &fakeNotifier{}
	nc := &NotifyConsumer{notifier: n}

	err := nc.handle(amqp.Delivery{RoutingKey: "payment.captured", Body: []byte(`{}`)})
	require.NoError(t, err)
	assert.Empty(t, n.subjects)
}
