package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/graphuraprojects/farming-sub001/internal/events"
	"github.com/graphuraprojects/farming-sub001/pkg/mq"
)

// errDrop marks a delivery that will never decode; requeueing it would just
// loop forever.
var errDrop = errors.New("undecodable payload")

// NotifyConsumer turns booking.* events into user notifications.
type NotifyConsumer struct {
	cons     *mq.Consumer
	notifier Notifier
	tag      string
}

func NewNotifyConsumer(cons *mq.Consumer, n Notifier, tag string) *NotifyConsumer {
	return &NotifyConsumer{cons: cons, notifier: n, tag: tag}
}

func (nc *NotifyConsumer) Run(ctx context.Context) error {
	msgs, err := nc.cons.Deliveries(ctx, nc.tag)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			switch err := nc.handle(d); {
			case errors.Is(err, errDrop):
				log.Printf("[notify] drop key=%s err=%v", d.RoutingKey, err)
				_ = d.Nack(false, false)
			case err != nil:
				log.Printf("[notify] handle key=%s err=%v -> requeue", d.RoutingKey, err)
				_ = d.Nack(false, true)
			default:
				_ = d.Ack(false)
			}
		}
	}
}

func (nc *NotifyConsumer) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKBookingRequested:
		ev, err := events.Unmarshal[events.BookingRequested](d.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", errDrop, err)
		}
		return nc.notifier.Notify("Booking requested",
			fmt.Sprintf("Booking %s for machine %s (%s)", ev.BookingID, ev.MachineID, humanRange(ev.Start, ev.End)))

	case events.RKBookingAccepted:
		ev, err := events.Unmarshal[events.BookingDecided](d.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", errDrop, err)
		}
		return nc.notifier.Notify("Booking accepted",
			fmt.Sprintf("Booking %s has been accepted by the machine owner.", ev.BookingID))

	case events.RKBookingRejected:
		ev, err := events.Unmarshal[events.BookingDecided](d.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", errDrop, err)
		}
		msg := fmt.Sprintf("Booking %s has been rejected.", ev.BookingID)
		if ev.Reason != "" {
			msg = fmt.Sprintf("%s Reason: %s", msg, ev.Reason)
		}
		return nc.notifier.Notify("Booking rejected", msg)

	case events.RKBookingCancelled:
		ev, err := events.Unmarshal[events.BookingSimple](d.Body)
		if err != nil {
			return fmt.Errorf("%w: %v", errDrop, err)
		}
		return nc.notifier.Notify("Booking cancelled",
			fmt.Sprintf("Booking %s was cancelled by the farmer.", ev.BookingID))

	default:
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}

func humanRange(startUnix, endUnix int64) string {
	st := time.Unix(startUnix, 0).UTC()
	et := time.Unix(endUnix, 0).UTC()
	return fmt.Sprintf("%s to %s", st.Format("2006-01-02"), et.Format("2006-01-02"))
}
