package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pkordes/catering-booking/internal/domain"
)

// AMQPPublisher publishes booking events over a single long-lived channel.
type AMQPPublisher struct {
	conn *amqp.Connection
	mu   sync.Mutex
	ch   *amqp.Channel
	now  func() time.Time
}

// NewAMQPPublisher dials url, opens a channel and declares the booking queues.
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events.NewAMQPPublisher: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events.NewAMQPPublisher: channel: %w", err)
	}
	for _, q := range []string{QueueBookingCreated, QueueBookingStatusChanged} {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("events.NewAMQPPublisher: declare %s: %w", q, err)
		}
	}
	return &AMQPPublisher{conn: conn, ch: ch, now: time.Now}, nil
}

// BookingCreated publishes a booking.created message.
func (p *AMQPPublisher) BookingCreated(ctx context.Context, b domain.Booking) error {
	return p.publish(ctx, QueueBookingCreated, newBookingEvent(b, "", p.now()))
}

// BookingStatusChanged publishes a booking.status_changed message.
func (p *AMQPPublisher) BookingStatusChanged(ctx context.Context, b domain.Booking, previous domain.BookingStatus) error {
	return p.publish(ctx, QueueBookingStatusChanged, newBookingEvent(b, previous, p.now()))
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, ev BookingEvent) error {
	msg, err := newPublishing(ev)
	if err != nil {
		return fmt.Errorf("events.AMQPPublisher.publish: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("events.AMQPPublisher.publish %s: %w", queue, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ch.Close()
	return p.conn.Close()
}

// newPublishing encodes ev as a persistent JSON message.
func newPublishing(ev BookingEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.BookingID.String(),
		Timestamp:    ev.OccurredAt,
		Body:         body,
	}, nil
}

// NopPublisher discards events. It is used when no broker is configured.
type NopPublisher struct{}

// BookingCreated does nothing.
func (NopPublisher) BookingCreated(context.Context, domain.Booking) error { return nil }

// BookingStatusChanged does nothing.
func (NopPublisher) BookingStatusChanged(context.Context, domain.Booking, domain.BookingStatus) error {
	return nil
}
