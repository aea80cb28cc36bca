package broker

import (
	"context"
	"time"

	"unbolt-api/internal/models"

	"github.com/google/uuid"
)

// EventPublisher handles publishing booking lifecycle events
type EventPublisher struct {
	publisher Publisher
	now       func() time.Time
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(publisher Publisher) *EventPublisher {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &EventPublisher{publisher: publisher, now: time.Now}
}

func (ep *EventPublisher) base(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: ep.now().UTC(),
	}
}

// PublishQuoteCreated publishes QuoteCreated event
func (ep *EventPublisher) PublishQuoteCreated(ctx context.Context, quote *models.Quote) error {
	event := &models.QuoteCreatedEvent{
		BaseEvent:  ep.base(models.EventTypeQuoteCreated),
		QuoteID:    quote.ID,
		ServiceID:  quote.ServiceID,
		TotalPrice: quote.TotalPrice,
	}
	return ep.publisher.PublishEvent(ctx, "quote-"+quote.ID, event)
}

// PublishQuoteRepriced publishes QuoteRepriced event
func (ep *EventPublisher) PublishQuoteRepriced(ctx context.Context, quote *models.Quote) error {
	event := &models.QuoteRepricedEvent{
		BaseEvent:  ep.base(models.EventTypeQuoteRepriced),
		QuoteID:    quote.ID,
		AddOns:     quote.AddOnList(),
		TotalPrice: quote.TotalPrice,
	}
	return ep.publisher.PublishEvent(ctx, "quote-"+quote.ID, event)
}

// PublishBookingCreated publishes BookingCreated event
func (ep *EventPublisher) PublishBookingCreated(ctx context.Context, booking *models.Booking) error {
	event := &models.BookingCreatedEvent{
		BaseEvent:     ep.base(models.EventTypeBookingCreated),
		BookingID:     booking.ID,
		QuoteID:       booking.QuoteID,
		ScheduledTime: booking.ScheduledTime,
	}
	return ep.publisher.PublishEvent(ctx, "booking-"+booking.ID, event)
}

// PublishCheckoutCreated publishes CheckoutCreated event
func (ep *EventPublisher) PublishCheckoutCreated(ctx context.Context, bookingID string, session *models.CheckoutSession) error {
	event := &models.CheckoutCreatedEvent{
		BaseEvent:     ep.base(models.EventTypeCheckoutCreated),
		BookingID:     bookingID,
		PaymentIntent: session.PaymentIntent,
	}
	return ep.publisher.PublishEvent(ctx, "booking-"+bookingID, event)
}

// Close closes the underlying publisher
func (ep *EventPublisher) Close() error {
	return ep.publisher.Close()
}
