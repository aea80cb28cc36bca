package models

import "time"

// Event types
const (
	EventTypeQuoteCreated    = "QUOTE_CREATED"
	EventTypeQuoteRepriced   = "QUOTE_REPRICED"
	EventTypeBookingCreated  = "BOOKING_CREATED"
	EventTypeCheckoutCreated = "CHECKOUT_CREATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// QuoteCreatedEvent published when a quote is created
type QuoteCreatedEvent struct {
	BaseEvent
	QuoteID    string  `json:"quote_id"`
	ServiceID  string  `json:"service_id"`
	TotalPrice float64 `json:"total_price"`
}

// QuoteRepricedEvent published when a quote's add-ons change
type QuoteRepricedEvent struct {
	BaseEvent
	QuoteID    string   `json:"quote_id"`
	AddOns     []string `json:"add_ons"`
	TotalPrice float64  `json:"total_price"`
}

// BookingCreatedEvent published when a booking is confirmed
type BookingCreatedEvent struct {
	BaseEvent
	BookingID     string `json:"booking_id"`
	QuoteID       string `json:"quote_id"`
	ScheduledTime string `json:"scheduled_time"`
}

// CheckoutCreatedEvent published for every simulated checkout
type CheckoutCreatedEvent struct {
	BaseEvent
	BookingID     string `json:"booking_id"`
	PaymentIntent string `json:"payment_intent"`
}
