package store

import "errors"

var (
	ErrQuoteNotFound   = errors.New("quote not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// Store owns the in-process quote and booking collections. State lives for
// the lifetime of the process only.
type Store struct {
	Quotes   *QuoteStore
	Bookings *BookingStore
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		Quotes:   NewQuoteStore(),
		Bookings: NewBookingStore(),
	}
}
