package store

import (
	"context"
	"fmt"
	"sync"

	"unbolt-api/internal/models"
)

// BookingStore keeps bookings in memory keyed by id. Stored bookings are
// never mutated.
type BookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

// NewBookingStore creates an empty booking store
func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]*models.Booking)}
}

// CreateBooking stores a new booking
func (s *BookingStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[booking.ID]; exists {
		return fmt.Errorf("booking id already in use: %s", booking.ID)
	}
	s.bookings[booking.ID] = copyBooking(booking)
	return nil
}

// GetBookingByID retrieves a copy of a booking
func (s *BookingStore) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	return copyBooking(b), nil
}

// CountBookings returns the number of stored bookings
func (s *BookingStore) CountBookings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func copyBooking(b *models.Booking) *models.Booking {
	c := *b
	if b.Customer != nil {
		c.Customer = &models.Customer{
			Name:  copyRaw(b.Customer.Name),
			Phone: copyRaw(b.Customer.Phone),
			Email: copyRaw(b.Customer.Email),
		}
	}
	return &c
}
