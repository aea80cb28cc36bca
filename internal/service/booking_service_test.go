package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"unbolt-api/internal/broker"
	"unbolt-api/internal/models"
	"unbolt-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotency struct {
	mu     sync.Mutex
	keys   map[string]string
	getErr error
	// missGets makes the next n lookups report no key, as if a concurrent
	// request claimed it right after the lookup
	missGets int
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{keys: make(map[string]string)}
}

func (m *memoryIdempotency) GetIdempotencyKey(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return "", false, m.getErr
	}
	if m.missGets > 0 {
		m.missGets--
		return "", false, nil
	}
	id, ok := m.keys[key]
	return id, ok, nil
}

func (m *memoryIdempotency) SetIdempotencyKey(ctx context.Context, key, bookingID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = bookingID
	return true, nil
}

type sequenceSampler struct {
	statuses []string
	i        int
}

func (s *sequenceSampler) Sample() string {
	st := s.statuses[s.i%len(s.statuses)]
	s.i++
	return st
}

func sequentialIDs() IDGenerator {
	var mu sync.Mutex
	n := 0
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func newBookingService(idem IdempotencyStore, opts ...BookingOption) *BookingService {
	opts = append([]BookingOption{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	}, opts...)
	return NewBookingService(
		store.NewBookingStore(),
		broker.NewEventPublisher(nil),
		idem,
		BookingConfig{BaseURL: "http://localhost:3000/", IdempotencyTTL: time.Hour},
		opts...,
	)
}

func TestCreateBooking(t *testing.T) {
	bs := newBookingService(nil)
	customer := &models.Customer{
		Name:  json.RawMessage(`"Ada Lovelace"`),
		Phone: json.RawMessage(`"+1-555-0100"`),
		Email: json.RawMessage(`"ada@example.com"`),
	}

	booking, replayed, err := bs.CreateBooking(context.Background(), &CreateBookingRequest{
		QuoteID:  "quote_that_does_not_exist",
		Customer: customer,
	})
	require.NoError(t, err)
	assert.False(t, replayed)

	assert.Equal(t, "booking_1", booking.ID)
	assert.Equal(t, "quote_that_does_not_exist", booking.QuoteID)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, customer, booking.Customer)
	assert.Equal(t, "2024-05-01T12:30:00.000Z", booking.ScheduledTime)
	assert.Equal(t, 30, booking.TechnicianETA)
	assert.Equal(t, "http://localhost:3000/track/#booking_1", booking.TrackingURL)
	assert.Equal(t, "http://localhost:3000/checkout/#booking_1", booking.CheckoutURL)
}

func TestCreateBookingKeepsScheduledTime(t *testing.T) {
	bs := newBookingService(nil)

	booking, _, err := bs.CreateBooking(context.Background(), &CreateBookingRequest{
		QuoteID:       "quote_1",
		ScheduledTime: "2030-01-01T09:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2030-01-01T09:00:00Z", booking.ScheduledTime)
	assert.Nil(t, booking.Customer)
}

func TestCreateBookingIdempotency(t *testing.T) {
	idem := newMemoryIdempotency()
	bs := newBookingService(idem)
	ctx := context.Background()

	first, replayed, err := bs.CreateBooking(ctx, &CreateBookingRequest{QuoteID: "quote_1", IdempotencyKey: "key-1"})
	require.NoError(t, err)
	assert.False(t, replayed)

	second, replayed, err := bs.CreateBooking(ctx, &CreateBookingRequest{QuoteID: "quote_2", IdempotencyKey: "key-1"})
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first, second)

	third, replayed, err := bs.CreateBooking(ctx, &CreateBookingRequest{QuoteID: "quote_1"})
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestCreateBookingIdempotencyLostClaimReplays(t *testing.T) {
	idem := newMemoryIdempotency()
	bs := newBookingService(idem)
	ctx := context.Background()

	first, _, err := bs.CreateBooking(ctx, &CreateBookingRequest{QuoteID: "quote_1", IdempotencyKey: "key-1"})
	require.NoError(t, err)

	idem.missGets = 1
	second, replayed, err := bs.CreateBooking(ctx, &CreateBookingRequest{QuoteID: "quote_1", IdempotencyKey: "key-1"})
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, bs.store.CountBookings())
}

func TestCreateBookingConcurrentRetries(t *testing.T) {
	idem := newMemoryIdempotency()
	bs := newBookingService(idem)
	ctx := context.Background()

	const retries = 20
	ids := make([]string, retries)
	var wg sync.WaitGroup
	for i := 0; i < retries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			booking, _, err := bs.CreateBooking(ctx, &CreateBookingRequest{QuoteID: "quote_1", IdempotencyKey: "retry-key"})
			if assert.NoError(t, err) {
				ids[i] = booking.ID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, bs.store.CountBookings())
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestCreateBookingIdempotencyErrorDegrades(t *testing.T) {
	idem := newMemoryIdempotency()
	idem.getErr = errors.New("redis unavailable")
	bs := newBookingService(idem)

	booking, replayed, err := bs.CreateBooking(context.Background(), &CreateBookingRequest{QuoteID: "q", IdempotencyKey: "k"})
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.NotEmpty(t, booking.ID)
}

func TestCheckout(t *testing.T) {
	bs := newBookingService(nil)
	ctx := context.Background()

	first, err := bs.Checkout(ctx, "booking_never_created")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/success?booking_id=booking_never_created", first.CheckoutURL)
	assert.Equal(t, models.CheckoutStatusCreated, first.Status)

	second, err := bs.Checkout(ctx, "booking_never_created")
	require.NoError(t, err)
	assert.NotEqual(t, first.PaymentIntent, second.PaymentIntent)
	assert.Contains(t, second.PaymentIntent, "pi_test_")
}

func TestGetBookingWithStatus(t *testing.T) {
	sampler := &sequenceSampler{statuses: []string{models.BookingStatusArrived, models.BookingStatusCompleted}}
	bs := newBookingService(nil, WithStatusSampler(sampler), WithSeed(42))
	ctx := context.Background()

	booking, _, err := bs.CreateBooking(ctx, &CreateBookingRequest{QuoteID: "quote_1"})
	require.NoError(t, err)

	view, err := bs.GetBookingWithStatus(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusArrived, view.Status)
	assert.Equal(t, booking.ID, view.ID)
	assert.Equal(t, "quote_1", view.QuoteID)
	assert.Equal(t, "John Smith", view.TechnicianName)
	assert.Equal(t, "+1-555-0123", view.TechnicianPhone)

	view, err = bs.GetBookingWithStatus(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, view.Status)

	t.Run("stored booking keeps confirmed status", func(t *testing.T) {
		stored, err := bs.store.GetBookingByID(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	})
}

func TestGetBookingWithStatusRanges(t *testing.T) {
	bs := newBookingService(nil, WithSeed(7))
	ctx := context.Background()

	booking, _, err := bs.CreateBooking(ctx, &CreateBookingRequest{QuoteID: "quote_1"})
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		view, err := bs.GetBookingWithStatus(ctx, booking.ID)
		require.NoError(t, err)

		assert.Contains(t, models.BookingStatuses, view.Status)
		assert.GreaterOrEqual(t, view.CurrentETA, 5)
		assert.Less(t, view.CurrentETA, 35)
		assert.InDelta(t, 40.7128, view.TechnicianLocation.Lat, 0.005)
		assert.InDelta(t, -74.0060, view.TechnicianLocation.Lng, 0.005)
	}
}

func TestGetBookingWithStatusNotFound(t *testing.T) {
	bs := newBookingService(nil)

	_, err := bs.GetBookingWithStatus(context.Background(), "booking_missing")
	assert.ErrorIs(t, err, store.ErrBookingNotFound)
}

func TestRandomStatusSamplerCoversAllStatuses(t *testing.T) {
	sampler := NewRandomStatusSampler(1)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		seen[sampler.Sample()] = true
	}
	assert.Len(t, seen, len(models.BookingStatuses))
}

func TestFixedStatusSampler(t *testing.T) {
	assert.Equal(t, "arrived", FixedStatusSampler("arrived").Sample())
}
