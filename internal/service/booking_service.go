package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"unbolt-api/internal/broker"
	"unbolt-api/internal/models"
	"unbolt-api/internal/store"
	"unbolt-api/internal/util"

	"go.uber.org/zap"
)

const (
	technicianETAMinutes = 30
	technicianName       = "John Smith"
	technicianPhone      = "+1-555-0123"

	// current_eta is drawn from [minCurrentETA, minCurrentETA+currentETASpread)
	minCurrentETA    = 5
	currentETASpread = 30

	referenceLat = 40.7128
	referenceLng = -74.0060
	// technician positions stay within ±locationJitter/2 degrees
	locationJitter = 0.01

	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

// IdempotencyStore remembers which booking a client idempotency key produced
type IdempotencyStore interface {
	GetIdempotencyKey(ctx context.Context, key string) (string, bool, error)
	SetIdempotencyKey(ctx context.Context, key, bookingID string, ttl time.Duration) (bool, error)
}

// BookingConfig holds the settings the booking service needs
type BookingConfig struct {
	BaseURL        string
	IdempotencyTTL time.Duration
}

// BookingService handles bookings, simulated checkout and tracking
type BookingService struct {
	store          *store.BookingStore
	eventPublisher *broker.EventPublisher
	idempotency    IdempotencyStore
	cfg            BookingConfig
	claimMu        sync.Mutex
	sampler        StatusSampler
	rnd            *lockedRand
	now            func() time.Time
	newID          IDGenerator
	logger         *zap.Logger
}

// BookingOption customises a BookingService
type BookingOption func(*BookingService)

// WithStatusSampler replaces the random status generator
func WithStatusSampler(sampler StatusSampler) BookingOption {
	return func(s *BookingService) { s.sampler = sampler }
}

// WithSeed makes the simulated ETA and location reproducible
func WithSeed(seed int64) BookingOption {
	return func(s *BookingService) { s.rnd = newLockedRand(seed) }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

// WithIDGenerator overrides booking and payment intent id generation
func WithIDGenerator(gen IDGenerator) BookingOption {
	return func(s *BookingService) { s.newID = gen }
}

// NewBookingService creates a new booking service. idempotency may be nil.
func NewBookingService(
	store *store.BookingStore,
	eventPublisher *broker.EventPublisher,
	idempotency IdempotencyStore,
	cfg BookingConfig,
	opts ...BookingOption,
) *BookingService {
	s := &BookingService{
		store:          store,
		eventPublisher: eventPublisher,
		idempotency:    idempotency,
		cfg:            cfg,
		sampler:        NewRandomStatusSampler(0),
		rnd:            newLockedRand(time.Now().UnixNano()),
		now:            time.Now,
		newID:          NewID,
		logger:         util.GetLogger(),
	}
	s.cfg.BaseURL = strings.TrimRight(s.cfg.BaseURL, "/")

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBookingRequest represents a request to book a quote. The quote id is
// not checked against stored quotes.
type CreateBookingRequest struct {
	QuoteID        string           `json:"quote_id"`
	Customer       *models.Customer `json:"customer"`
	ScheduledTime  string           `json:"scheduled_time"`
	IdempotencyKey string           `json:"idempotency_key,omitempty"`
}

// CreateBooking confirms a booking. When the request carries an idempotency
// key that was already used, the original booking is returned with
// replayed set.
func (s *BookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (booking *models.Booking, replayed bool, err error) {
	ctx, span := util.StartSpan(ctx, "BookingService.CreateBooking")
	defer span.End()

	if existing := s.lookupIdempotent(ctx, req.IdempotencyKey); existing != nil {
		return s.replay(req.IdempotencyKey, existing), true, nil
	}

	booking = s.newBooking(req)

	if req.IdempotencyKey != "" && s.idempotency != nil {
		existing, err := s.claimAndStore(ctx, req.IdempotencyKey, booking)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return s.replay(req.IdempotencyKey, existing), true, nil
		}
	} else if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, false, fmt.Errorf("failed to create booking: %w", err)
	}

	util.BookingsCreatedTotal.Inc()
	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("quote_id", booking.QuoteID),
		zap.String("scheduled_time", booking.ScheduledTime))

	if err := s.eventPublisher.PublishBookingCreated(ctx, booking); err != nil {
		util.EventPublishFailedTotal.WithLabelValues(models.EventTypeBookingCreated).Inc()
		s.logger.Error("Failed to publish BookingCreated event", zap.Error(err))
	}

	return booking, false, nil
}

func (s *BookingService) newBooking(req *CreateBookingRequest) *models.Booking {
	scheduled := req.ScheduledTime
	if scheduled == "" {
		scheduled = s.now().UTC().Format(isoMillis)
	}

	id := s.newID("booking")
	return &models.Booking{
		ID:            id,
		QuoteID:       req.QuoteID,
		Status:        models.BookingStatusConfirmed,
		Customer:      req.Customer,
		ScheduledTime: scheduled,
		TechnicianETA: technicianETAMinutes,
		TrackingURL:   fmt.Sprintf("%s/track/#%s", s.cfg.BaseURL, id),
		CheckoutURL:   fmt.Sprintf("%s/checkout/#%s", s.cfg.BaseURL, id),
	}
}

func (s *BookingService) replay(key string, existing *models.Booking) *models.Booking {
	util.BookingsReplayedTotal.Inc()
	s.logger.Info("Duplicate booking request detected",
		zap.String("idempotency_key", key),
		zap.String("booking_id", existing.ID))
	return existing
}

func (s *BookingService) lookupIdempotent(ctx context.Context, key string) *models.Booking {
	if key == "" || s.idempotency == nil {
		return nil
	}

	bookingID, found, err := s.idempotency.GetIdempotencyKey(ctx, key)
	if err != nil {
		s.logger.Warn("Idempotency lookup failed, creating new booking",
			zap.String("idempotency_key", key),
			zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}

	booking, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		// the key outlived the in-memory booking, e.g. across a restart
		s.logger.Warn("Idempotency key points at unknown booking",
			zap.String("idempotency_key", key),
			zap.String("booking_id", bookingID))
		return nil
	}
	return booking
}

// claimAndStore binds key to the new booking and stores it while holding
// claimMu, so a request that loses the claim always finds the winner's
// booking. The winner's booking is returned when the key was taken.
func (s *BookingService) claimAndStore(ctx context.Context, key string, booking *models.Booking) (*models.Booking, error) {
	s.claimMu.Lock()
	defer s.claimMu.Unlock()

	if !s.claimIdempotent(ctx, key, booking.ID) {
		if existing := s.lookupIdempotent(ctx, key); existing != nil {
			return existing, nil
		}
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return nil, nil
}

// claimIdempotent binds key to bookingID unless another booking holds it.
// A failing idempotency store counts as a successful claim so bookings
// are still accepted.
func (s *BookingService) claimIdempotent(ctx context.Context, key, bookingID string) bool {
	ok, err := s.idempotency.SetIdempotencyKey(ctx, key, bookingID, s.cfg.IdempotencyTTL)
	if err != nil {
		s.logger.Warn("Failed to store idempotency key",
			zap.String("idempotency_key", key),
			zap.Error(err))
		return true
	}
	return ok
}

// Checkout starts a simulated payment for a booking. Every call yields a new
// payment intent, and unknown booking ids are accepted.
func (s *BookingService) Checkout(ctx context.Context, bookingID string) (*models.CheckoutSession, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.Checkout")
	defer span.End()

	if _, err := s.store.GetBookingByID(ctx, bookingID); errors.Is(err, store.ErrBookingNotFound) {
		s.logger.Warn("Checkout requested for unknown booking", zap.String("booking_id", bookingID))
	}

	session := &models.CheckoutSession{
		CheckoutURL:   fmt.Sprintf("%s/success?booking_id=%s", s.cfg.BaseURL, url.QueryEscape(bookingID)),
		PaymentIntent: s.newID("pi_test"),
		Status:        models.CheckoutStatusCreated,
	}

	util.CheckoutsCreatedTotal.Inc()
	s.logger.Info("Checkout created",
		zap.String("booking_id", bookingID),
		zap.String("payment_intent", session.PaymentIntent))

	if err := s.eventPublisher.PublishCheckoutCreated(ctx, bookingID, session); err != nil {
		util.EventPublishFailedTotal.WithLabelValues(models.EventTypeCheckoutCreated).Inc()
		s.logger.Error("Failed to publish CheckoutCreated event", zap.Error(err))
	}

	return session, nil
}

// GetBookingWithStatus returns the stored booking overlaid with simulated
// tracking data. Status, ETA and location are resampled on every call.
func (s *BookingService) GetBookingWithStatus(ctx context.Context, bookingID string) (*models.BookingView, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.GetBookingWithStatus")
	defer span.End()

	booking, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	view := &models.BookingView{
		Booking:         *booking,
		TechnicianName:  technicianName,
		TechnicianPhone: technicianPhone,
		CurrentETA:      minCurrentETA + s.rnd.Intn(currentETASpread),
		TechnicianLocation: models.Location{
			Lat: referenceLat + (s.rnd.Float64()-0.5)*locationJitter,
			Lng: referenceLng + (s.rnd.Float64()-0.5)*locationJitter,
		},
	}
	view.Status = s.sampler.Sample()

	util.BookingStatusPollsTotal.WithLabelValues(view.Status).Inc()
	return view, nil
}
