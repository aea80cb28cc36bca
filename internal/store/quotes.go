package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"unbolt-api/internal/models"
)

// QuoteStore keeps quotes in memory keyed by id
type QuoteStore struct {
	mu     sync.Mutex
	quotes map[string]*models.Quote
}

// NewQuoteStore creates an empty quote store
func NewQuoteStore() *QuoteStore {
	return &QuoteStore{quotes: make(map[string]*models.Quote)}
}

// CreateQuote stores a new quote
func (s *QuoteStore) CreateQuote(ctx context.Context, quote *models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quotes[quote.ID]; exists {
		return fmt.Errorf("quote id already in use: %s", quote.ID)
	}
	s.quotes[quote.ID] = copyQuote(quote)
	return nil
}

// GetQuoteByID retrieves a copy of a quote
func (s *QuoteStore) GetQuoteByID(ctx context.Context, id string) (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	return copyQuote(q), nil
}

// UpdateQuote applies fn to the stored quote while holding the lock and
// returns a copy of the result
func (s *QuoteStore) UpdateQuote(ctx context.Context, id string, fn func(q *models.Quote)) (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	fn(q)
	return copyQuote(q), nil
}

// CountQuotes returns the number of stored quotes
func (s *QuoteStore) CountQuotes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quotes)
}

func copyQuote(q *models.Quote) *models.Quote {
	c := *q
	if q.AddOns != nil {
		list := append([]string{}, *q.AddOns...)
		c.AddOns = &list
	}
	c.VehicleInfo.Make = copyRaw(q.VehicleInfo.Make)
	c.VehicleInfo.Model = copyRaw(q.VehicleInfo.Model)
	c.VehicleInfo.Year = copyRaw(q.VehicleInfo.Year)
	return &c
}

func copyRaw(r json.RawMessage) json.RawMessage {
	if r == nil {
		return nil
	}
	return append(json.RawMessage{}, r...)
}
