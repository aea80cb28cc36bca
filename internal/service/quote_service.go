package service

import (
	"context"
	"encoding/json"
	"fmt"

	"unbolt-api/internal/broker"
	"unbolt-api/internal/models"
	"unbolt-api/internal/pricing"
	"unbolt-api/internal/store"
	"unbolt-api/internal/util"

	"go.uber.org/zap"
)

const defaultKeyType = "standard"

// QuoteService handles quote pricing and lifecycle
type QuoteService struct {
	store          *store.QuoteStore
	eventPublisher *broker.EventPublisher
	newID          IDGenerator
	logger         *zap.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(store *store.QuoteStore, eventPublisher *broker.EventPublisher) *QuoteService {
	return &QuoteService{
		store:          store,
		eventPublisher: eventPublisher,
		newID:          NewID,
		logger:         util.GetLogger(),
	}
}

// CreateQuoteRequest represents a request to create a quote. Nothing is
// validated; absent fields stay empty on the stored quote.
type CreateQuoteRequest struct {
	ServiceID    string          `json:"service_id"`
	Address      string          `json:"address"`
	VehicleMake  json.RawMessage `json:"vehicle_make"`
	VehicleModel json.RawMessage `json:"vehicle_model"`
	VehicleYear  json.RawMessage `json:"vehicle_year"`
	KeyType      string          `json:"key_type"`
}

// RepriceRequest carries the full add-on set for a quote. A nil AddOns means
// the key was absent or null; an empty list is kept as sent.
type RepriceRequest struct {
	AddOns []string `json:"add_ons"`
}

// PromoRequest carries the promo code to preview
type PromoRequest struct {
	PromoCode string `json:"promo_code"`
}

// CreateQuote prices and stores a new quote
func (s *QuoteService) CreateQuote(ctx context.Context, req *CreateQuoteRequest) (*models.Quote, error) {
	ctx, span := util.StartSpan(ctx, "QuoteService.CreateQuote")
	defer span.End()

	keyType := req.KeyType
	if keyType == "" {
		keyType = defaultKeyType
	}

	base := pricing.BasePriceFor(req.ServiceID)
	quote := &models.Quote{
		ID:         s.newID("quote"),
		ServiceID:  req.ServiceID,
		TotalPrice: base,
		BasePrice:  base,
		ServiceFee: pricing.ServiceFee,
		ETAMinutes: pricing.ETAMinutes,
		Address:    req.Address,
		VehicleInfo: models.VehicleInfo{
			Make:  req.VehicleMake,
			Model: req.VehicleModel,
			Year:  req.VehicleYear,
		},
		KeyType: keyType,
	}

	if err := s.store.CreateQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	util.QuotesCreatedTotal.WithLabelValues(serviceLabel(req.ServiceID)).Inc()
	util.QuoteTotalPrice.Observe(quote.TotalPrice)
	s.logger.Info("Quote created",
		zap.String("quote_id", quote.ID),
		zap.String("service_id", quote.ServiceID),
		zap.Float64("total_price", quote.TotalPrice))

	if err := s.eventPublisher.PublishQuoteCreated(ctx, quote); err != nil {
		util.EventPublishFailedTotal.WithLabelValues(models.EventTypeQuoteCreated).Inc()
		s.logger.Error("Failed to publish QuoteCreated event", zap.Error(err))
	}

	return quote, nil
}

// GetQuote retrieves a quote by ID
func (s *QuoteService) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	ctx, span := util.StartSpan(ctx, "QuoteService.GetQuote")
	defer span.End()

	return s.store.GetQuoteByID(ctx, quoteID)
}

// RepriceQuote replaces the quote's add-ons and recomputes its total from
// the base price. Earlier reprices do not accumulate.
func (s *QuoteService) RepriceQuote(ctx context.Context, quoteID string, req *RepriceRequest) (*models.Quote, error) {
	ctx, span := util.StartSpan(ctx, "QuoteService.RepriceQuote")
	defer span.End()

	var addOns *[]string
	if req.AddOns != nil {
		list := append([]string{}, req.AddOns...)
		addOns = &list
	}

	quote, err := s.store.UpdateQuote(ctx, quoteID, func(q *models.Quote) {
		q.AddOns = addOns
		q.TotalPrice = pricing.RepriceTotal(q.BasePrice, q.AddOnList())
	})
	if err != nil {
		return nil, err
	}

	util.QuotesRepricedTotal.Inc()
	util.QuoteTotalPrice.Observe(quote.TotalPrice)
	s.logger.Info("Quote repriced",
		zap.String("quote_id", quote.ID),
		zap.Strings("add_ons", quote.AddOnList()),
		zap.Float64("total_price", quote.TotalPrice))

	if err := s.eventPublisher.PublishQuoteRepriced(ctx, quote); err != nil {
		util.EventPublishFailedTotal.WithLabelValues(models.EventTypeQuoteRepriced).Inc()
		s.logger.Error("Failed to publish QuoteRepriced event", zap.Error(err))
	}

	return quote, nil
}

// ApplyPromo previews a promo code against the quote's current total. The
// stored quote is left untouched, so repeated calls never compound.
func (s *QuoteService) ApplyPromo(ctx context.Context, quoteID string, req *PromoRequest) (*models.PromoQuote, error) {
	ctx, span := util.StartSpan(ctx, "QuoteService.ApplyPromo")
	defer span.End()

	quote, err := s.store.GetQuoteByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	promo := pricing.ApplyPromo(quote.TotalPrice, req.PromoCode)

	outcome := "applied"
	if promo.DiscountPercent == 0 {
		outcome = "unknown_code"
	}
	util.PromoPreviewsTotal.WithLabelValues(outcome).Inc()

	s.logger.Info("Promo previewed",
		zap.String("quote_id", quote.ID),
		zap.String("promo_code", req.PromoCode),
		zap.Int("discount_percent", promo.DiscountPercent),
		zap.Float64("final_price", promo.FinalPrice))

	return &models.PromoQuote{
		Quote:           *quote,
		PromoCode:       req.PromoCode,
		DiscountPercent: promo.DiscountPercent,
		DiscountAmount:  promo.DiscountAmount,
		FinalPrice:      promo.FinalPrice,
	}, nil
}

// serviceLabel keeps metric cardinality bounded for unknown service ids
func serviceLabel(serviceID string) string {
	if pricing.IsKnownService(serviceID) {
		return serviceID
	}
	return "other"
}
