package api

import (
	"errors"
	"net/http"
	"time"

	"unbolt-api/internal/catalog"
	"unbolt-api/internal/service"
	"unbolt-api/internal/store"
	"unbolt-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const version = "1.0.0"

// Handler contains HTTP handlers
type Handler struct {
	quoteService   *service.QuoteService
	bookingService *service.BookingService
	logger         *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(quoteService *service.QuoteService, bookingService *service.BookingService) *Handler {
	return &Handler{
		quoteService:   quoteService,
		bookingService: bookingService,
		logger:         util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(requestLogger(h.logger))

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/track", h.trackingPage)
	router.GET("/success", h.successPage)

	v1 := router.Group("/v1")
	{
		v1.GET("/services", h.listServices)
		v1.GET("/vehicles/taxonomy", h.vehicleTaxonomy)

		v1.POST("/quotes", h.createQuote)
		v1.GET("/quotes/:id", h.getQuote)
		v1.POST("/quotes/:id/reprice", h.repriceQuote)
		v1.POST("/quotes/:id/promo", h.applyPromo)

		v1.POST("/bookings", h.createBooking)
		v1.POST("/bookings/:id/checkout", h.checkout)
		v1.GET("/bookings/:id", h.getBooking)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"version":   version,
	})
}

func (h *Handler) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": catalog.ListServices()})
}

func (h *Handler) vehicleTaxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.ListVehicleTaxonomy())
}

// createQuote handles quote creation
func (h *Handler) createQuote(c *gin.Context) {
	var req service.CreateQuoteRequest
	h.bindPermissive(c, &req)

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *Handler) getQuote(c *gin.Context) {
	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *Handler) repriceQuote(c *gin.Context) {
	var req service.RepriceRequest
	h.bindPermissive(c, &req)

	quote, err := h.quoteService.RepriceQuote(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *Handler) applyPromo(c *gin.Context) {
	var req service.PromoRequest
	h.bindPermissive(c, &req)

	view, err := h.quoteService.ApplyPromo(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// createBooking handles booking creation
func (h *Handler) createBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	h.bindPermissive(c, &req)

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	booking, replayed, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if replayed {
		c.Header("X-Idempotency-Hit", "true")
	}
	c.JSON(http.StatusOK, booking)
}

func (h *Handler) checkout(c *gin.Context) {
	session, err := h.bookingService.Checkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *Handler) getBooking(c *gin.Context) {
	view, err := h.bookingService.GetBookingWithStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// bindPermissive decodes the JSON body into req. Bodies that fail to decode
// are tolerated: whatever fields were decoded are kept and the rest stay empty.
func (h *Handler) bindPermissive(c *gin.Context, req interface{}) {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Debug("Request body not fully decoded",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrQuoteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quote not found"})
	case errors.Is(err, store.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	default:
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
