package models

import "encoding/json"

// Service represents a bookable offering in the catalog
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	BasePrice   float64 `json:"base_price"`
	Description string  `json:"description"`
}

// Service categories
const (
	CategoryAutomobile  = "automobile"
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
)

// VehicleTaxonomy lists the vehicles offered to clients for display
type VehicleTaxonomy struct {
	Makes  []string            `json:"makes"`
	Models map[string][]string `json:"models"`
	Years  []int               `json:"years"`
}

// VehicleInfo is free text supplied by the client. Every field is echoed
// back exactly as it was sent, and fields that were not sent are omitted.
type VehicleInfo struct {
	Make  json.RawMessage `json:"make,omitempty"`
	Model json.RawMessage `json:"model,omitempty"`
	Year  json.RawMessage `json:"year,omitempty"`
}

// Quote represents a priced estimate for a service request
type Quote struct {
	ID          string      `json:"id"`
	ServiceID   string      `json:"service_id"`
	TotalPrice  float64     `json:"total_price"`
	BasePrice   float64     `json:"base_price"`
	ServiceFee  float64     `json:"service_fee"`
	ETAMinutes  int         `json:"eta_minutes"`
	Address     string      `json:"address"`
	VehicleInfo VehicleInfo `json:"vehicle_info"`
	KeyType     string      `json:"key_type"`
	// nil until the quote is repriced with an add_ons list
	AddOns      *[]string   `json:"add_ons,omitempty"`
}

// AddOnList returns the selected add-ons, nil when none were set
func (q *Quote) AddOnList() []string {
	if q.AddOns == nil {
		return nil
	}
	return *q.AddOns
}

// PromoQuote is a quote merged with a discount preview. It is never stored.
type PromoQuote struct {
	Quote
	PromoCode       string  `json:"promo_code"`
	DiscountPercent int     `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	FinalPrice      float64 `json:"final_price"`
}

// Customer holds the contact details attached to a booking. Values are
// kept as sent, whatever their JSON type.
type Customer struct {
	Name  json.RawMessage `json:"name,omitempty"`
	Phone json.RawMessage `json:"phone,omitempty"`
	Email json.RawMessage `json:"email,omitempty"`
}

// Booking represents a confirmed service request derived from a quote
type Booking struct {
	ID            string    `json:"id"`
	QuoteID       string    `json:"quote_id"`
	Status        string    `json:"status"`
	Customer      *Customer `json:"customer,omitempty"`
	ScheduledTime string    `json:"scheduled_time"`
	TechnicianETA int       `json:"technician_eta"`
	TrackingURL   string    `json:"tracking_url"`
	CheckoutURL   string    `json:"checkout_url"`
}

// Location is a latitude/longitude pair
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BookingView is a stored booking decorated with simulated tracking data
type BookingView struct {
	Booking
	TechnicianName     string   `json:"technician_name"`
	TechnicianPhone    string   `json:"technician_phone"`
	CurrentETA         int      `json:"current_eta"`
	TechnicianLocation Location `json:"technician_location"`
}

// CheckoutSession is the simulated payment checkout for a booking
type CheckoutSession struct {
	CheckoutURL   string `json:"checkout_url"`
	PaymentIntent string `json:"payment_intent"`
	Status        string `json:"status"`
}

// Booking statuses
const (
	BookingStatusConfirmed          = "confirmed"
	BookingStatusTechnicianAssigned = "technician_assigned"
	BookingStatusTechnicianEnroute  = "technician_enroute"
	BookingStatusArrived            = "arrived"
	BookingStatusCompleted          = "completed"
)

// BookingStatuses lists every status in lifecycle order
var BookingStatuses = []string{
	BookingStatusConfirmed,
	BookingStatusTechnicianAssigned,
	BookingStatusTechnicianEnroute,
	BookingStatusArrived,
	BookingStatusCompleted,
}

// CheckoutStatusCreated is returned by every simulated checkout
const CheckoutStatusCreated = "checkout_created"
