package pricing

import "github.com/shopspring/decimal"

// DefaultBasePrice applies to service ids missing from the price table
const DefaultBasePrice = 99.99

// Per-quote constants
const (
	ServiceFee = 15.00
	ETAMinutes = 45
)

var basePrices = map[string]decimal.Decimal{
	"auto_lockout":       decimal.RequireFromString("79.99"),
	"key_programming":    decimal.RequireFromString("129.99"),
	"home_lockout":       decimal.RequireFromString("89.99"),
	"commercial_lockout": decimal.RequireFromString("99.99"),
}

type addOn struct {
	name      string
	surcharge decimal.Decimal
}

// ordered so totals are summed the same way every call
var addOns = []addOn{
	{name: "remote", surcharge: decimal.NewFromInt(25)},
	{name: "ignition_repair", surcharge: decimal.NewFromInt(50)},
	{name: "lockout", surcharge: decimal.NewFromInt(20)},
}

var promoPercents = map[string]int64{
	"UNBOLT10": 10,
	"UNBOLT20": 20,
}

// Promo is the result of previewing a promo code against a total
type Promo struct {
	DiscountPercent int
	DiscountAmount  float64
	FinalPrice      float64
}

// BasePriceFor returns the catalog price for a service, or DefaultBasePrice
// when the id is unknown
func BasePriceFor(serviceID string) float64 {
	if p, ok := basePrices[serviceID]; ok {
		return p.InexactFloat64()
	}
	return DefaultBasePrice
}

// IsKnownService reports whether the service id has its own price
func IsKnownService(serviceID string) bool {
	_, ok := basePrices[serviceID]
	return ok
}

// RepriceTotal computes base price plus the surcharge of every known add-on.
// Unknown names add nothing and a repeated name is charged once.
func RepriceTotal(basePrice float64, names []string) float64 {
	requested := make(map[string]struct{}, len(names))
	for _, n := range names {
		requested[n] = struct{}{}
	}

	total := decimal.NewFromFloat(basePrice)
	for _, a := range addOns {
		if _, ok := requested[a.name]; ok {
			total = total.Add(a.surcharge)
		}
	}
	return total.InexactFloat64()
}

// ApplyPromo discounts currentTotal by the code's percent. Amounts are
// rounded to cents only here.
func ApplyPromo(currentTotal float64, code string) Promo {
	percent := promoPercents[code]

	total := decimal.NewFromFloat(currentTotal)
	discount := total.Mul(decimal.NewFromInt(percent)).Div(decimal.NewFromInt(100))
	final := total.Sub(discount)

	return Promo{
		DiscountPercent: int(percent),
		DiscountAmount:  discount.Round(2).InexactFloat64(),
		FinalPrice:      final.Round(2).InexactFloat64(),
	}
}
