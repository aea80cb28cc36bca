package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasePriceFor(t *testing.T) {
	tests := []struct {
		serviceID string
		want      float64
	}{
		{"auto_lockout", 79.99},
		{"key_programming", 129.99},
		{"home_lockout", 89.99},
		{"commercial_lockout", 99.99},
		{"", 99.99},
		{"safe_cracking", 99.99},
	}

	for _, tt := range tests {
		t.Run(tt.serviceID, func(t *testing.T) {
			assert.Equal(t, tt.want, BasePriceFor(tt.serviceID))
		})
	}
}

func TestIsKnownService(t *testing.T) {
	assert.True(t, IsKnownService("commercial_lockout"))
	assert.False(t, IsKnownService("jetpack"))
}

func TestRepriceTotal(t *testing.T) {
	assert.Equal(t, 104.99, RepriceTotal(79.99, []string{"remote"}))
	assert.Equal(t, 129.99, RepriceTotal(79.99, []string{"ignition_repair"}))
	assert.Equal(t, 174.99, RepriceTotal(79.99, []string{"remote", "ignition_repair", "lockout"}))
	assert.Equal(t, 79.99, RepriceTotal(79.99, nil))
	assert.Equal(t, 79.99, RepriceTotal(79.99, []string{"jetpack"}))
	assert.Equal(t, 104.99, RepriceTotal(79.99, []string{"remote", "remote"}))
	assert.Equal(t, 99.99, RepriceTotal(79.99, []string{"lockout"}))
	assert.Equal(t, 79.99, RepriceTotal(79.99, []string{}))
}

func TestApplyPromo(t *testing.T) {
	t.Run("ten percent rounds to cents", func(t *testing.T) {
		p := ApplyPromo(104.99, "UNBOLT10")
		assert.Equal(t, 10, p.DiscountPercent)
		assert.Equal(t, 10.50, p.DiscountAmount)
		assert.Equal(t, 94.49, p.FinalPrice)
	})

	t.Run("twenty percent", func(t *testing.T) {
		p := ApplyPromo(79.99, "UNBOLT20")
		assert.Equal(t, 20, p.DiscountPercent)
		assert.Equal(t, 16.0, p.DiscountAmount)
		assert.Equal(t, 63.99, p.FinalPrice)
	})

	t.Run("unknown code gives no discount", func(t *testing.T) {
		p := ApplyPromo(104.99, "FREESTUFF")
		assert.Zero(t, p.DiscountPercent)
		assert.Zero(t, p.DiscountAmount)
		assert.Equal(t, 104.99, p.FinalPrice)
	})

	t.Run("codes are case sensitive", func(t *testing.T) {
		assert.Zero(t, ApplyPromo(100, "unbolt10").DiscountPercent)
	})

	t.Run("empty code", func(t *testing.T) {
		p := ApplyPromo(100, "")
		assert.Zero(t, p.DiscountPercent)
		assert.Equal(t, 100.0, p.FinalPrice)
	})
}
