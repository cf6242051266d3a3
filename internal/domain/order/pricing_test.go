package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/xenking/order-entry/internal/money"
)

func line(productID int64, qty int, price string) Line {
	p := money.MustParse(price)
	return Line{
		ProductID:   Ref(productID),
		ProductName: "Product",
		Quantity:    qty,
		UnitPrice:   &p,
	}
}

func assertPricing(t *testing.T, p Pricing, subtotal, discount, tax, total string) {
	t.Helper()
	assert.Equal(t, subtotal, p.Subtotal.String(), "subtotal")
	assert.Equal(t, discount, p.Discount.String(), "discount")
	assert.Equal(t, tax, p.Tax.String(), "tax")
	assert.Equal(t, total, p.Total.String(), "total")
}

func TestComputePricing_DiscountTiers(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount string
	}{
		{name: "below first tier", price: "499.99", discount: "0.00"},
		{name: "at 5% tier", price: "500.00", discount: "25.00"},
		{name: "inside 5% tier", price: "750.00", discount: "37.50"},
		{name: "top of 5% tier", price: "999.99", discount: "50.00"},
		{name: "at 10% tier", price: "1000.00", discount: "100.00"},
		{name: "inside 10% tier", price: "1500.00", discount: "150.00"},
		{name: "top of 10% tier", price: "1999.99", discount: "200.00"},
		{name: "at 15% tier", price: "2000.00", discount: "300.00"},
		{name: "above 15% tier", price: "3000.00", discount: "450.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputePricing([]Line{line(1, 1, tt.price)})
			assert.Equal(t, tt.price, p.Subtotal.String())
			assert.Equal(t, tt.discount, p.Discount.String())
		})
	}
}

func TestComputePricing_WorkedExamples(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		p := ComputePricing([]Line{line(1, 1, "1000.00")})
		assertPricing(t, p, "1000.00", "100.00", "134.78", "1034.78")
	})

	t.Run("multiple lines", func(t *testing.T) {
		p := ComputePricing([]Line{
			line(1, 2, "1299.99"),
			line(2, 2, "29.99"),
			line(3, 1, "149.99"),
		})
		assertPricing(t, p, "2809.95", "421.49", "357.67", "2746.13")
	})

	t.Run("no discount", func(t *testing.T) {
		p := ComputePricing([]Line{line(1, 1, "100.00")})
		assertPricing(t, p, "100.00", "0.00", "14.98", "114.98")
	})
}

func TestComputePricing_Empty(t *testing.T) {
	assertPricing(t, ComputePricing(nil), "0.00", "0.00", "0.00", "0.00")
	assertPricing(t, ComputePricing([]Line{}), "0.00", "0.00", "0.00", "0.00")
}

func TestComputePricing_RoundsSumOnce(t *testing.T) {
	// Three lines of 3.335 each: per-line rounding would give 10.02.
	p := ComputePricing([]Line{
		line(1, 1, "3.335"),
		line(2, 1, "3.335"),
		line(3, 1, "3.335"),
	})
	assert.Equal(t, "10.01", p.Subtotal.String())
}

func TestComputePricing_SubtotalRounding(t *testing.T) {
	tests := []struct {
		price string
		want  string
	}{
		{price: "10.005", want: "10.01"},
		{price: "10.004", want: "10.00"},
		{price: "10.006", want: "10.01"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			p := ComputePricing([]Line{line(1, 1, tt.price)})
			assert.Equal(t, tt.want, p.Subtotal.String())
		})
	}
}

func TestComputePricing_OrderIndependent(t *testing.T) {
	lines := []Line{
		line(1, 3, "19.99"),
		line(2, 1, "0.005"),
		line(3, 7, "120.10"),
		line(4, 2, "333.333"),
	}
	reversed := []Line{lines[3], lines[2], lines[1], lines[0]}
	rotated := []Line{lines[2], lines[0], lines[3], lines[1]}

	want := ComputePricing(lines)
	for _, permutation := range [][]Line{reversed, rotated} {
		got := ComputePricing(permutation)
		assert.True(t, want.Subtotal.Equal(got.Subtotal))
		assert.True(t, want.Total.Equal(got.Total))
	}
}

func TestComputePricing_NegativePricePropagates(t *testing.T) {
	p := ComputePricing([]Line{line(1, 1, "-10.00")})
	assertPricing(t, p, "-10.00", "0.00", "-1.50", "-11.50")
}

func TestComputePricing_MissingUnitPriceCountsAsZero(t *testing.T) {
	p := ComputePricing([]Line{
		{ProductID: Ref(1), Quantity: 2},
		line(2, 1, "10.00"),
	})
	assert.Equal(t, "10.00", p.Subtotal.String())
}

func TestDiscountRate(t *testing.T) {
	assert.True(t, DiscountRate(money.MustParse("0")).IsZero())
	assert.True(t, DiscountRate(money.MustParse("500")).Equal(decimal.RequireFromString("0.05")))
	assert.True(t, DiscountRate(money.MustParse("1000")).Equal(decimal.RequireFromString("0.10")))
	assert.True(t, DiscountRate(money.MustParse("2000")).Equal(decimal.RequireFromString("0.15")))
	assert.True(t, DiscountRate(money.MustParse("-5000")).IsZero())
}
