package orders

import (
	"github.com/shopspring/decimal"

	"github.com/calebhawthorne/regenmarket-backend/pkg/config"
	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
)

// orderTotals holds the server-computed monetary summary in cents.
type orderTotals struct {
	Subtotal int
	Shipping int
	Tax      int
	Total    int
}

// computeTotals derives the order summary from matched lines. Client-supplied
// totals are never trusted.
func computeTotals(matches []lineMatch, method enums.ShippingMethod, cfg config.CheckoutConfig) orderTotals {
	subtotal := 0
	for _, m := range matches {
		subtotal += m.product.EffectivePriceCents() * m.line.Quantity
	}

	shipping := cfg.StandardShippingCents
	if method == enums.ShippingMethodExpress {
		shipping = cfg.ExpressShippingCents
	}

	tax := taxCents(subtotal, cfg.TaxRateBasisPoints)

	return orderTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// taxCents applies the flat basis-point rate to the subtotal, rounding half
// away from zero to stay in integer cents.
func taxCents(subtotalCents int, basisPoints int) int {
	if subtotalCents <= 0 || basisPoints <= 0 {
		return 0
	}
	rate := decimal.New(int64(basisPoints), -4)
	tax := decimal.NewFromInt(int64(subtotalCents)).Mul(rate)
	return int(tax.Round(0).IntPart())
}
