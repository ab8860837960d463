package checkout

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ashishpimple94/boultindia-api/cart"
	"github.com/ashishpimple94/boultindia-api/models"
)

// GSTRate is the inclusive goods-and-services tax rate applied to every
// listed price.
const GSTRate = 0.18

// NewOrderID generates a time-based storefront order id.
func NewOrderID(now time.Time) string {
	return "ORDER_" + strconv.FormatInt(now.UnixMilli(), 10)
}

// BuildItems freezes cart lines into order snapshot items. A line with no
// variant is recorded as "Default".
func BuildItems(items []cart.LineItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		variant := item.Variant
		if variant == "" {
			variant = "Default"
		}
		out = append(out, models.OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Variant:   variant,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
			Image:     item.Product.Image,
		})
	}
	return out
}

// TaxBreakdown splits a GST-inclusive amount into subtotal and tax, the
// way the storefront invoice presents it.
type TaxBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	GST      float64 `json:"gst"`
	Total    float64 `json:"total"`
}

func Tax(amount float64) TaxBreakdown {
	subtotal := amount / (1 + GSTRate)
	return TaxBreakdown{
		Subtotal: round2(subtotal),
		GST:      round2(amount - subtotal),
		Total:    amount,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidPaymentMethod reports whether the method is one of the fixed
// enumeration accepted at checkout.
func ValidPaymentMethod(m string) bool {
	switch m {
	case models.PaymentMethodCOD, models.PaymentMethodCard, models.PaymentMethodUPI, models.PaymentMethodNetBanking:
		return true
	}
	return false
}

// Paise converts a rupee amount to the gateway's minor units.
func Paise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", amount)
	}
	return nil
}
