package checkout

import (
	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// LineItem is a processor-ready line: unit amount in minor units (cents),
// quantity always one because the cart holds one entry per unit.
type LineItem struct {
	Name        string
	Description string
	ImageURL    string
	UnitAmount  int64
	Quantity    int64
}

// MinorUnits converts a major-unit price into minor units, rounding half-up
// at the cent boundary. Going through decimal instead of float math keeps
// prices like 19.995 at exactly 2000 cents.
func MinorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

func toLineItems(items []catalog.Product) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, LineItem{
			Name:        item.Name,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			UnitAmount:  MinorUnits(item.Price),
			Quantity:    1,
		})
	}
	return out
}
