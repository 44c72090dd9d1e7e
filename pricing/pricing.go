// pricing/pricing.go
package pricing

import "math"

// TaxRate is the flat tax applied to the quote subtotal (items + service fee).
const TaxRate = 0.13

// LaborOnlyCatalogNumber is the reserved catalog number for labor-only rows.
const LaborOnlyCatalogNumber = "00000"

// Item is one quote line as the user typed it. All fields are kept as raw
// text; coercion to numbers happens here, not in the form layer.
type Item struct {
	CatalogNumber string `json:"catalogNumber"`
	Description   string `json:"description"`
	UnitPrice     string `json:"unitPrice"`
	Quantity      string `json:"quantity"`
	Margin        string `json:"margin"`
}

// Totals holds the roll-up values for a set of items plus a service fee.
// Values are unrounded; callers round at display or persistence boundaries.
type Totals struct {
	ItemSubtotal float64 `json:"itemSubtotal"`
	Tax          float64 `json:"tax"`
	GrandTotal   float64 `json:"grandTotal"`
}

// LaborOnlyItem returns the fixed row shape for a labor-only line.
func LaborOnlyItem() Item {
	return Item{
		CatalogNumber: LaborOnlyCatalogNumber,
		Description:   "Labor Only",
		UnitPrice:     "0",
		Quantity:      "1",
		Margin:        "0",
	}
}

// IsLaborOnly reports whether the row carries the reserved catalog number.
func (it Item) IsLaborOnly() bool {
	return it.CatalogNumber == LaborOnlyCatalogNumber
}

// IsValid reports whether the row counts toward quote completeness: either a
// labor-only row, or a row with a catalog number, a description and a
// positive unit price.
func (it Item) IsValid() bool {
	if it.IsLaborOnly() {
		return true
	}
	return it.CatalogNumber != "" && it.Description != "" && ParseAmount(it.UnitPrice) > 0
}

// SellingPrice is unitPrice x quantity x (1 + margin/100), unrounded.
func (it Item) SellingPrice() float64 {
	price := ParseAmount(it.UnitPrice)
	qty := ParseQuantity(it.Quantity)
	margin := ParsePercent(it.Margin)
	return price * float64(qty) * (1 + margin/100)
}

// ComputeTotals computes the quote totals from the item rows and the flat
// service fee: tax = (sum of selling prices + fee) x TaxRate, grand total =
// subtotal + tax. Pure and deterministic; nothing is rounded here.
func ComputeTotals(items []Item, serviceFee string) Totals {
	var itemSubtotal float64
	for _, it := range items {
		itemSubtotal += it.SellingPrice()
	}

	subtotal := itemSubtotal + ParseAmount(serviceFee)
	tax := subtotal * TaxRate

	return Totals{
		ItemSubtotal: itemSubtotal,
		Tax:          tax,
		GrandTotal:   subtotal + tax,
	}
}

// Round2 rounds half away from zero to two decimal places. The scaled value
// is nudged by one part in 1e12 so that decimal inputs landing exactly on a
// half cent (e.g. 19.995) round up despite binary float representation.
func Round2(v float64) float64 {
	if v < 0 {
		return -Round2(-v)
	}
	scaled := v * 100
	return math.Round(scaled*(1+1e-12)) / 100
}
