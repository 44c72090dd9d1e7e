// pdf/quote.go
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"hvacquote-backend/models"

	"github.com/jung-kurt/gofpdf"
)

// Generate renders a saved quote as an A4 PDF: client block, item table and
// the totals the record was persisted with. Totals are printed straight from
// the record; nothing is recomputed here.
func Generate(q models.Quote) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Service Quote "+q.QuoteNumber, false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Service Quote")
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, fmt.Sprintf("%s / %s", q.QuoteNumber, q.CreatedAt.Format("January 2, 2006")))
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 6, "Prepared for")
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 5, q.ClientName)
	doc.Ln(5)
	street := q.ClientStreet
	if q.ClientUnit != "" {
		street += ", Unit " + q.ClientUnit
	}
	doc.Cell(0, 5, street)
	doc.Ln(5)
	doc.Cell(0, 5, fmt.Sprintf("%s, %s  %s", q.ClientCity, q.ClientProvince, q.ClientPostalCode))
	doc.Ln(5)
	doc.Cell(0, 5, strings.TrimSpace(q.ClientPhone+"  "+q.ClientEmail))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(25, 7, "Cat#")
	doc.Cell(75, 7, "Description")
	doc.Cell(25, 7, "Price")
	doc.Cell(15, 7, "Qty")
	doc.Cell(20, 7, "Margin")
	doc.Cell(30, 7, "Total")
	doc.Ln(7)

	doc.SetFont("Helvetica", "", 10)
	for _, it := range q.Items {
		doc.Cell(25, 6, it.CatalogNumber)
		doc.Cell(75, 6, trim(it.Description, 45))
		doc.Cell(25, 6, fmt.Sprintf("$%.2f", it.UnitPrice))
		doc.Cell(15, 6, fmt.Sprintf("%d", it.Quantity))
		doc.Cell(20, 6, fmt.Sprintf("%.0f%%", it.MarginPercent))
		doc.Cell(30, 6, fmt.Sprintf("$%.2f", it.SellingPrice))
		doc.Ln(6)
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Service Fee: $%.2f", q.ServiceFee))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Tax (13%%): $%.2f", q.Tax))
	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, fmt.Sprintf("Total Quote: $%.2f", q.Total))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
