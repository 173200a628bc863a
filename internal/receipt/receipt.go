// Package receipt renders printable PDF receipts for transactions.
package receipt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"pos-terminal/internal/models"
	"pos-terminal/pkg/utils"
)

// Render generates an A4 receipt for one transaction. customer may be nil
// when the transaction is not linked to a cached customer.
func Render(tx *models.Transaction, customer *models.Customer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Transaction %s", tx.TransactionID), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, tx.CreatedAt.Format("02-Jan-2006 03:04 PM"), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer block
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	name := "-"
	if customer != nil && customer.Name != "" {
		name = customer.Name
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Card: %s", utils.FormatCardID(tx.CardID)), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Line items
	if len(tx.Items) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Items", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(90, 7, "Item", "1", 0, "L", true, 0, "")
		pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Unit Price", "1", 0, "R", true, 0, "")
		pdf.CellFormat(40, 7, "Amount", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, item := range tx.Items {
			name := item.Name
			if len(name) > 40 {
				name = name[:37] + "..."
			}
			qty := ""
			if item.Quantity > 0 {
				qty = fmt.Sprintf("%d", item.Quantity)
			}
			pdf.CellFormat(90, 6, name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(20, 6, qty, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, utils.FormatAmount(item.UnitPrice), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, utils.FormatAmount(item.Amount), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Total
	pdf.SetFont("Arial", "B", 12)
	label := string(tx.Type)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	pdf.CellFormat(150, 8, fmt.Sprintf("%s Total", label), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, utils.FormatAmount(tx.Amount), "1", 1, "R", true, 0, "")

	if tx.OfflineCreated && tx.Status == models.TxStatusPending {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(190, 6, "Recorded offline - pending confirmation", "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
