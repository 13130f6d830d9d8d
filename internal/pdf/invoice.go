package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/omindustries/backoffice/internal/repository"
)

// CompanyInfo is the seller identity printed at the top of every invoice.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Invoice is the fully computed document model. Building it is separated
// from rendering so the numbers can be tested without decoding a PDF.
type Invoice struct {
	Company   CompanyInfo
	Number    string
	BillTo    BillTo
	OrderDate string
	Quantity  int
	UnitPrice float64
	Total     float64
}

type BillTo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// BuildInvoice derives the invoice from current order state. The invoice
// number is the zero-padded order id; the total is price × quantity,
// computed here and never stored.
func BuildInvoice(company CompanyInfo, order *repository.Order) Invoice {
	return Invoice{
		Company: company,
		Number:  fmt.Sprintf("INV-%06d", order.ID),
		BillTo: BillTo{
			Name:    order.Name,
			Address: order.Address,
			Phone:   order.Phone,
			Email:   order.Email,
		},
		OrderDate: order.OrderDate,
		Quantity:  order.Quantity,
		UnitPrice: order.Price,
		Total:     order.Total(),
	}
}

// Render produces the PDF bytes. The layout is fixed: company block, invoice
// number and date, bill-to block, a one-line item table and the total.
func (inv Invoice) Render() ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 18)
	doc.Cell(0, 10, inv.Company.Name)
	doc.Ln(8)

	doc.SetFont("Arial", "", 10)
	for _, line := range []string{inv.Company.Address, inv.Company.Phone, inv.Company.Email} {
		if line == "" {
			continue
		}
		doc.Cell(0, 5, line)
		doc.Ln(5)
	}
	doc.Ln(6)

	doc.SetFont("Arial", "B", 14)
	doc.Cell(0, 8, "Invoice "+inv.Number)
	doc.Ln(7)
	doc.SetFont("Arial", "", 10)
	doc.Cell(0, 5, "Order date: "+inv.OrderDate)
	doc.Ln(10)

	doc.SetFont("Arial", "B", 11)
	doc.Cell(0, 6, "Bill to:")
	doc.Ln(6)
	doc.SetFont("Arial", "", 10)
	for _, line := range []string{inv.BillTo.Name, inv.BillTo.Address, inv.BillTo.Phone, inv.BillTo.Email} {
		if line == "" {
			continue
		}
		doc.Cell(0, 5, line)
		doc.Ln(5)
	}
	doc.Ln(8)

	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(90, 7, "Description", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 7, "Quantity", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, "Unit price", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, "Amount", "1", 1, "R", false, 0, "")

	doc.SetFont("Arial", "", 10)
	doc.CellFormat(90, 7, "Goods as ordered", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 7, fmt.Sprintf("%d", inv.Quantity), "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, fmt.Sprintf("%.2f", inv.UnitPrice), "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, fmt.Sprintf("%.2f", inv.Total), "1", 1, "R", false, 0, "")

	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(155, 8, "Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 8, fmt.Sprintf("%.2f", inv.Total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
