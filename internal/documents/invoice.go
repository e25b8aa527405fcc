// Package documents renders the downloadable exports: PDF invoices, the
// monthly report PDF and the customer spreadsheet.
package documents

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"sirekap-dgn/internal/format"
	"sirekap-dgn/internal/models"
)

// InvoiceItem is one billed line
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Invoice is everything the PDF layout needs
type Invoice struct {
	Number   string
	Date     string
	DueDate  string
	Customer models.Customer
	Company  models.CompanyProfile
	Items    []InvoiceItem
	Notes    string
}

// Total sums quantity × price over all lines
func (inv Invoice) Total() float64 {
	var total float64
	for _, item := range inv.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// FileName matches the name the download dialog shows
func (inv Invoice) FileName() string {
	name := inv.Customer.Name
	safe := make([]rune, 0, len(name))
	for _, r := range name {
		if r == ' ' {
			r = '_'
		}
		safe = append(safe, r)
	}
	return fmt.Sprintf("faktur-%s-%s.pdf", string(safe), inv.Number)
}

// RenderInvoicePDF lays out the fixed invoice template
func RenderInvoicePDF(inv Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(110, 15)
	pdf.CellFormat(90, 10, "FAKTUR", "", 0, "R", false, 0, "")

	// Company block
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(14, 35)
	pdf.CellFormat(100, 5, inv.Company.Name, "", 2, "L", false, 0, "")
	pdf.CellFormat(100, 5, inv.Company.Address, "", 2, "L", false, 0, "")
	pdf.CellFormat(100, 5, fmt.Sprintf("Email: %s | Telp: %s", inv.Company.Email, inv.Company.Phone), "", 2, "L", false, 0, "")

	// Invoice info
	pdf.SetXY(110, 28)
	pdf.CellFormat(90, 5, "No. Faktur: "+inv.Number, "", 2, "R", false, 0, "")
	pdf.CellFormat(90, 5, "Tanggal: "+format.DateLong(inv.Date), "", 2, "R", false, 0, "")
	pdf.CellFormat(90, 5, "Jatuh Tempo: "+format.DateLong(inv.DueDate), "", 2, "R", false, 0, "")

	// Bill to
	pdf.SetXY(14, 60)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(100, 6, "Ditagihkan Kepada:", "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(100, 5, inv.Customer.Name, "", 2, "L", false, 0, "")
	if inv.Customer.Phone != "" {
		pdf.CellFormat(100, 5, inv.Customer.Phone, "", 2, "L", false, 0, "")
	}

	// Items table
	pdf.SetY(82)
	widths := []float64{92, 24, 33, 33}
	drawTableHead(pdf, widths, []string{"Deskripsi", "Kuantitas", "Harga Satuan", "Total"}, 79, 70, 229)
	pdf.SetFont("Helvetica", "", 10)
	fill := false
	for _, item := range inv.Items {
		setRowFill(pdf, fill)
		pdf.CellFormat(widths[0], 7, item.Description, "", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[2], 7, format.IDR(item.Price), "", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 7, format.IDR(float64(item.Quantity)*item.Price), "", 1, "R", fill, 0, "")
		fill = !fill
	}

	// Total
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(149, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(33, 8, format.IDR(inv.Total()), "", 1, "R", false, 0, "")

	// Notes
	if inv.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(100, 5, "Catatan:", "", 1, "L", false, 0, "")
		pdf.MultiCell(180, 5, inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableHead(pdf *gofpdf.Fpdf, widths []float64, labels []string, r, g, b int) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	for i, label := range labels {
		align := "L"
		if i > 0 {
			align = "R"
		}
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, label, "", ln, align, true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func setRowFill(pdf *gofpdf.Fpdf, fill bool) {
	if fill {
		pdf.SetFillColor(243, 244, 246)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
}
