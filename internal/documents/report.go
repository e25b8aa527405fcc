package documents

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"sirekap-dgn/internal/finance"
	"sirekap-dgn/internal/format"
	"sirekap-dgn/internal/models"
)

// RenderMonthlyReportPDF lays out the printable monthly report: summary,
// profit sharing, income and expense detail, then the approval block.
func RenderMonthlyReportPDF(report finance.MonthlyReport, company models.CompanyProfile) ([]byte, error) {
	monthLabel := format.MonthYear(report.Year, time.Month(report.Month))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(182, 8, "Laporan Keuangan Bulanan", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(182, 6, company.Name, "", 1, "C", false, 0, "")
	pdf.CellFormat(182, 6, "Periode: "+monthLabel, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Summary
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(182, 7, "Ringkasan", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	summaryRow(pdf, "Total Pemasukan", format.IDR(report.TotalIncome))
	summaryRow(pdf, "Total Pengeluaran", format.IDR(report.TotalExpense))
	pdf.SetFont("Helvetica", "B", 10)
	summaryRow(pdf, "Laba Bersih", format.IDR(report.Balance))
	pdf.Ln(6)

	// Profit sharing
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(182, 7, "Bagi Hasil Anggota", "", 1, "L", false, 0, "")
	shareWidths := []float64{91, 91}
	drawTableHead(pdf, shareWidths, []string{"Nama Anggota", "Jumlah Diterima"}, 79, 70, 229)
	pdf.SetFont("Helvetica", "", 10)
	fill := false
	for _, partner := range report.Partners {
		setRowFill(pdf, fill)
		pdf.CellFormat(shareWidths[0], 7, partner, "", 0, "L", fill, 0, "")
		pdf.CellFormat(shareWidths[1], 7, format.IDR(report.SharePerPartner), "", 1, "R", fill, 0, "")
		fill = !fill
	}
	if report.SharePerPartner <= 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(182, 6, "Tidak ada laba untuk dibagikan bulan ini.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Income detail
	transactionTable(pdf, "Rincian Pemasukan", report.Income, 22, 163, 74)
	pdf.Ln(6)

	// Expense detail
	transactionTable(pdf, "Rincian Pengeluaran", report.Expense, 220, 38, 38)

	// Approval block
	if pdf.GetY() > 230 {
		pdf.AddPage()
	}
	pdf.Ln(14)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(120)
	pdf.CellFormat(76, 5, "Disetujui, "+format.DateLong(time.Now().Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(18)
	director := company.DirectorName
	if director == "" {
		director = "(...........................)"
	}
	pdf.SetX(120)
	pdf.SetFont("Helvetica", "BU", 10)
	pdf.CellFormat(76, 5, director, "", 1, "C", false, 0, "")
	pdf.SetX(120)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(76, 5, "Direktur", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReportFileName matches the download name the report page uses
func ReportFileName(year int, month time.Month) string {
	return fmt.Sprintf("laporan-bulanan-%04d-%02d.pdf", year, int(month))
}

func summaryRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(120, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(62, 6, value, "", 1, "R", false, 0, "")
}

func transactionTable(pdf *gofpdf.Fpdf, title string, items []models.Transaction, r, g, b int) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(182, 7, title, "", 1, "L", false, 0, "")

	widths := []float64{28, 92, 28, 34}
	drawTableHead(pdf, widths, []string{"Tanggal", "Deskripsi", "Metode", "Jumlah"}, r, g, b)
	pdf.SetFont("Helvetica", "", 10)

	if len(items) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(182, 6, "Tidak ada transaksi.", "", 1, "L", false, 0, "")
		return
	}

	fill := false
	for _, t := range items {
		method := "Transfer"
		if t.Mode == models.ModeCash {
			method = "Tunai"
		}
		setRowFill(pdf, fill)
		pdf.CellFormat(widths[0], 7, format.DateShort(t.Date), "", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], 7, t.Description, "", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 7, method, "", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[3], 7, format.IDR(t.Amount), "", 1, "R", fill, 0, "")
		fill = !fill
	}
}
