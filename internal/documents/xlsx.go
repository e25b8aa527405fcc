package documents

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sirekap-dgn/internal/format"
	"sirekap-dgn/internal/models"
)

const customerSheetName = "Pelanggan"

// CustomerSheetHeader is the column row shared by the XLSX export and the
// Google Sheets sync, so both outputs line up.
var CustomerSheetHeader = []string{
	"ID Pelanggan", "Nama", "Telepon", "Iuran",
	"Status Bayar", "Tgl Bayar Terakhir", "Tipe Langganan",
}

// CustomerSheetRow flattens one customer into the shared column order
func CustomerSheetRow(c models.Customer) []interface{} {
	status := "Belum Lunas"
	if c.Paid {
		status = "Lunas"
	}
	lastPayment := c.LastPaymentDate
	if lastPayment == "" {
		lastPayment = "-"
	}
	return []interface{}{
		c.ID, c.Name, c.Phone, format.IDR(c.Fee),
		status, lastPayment, c.SubscriptionType,
	}
}

// RenderCustomersXLSX builds the downloadable customer workbook
func RenderCustomersXLSX(customers []models.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", customerSheetName); err != nil {
		return nil, err
	}

	for col, label := range CustomerSheetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(customerSheetName, cell, label); err != nil {
			return nil, err
		}
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(customerSheetName, "A1", "G1", headStyle); err != nil {
		return nil, err
	}

	for i, c := range customers {
		for col, value := range CustomerSheetRow(c) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(customerSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	// Widen the name and date columns a bit so nothing is cut off
	if err := f.SetColWidth(customerSheetName, "A", "G", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(customerSheetName, "B", "B", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CustomersXLSXFileName stamps the export with the given date string
func CustomersXLSXFileName(date string) string {
	return fmt.Sprintf("data-pelanggan-%s.xlsx", date)
}
