// Package export renders ledger and donor data as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/brandonbohn/adebackend/internal/domain"

	"github.com/xuri/excelize/v2"
)

// column one sheet column: header, width and cell value
type column[T any] struct {
	header string
	width  float64
	value  func(T) any
}

var donationColumns = []column[*domain.Donation]{
	{"Donation ID", 38, func(d *domain.Donation) any { return d.ID }},
	{"Donor ID", 38, func(d *domain.Donation) any { return d.DonorID }},
	{"Amount", 12, func(d *domain.Donation) any { return d.Amount }},
	{"Currency", 10, func(d *domain.Donation) any { return d.Currency }},
	{"Type", 15, func(d *domain.Donation) any { return d.DonationType }},
	{"Message", 40, func(d *domain.Donation) any { return d.Message }},
	{"Date", 20, func(d *domain.Donation) any { return formatTime(d.Date) }},
}

var donorColumns = []column[*domain.Donor]{
	{"Donor ID", 38, func(d *domain.Donor) any { return d.ID }},
	{"Name", 25, func(d *domain.Donor) any { return d.Name }},
	{"Email", 30, func(d *domain.Donor) any { return d.Email }},
	{"Phone", 18, func(d *domain.Donor) any { return d.Phone }},
	{"Country", 15, func(d *domain.Donor) any { return d.Country }},
	{"Status", 12, func(d *domain.Donor) any { return d.Status }},
	{"Source", 15, func(d *domain.Donor) any { return d.Source }},
	{"Anonymous", 11, func(d *domain.Donor) any { return yesNo(d.Anonymous) }},
	{"Notes", 40, func(d *domain.Donor) any { return d.Notes }},
	{"Created", 20, func(d *domain.Donor) any { return formatTime(d.CreatedAt) }},
}

// Donations renders the donation ledger.
func Donations(rows []*domain.Donation) ([]byte, error) {
	return workbook("Donations", donationColumns, rows)
}

// Donors renders donors and donor-leads.
func Donors(rows []*domain.Donor) ([]byte, error) {
	return workbook("Donors", donorColumns, rows)
}

func workbook[T any](sheetName string, cols []column[T], rows []T) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to find sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4CAF50"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, c.header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, c.width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range rows {
		for i, c := range cols {
			v := c.value(row)
			if v == nil || v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
