// Package export renders quote requests as downloadable spreadsheets.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"riseadvertising/internal/model"
)

// Columns is the fixed column order of every quote export.
var Columns = []string{
	"ID", "Name", "Company", "Email", "Phone", "Services", "Quantity",
	"Dimensions", "Location", "Deadline", "Message", "Source", "Status", "Date",
}

const dateLayout = "2006-01-02"

// Dimensions renders "{width} x {height}", or "" when neither is set.
func Dimensions(width, height string) string {
	if width == "" && height == "" {
		return ""
	}
	return width + " x " + height
}

// Row returns the export fields of q in Columns order.
func Row(q *model.QuoteRequest) []string {
	return []string{
		q.ID.String(),
		q.Name,
		q.Company,
		q.Email,
		q.Phone,
		strings.Join(q.Services, "; "),
		q.Quantity,
		Dimensions(q.Width, q.Height),
		q.DeliveryLocation,
		q.Deadline,
		q.Message,
		q.Source,
		string(q.Status),
		q.CreatedAt.Format(dateLayout),
	}
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// QuotesCSV writes a header line followed by one line per quote. Every data
// field is wrapped in double quotes with embedded quotes doubled.
func QuotesCSV(w io.Writer, quotes []model.QuoteRequest) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Columns, ",") + "\n"); err != nil {
		return err
	}
	for i := range quotes {
		fields := Row(&quotes[i])
		for j, f := range fields {
			fields[j] = quote(f)
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// QuotesXLSX writes the same rows as QuotesCSV into a single-sheet workbook.
func QuotesXLSX(w io.Writer, quotes []model.QuoteRequest) error {
	const sheet = "Quotes"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i := range quotes {
		fields := Row(&quotes[i])
		row := make([]interface{}, len(fields))
		for j, v := range fields {
			row[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}
