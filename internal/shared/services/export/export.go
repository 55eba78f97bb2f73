// Package export renders tabular reports as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Table is a header plus rows of already formatted cells.
type Table struct {
	Header []string
	Rows   [][]string
}

type CSVOptions struct {
	Comma rune
	// BOM prefixes the output with a UTF-8 byte order mark for spreadsheet apps.
	BOM bool
}

// WriteCSV writes t with CRLF-free records, quoting cells only when needed.
func WriteCSV(w io.Writer, t Table, opts CSVOptions) error {
	out := w
	var bomWriter io.WriteCloser
	if opts.BOM {
		bomWriter = transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
		out = bomWriter
	}

	cw := csv.NewWriter(out)
	if opts.Comma != 0 {
		cw.Comma = opts.Comma
	}
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	if bomWriter != nil {
		if err := bomWriter.Close(); err != nil {
			return fmt.Errorf("failed to flush csv: %w", err)
		}
	}
	return nil
}

// WriteXLSX writes t to a single sheet with a bold header row.
func WriteXLSX(w io.Writer, sheetName string, t Table) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font

	headerRow := sheet.AddRow()
	for _, h := range t.Header {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(style)
	}

	for _, r := range t.Rows {
		row := sheet.AddRow()
		for _, v := range r {
			row.AddCell().SetString(v)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
