package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrSheetNotFound = errors.New("sheet not found")

// Table is an in-memory snapshot of one worksheet: the header row plus all
// data rows. Columns are addressed by header name, not position.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Index returns the column position for a header, or -1 when the header is
// absent. Callers treat -1 as an always-empty column.
func (t Table) Index(header string) int {
	for i, h := range t.Headers {
		if strings.TrimSpace(h) == header {
			return i
		}
	}
	return -1
}

// Cell reads one cell leniently: out-of-range or missing columns read as "".
func (t Table) Cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

type Workbook struct {
	file *excelize.File
	path string
}

func Open(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{file: file, path: path}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

// ReadTable reads a whole worksheet once up front. Row 0 is the header row.
func (w *Workbook) ReadTable(name string) (Table, error) {
	index, err := w.file.GetSheetIndex(name)
	if err != nil {
		return Table{}, err
	}
	if index == -1 {
		return Table{}, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}

	rows, err := w.file.GetRows(name)
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %s: %w", name, err)
	}

	table := Table{Name: name}
	if len(rows) > 0 {
		table.Headers = rows[0]
		table.Rows = rows[1:]
	}
	return table, nil
}

// WriteTable replaces the whole worksheet in one operation: the sheet is
// dropped and rebuilt, so readers never observe a partially written table.
func (w *Workbook) WriteTable(name string, headers []string, rows [][]string) error {
	if index, err := w.file.GetSheetIndex(name); err != nil {
		return err
	} else if index != -1 {
		if err := w.file.DeleteSheet(name); err != nil {
			return fmt.Errorf("clear sheet %s: %w", name, err)
		}
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := w.file.SetCellValue(name, cell, h); err != nil {
			return err
		}
		widths[i] = len(h)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := w.file.SetCellValue(name, cell, value); err != nil {
				return err
			}
			if c < len(widths) && len(value) > widths[c] {
				widths[c] = len(value)
			}
		}
	}

	if err := w.styleHeader(name, len(headers)); err != nil {
		return err
	}
	return w.fitColumns(name, widths)
}

func (w *Workbook) Save() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}
	return w.file.Save()
}

func (w *Workbook) styleHeader(name string, columns int) error {
	if columns == 0 {
		return nil
	}
	styleID, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4CAF50"}},
	})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(columns, 1)
	if err := w.file.SetCellStyle(name, "A1", last, styleID); err != nil {
		return err
	}
	return w.file.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *Workbook) fitColumns(name string, widths []int) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if width < 10 {
			width = 10
		}
		if width > 60 {
			width = 60
		}
		if err := w.file.SetColWidth(name, col, col, float64(width)+2); err != nil {
			return err
		}
	}
	return nil
}
