package checklist

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Parse stage errors (structural problems, the batch is rejected wholesale)
var (
	ErrEmptySheet     = errors.New("checklist import: sheet is empty")
	ErrMissingColumns = errors.New("checklist import: missing required columns")
)

// Required header names, matched case-insensitively after trimming.
// Column order in the file does not matter; cells are located by header name.
var requiredColumns = []string{
	"section",
	"title",
	"description",
	"assigned to",
	"due date",
	"status",
	"completed",
}

// headerIndex maps lowercased trimmed header names to their column position.
type headerIndex map[string]int

func buildHeaderIndex(header []string) (headerIndex, error) {
	idx := make(headerIndex, len(header))
	for pos, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		if _, exists := idx[name]; !exists {
			idx[name] = pos
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (idx headerIndex) cell(row []string, column string) string {
	pos, ok := idx[column]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// parseCompleted treats "true", "yes" and "1" (case-insensitively) as true
// and anything else as false, which also covers numeric cells rendered as
// "1"/"0" by the decoder.
func parseCompleted(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// ParseWorkbook reads the first sheet of an xlsx document into import rows.
// Only literal (or cached) cell values are read; formulas are never
// evaluated, so formula-injection payloads stay inert. Fully blank rows and
// rows with an empty title are skipped silently, since a blank title almost
// always means a spacer row.
func ParseWorkbook(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("checklist import: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrEmptySheet
	}
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("checklist import: %w", err)
	}
	if len(cells) == 0 {
		return nil, ErrEmptySheet
	}

	idx, err := buildHeaderIndex(cells[0])
	if err != nil {
		return nil, err
	}

	var rows []ImportRow
	for i, raw := range cells[1:] {
		if isBlankRow(raw) {
			continue
		}
		title := idx.cell(raw, "title")
		if title == "" {
			continue
		}
		rows = append(rows, ImportRow{
			Line:        i + 1,
			Section:     idx.cell(raw, "section"),
			Title:       title,
			Description: idx.cell(raw, "description"),
			AssignedTo:  strings.ToUpper(idx.cell(raw, "assigned to")),
			DueDate:     idx.cell(raw, "due date"),
			Status:      strings.ToUpper(idx.cell(raw, "status")),
			Completed:   parseCompleted(idx.cell(raw, "completed")),
		})
	}
	return rows, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
