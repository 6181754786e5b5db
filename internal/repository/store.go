package repository

import (
	"context"
	"errors"
)

var (
	ErrSheetNotFound  = errors.New("worksheet not found")
	ErrRowNotFound    = errors.New("row not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrCellOutOfRange = errors.New("cell out of range")
)

// Record is one data row keyed by header column name.
type Record map[string]string

// RowStore is the tabular system of record. Row and column indexes are 1-based;
// row 1 is the header, so the first data row is row 2.
type RowStore interface {
	FetchAll(ctx context.Context, sheet string) ([]Record, error)
	Header(ctx context.Context, sheet string) ([]string, error)
	AppendRow(ctx context.Context, sheet string, values []string) error
	UpdateCell(ctx context.Context, sheet string, row, col int, value string) error
}

// SheetInitializer is implemented by stores that can create missing worksheets.
type SheetInitializer interface {
	EnsureSheet(ctx context.Context, sheet string, header []string) error
}

// EnsureSheets creates every default worksheet that does not exist yet.
func EnsureSheets(ctx context.Context, init SheetInitializer) error {
	for name, header := range DefaultSheets() {
		if err := init.EnsureSheet(ctx, name, header); err != nil {
			return err
		}
	}
	return nil
}

func toRecord(header, cells []string) Record {
	rec := make(Record, len(header))
	for i, col := range header {
		if col == "" {
			continue
		}
		if i < len(cells) {
			rec[col] = cells[i]
		} else {
			rec[col] = ""
		}
	}
	return rec
}

// alignRow orders rec's values by header; columns rec does not set are left blank.
func alignRow(header []string, rec Record) []string {
	row := make([]string, len(header))
	for i, col := range header {
		row[i] = rec[col]
	}
	return row
}

func columnIndex(header []string, column string) int {
	for i, col := range header {
		if col == column {
			return i + 1
		}
	}
	return 0
}

// locateRow returns the sheet row number of the first record whose column equals value.
func locateRow(records []Record, column, value string) (int, Record, bool) {
	for i, rec := range records {
		if rec[column] == value {
			return i + 2, rec, true
		}
	}
	return 0, nil, false
}
