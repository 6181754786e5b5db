package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Eursukkul/restaurant-ledger/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormStore keeps worksheets in a relational database: one worksheets row per sheet
// and one sheet_rows row per data row.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) EnsureSheet(ctx context.Context, sheet string, header []string) error {
	encoded, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	var ws models.Worksheet
	return s.db.WithContext(ctx).
		Where(models.Worksheet{Name: sheet}).
		Attrs(models.Worksheet{Header: datatypes.JSON(encoded)}).
		FirstOrCreate(&ws).Error
}

func (s *GormStore) FetchAll(ctx context.Context, sheet string) ([]Record, error) {
	ws, header, err := s.worksheet(ctx, s.db, sheet)
	if err != nil {
		return nil, err
	}

	var rows []models.SheetRow
	if err := s.db.WithContext(ctx).
		Where("worksheet_id = ?", ws.ID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		cells, err := decodeCells(r.Cells)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", sheet, r.ID, err)
		}
		out = append(out, toRecord(header, cells))
	}
	return out, nil
}

func (s *GormStore) Header(ctx context.Context, sheet string) ([]string, error) {
	_, header, err := s.worksheet(ctx, s.db, sheet)
	return header, err
}

func (s *GormStore) AppendRow(ctx context.Context, sheet string, values []string) error {
	ws, _, err := s.worksheet(ctx, s.db, sheet)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	return s.db.WithContext(ctx).Create(&models.SheetRow{
		WorksheetID: ws.ID,
		Cells:       datatypes.JSON(encoded),
	}).Error
}

func (s *GormStore) UpdateCell(ctx context.Context, sheet string, row, col int, value string) error {
	if row < 2 || col < 1 {
		return fmt.Errorf("%s!R%dC%d: %w", sheet, row, col, ErrCellOutOfRange)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ws, header, err := s.worksheet(ctx, tx, sheet)
		if err != nil {
			return err
		}
		if col > len(header) {
			return fmt.Errorf("%s!R%dC%d: %w", sheet, row, col, ErrCellOutOfRange)
		}

		var rows []models.SheetRow
		if err := tx.WithContext(ctx).
			Where("worksheet_id = ?", ws.ID).
			Order("id ASC").
			Offset(row - 2).
			Limit(1).
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("%s!R%dC%d: %w", sheet, row, col, ErrCellOutOfRange)
		}

		cells, err := decodeCells(rows[0].Cells)
		if err != nil {
			return err
		}
		for len(cells) < col {
			cells = append(cells, "")
		}
		cells[col-1] = value

		encoded, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
		return tx.WithContext(ctx).
			Model(&models.SheetRow{}).
			Where("id = ?", rows[0].ID).
			Update("cells", datatypes.JSON(encoded)).Error
	})
}

func (s *GormStore) worksheet(ctx context.Context, db *gorm.DB, sheet string) (*models.Worksheet, []string, error) {
	var ws models.Worksheet
	if err := db.WithContext(ctx).Where("name = ?", sheet).First(&ws).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%s: %w", sheet, ErrSheetNotFound)
		}
		return nil, nil, err
	}
	var header []string
	if err := json.Unmarshal(ws.Header, &header); err != nil {
		return nil, nil, fmt.Errorf("%s header: %w", sheet, err)
	}
	return &ws, header, nil
}

func decodeCells(raw datatypes.JSON) ([]string, error) {
	var cells []string
	if len(raw) == 0 {
		return cells, nil
	}
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	return cells, nil
}
