package models

import (
	"time"

	"gorm.io/datatypes"
)

// Worksheet is one named tab of the row store. Header holds the column names as a JSON array.
type Worksheet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Header    datatypes.JSON `gorm:"not null" json:"header"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SheetRow is one data row; Cells is a JSON array aligned with the worksheet header.
// Row order is insertion order (ascending ID).
type SheetRow struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorksheetID uint           `gorm:"not null;index" json:"worksheet_id"`
	Cells       datatypes.JSON `gorm:"not null" json:"cells"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Worksheet *Worksheet `gorm:"foreignKey:WorksheetID" json:"-"`
}
