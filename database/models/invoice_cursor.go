package models

import (
	"time"
)

type InvoiceCursor struct {
	NodeID    string    `gorm:"primaryKey"`
	PayIndex  uint64    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (InvoiceCursor) TableName() string {
	return "invoice_cursors"
}
