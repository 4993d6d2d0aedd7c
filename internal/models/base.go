package models

import (
	"time"

	"gorm.io/gorm"
)

// Base is the base model for all entities. IDs are auto-increment integers,
// so creation order is recoverable from the id alone.
type Base struct {
	ID        uint           `json:"id"       gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time      `json:"created"`
	UpdatedAt time.Time      `json:"modified"`
	DeletedAt gorm.DeletedAt `json:"-"        gorm:"index"`
}
