package model

import (
	"github.com/google/uuid"
)

// CategoryModel mirrors the 'categories' table. SortOrder drives the manual
// ordering of the public category strip.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Slug      string    `gorm:"type:varchar(100);unique;not null"`
	Icon      string    `gorm:"type:varchar(100)"`
	SortOrder int       `gorm:"not null;default:0"`
	Active    bool      `gorm:"not null;default:true"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}
