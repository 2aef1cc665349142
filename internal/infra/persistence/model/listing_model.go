package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ListingImageData is the JSONB shape of a single listing image.
// Field names match the API payload so the column reads naturally in SQL.
type ListingImageData struct {
	URL     string `json:"url"`
	AssetID string `json:"assetId"`
}

// ListingModel mirrors the 'listings' table. Images and tags are JSONB
// columns; price stays a free-form varchar and is never parsed.
type ListingModel struct {
	ID          uuid.UUID                             `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title       string                                `gorm:"type:varchar(200);not null"`
	Type        string                                `gorm:"type:varchar(20);not null"`
	Description string                                `gorm:"type:text"`
	Price       string                                `gorm:"type:varchar(100);not null"`
	Images      datatypes.JSONSlice[ListingImageData] `gorm:"type:jsonb;not null"`
	Tags        datatypes.JSONSlice[string]           `gorm:"type:jsonb"`
	CategoryID  uuid.UUID                             `gorm:"type:uuid;not null;index"`
	MerchantID  uuid.UUID                             `gorm:"type:uuid;not null;index"`
	WhatsApp    string                                `gorm:"type:varchar(32)"`
	Featured    bool                                  `gorm:"not null;default:false"`
	Promo       bool                                  `gorm:"not null;default:false"`
	Active      bool                                  `gorm:"not null;default:true"`
	CreatedAt   time.Time                             `gorm:"index:idx_listings_created_at_id,priority:1,sort:desc"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ListingModel) TableName() string {
	return "listings"
}
