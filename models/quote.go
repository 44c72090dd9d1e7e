package models

import (
	"time"

	"github.com/google/uuid"
)

// Quote is the persisted record built from a draft. Written exactly once per
// successful save; there is no edit or delete flow. All money columns hold
// values already rounded to two decimals, and the client fields hold the
// sanitized outbound copy of the draft text.
type Quote struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`

	QuoteNumber string    `gorm:"uniqueIndex;not null" json:"quoteNumber"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`

	ClientName       string `gorm:"not null" json:"clientName"`
	ClientPhone      string `gorm:"not null" json:"clientPhone"`
	ClientEmail      string `gorm:"not null" json:"clientEmail"`
	ClientStreet     string `gorm:"not null" json:"clientStreet"`
	ClientUnit       string `json:"clientUnit"`
	ClientCity       string `gorm:"not null" json:"clientCity"`
	ClientProvince   string `gorm:"not null" json:"clientProvince"`
	ClientPostalCode string `gorm:"not null" json:"clientPostalCode"`

	ServiceFee   float64 `gorm:"type:decimal(10,2);default:0.0" json:"serviceFee"`
	ItemSubtotal float64 `gorm:"type:decimal(10,2);not null" json:"itemSubtotal"`
	Tax          float64 `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total        float64 `gorm:"type:decimal(10,2);not null" json:"total"`

	Items []QuoteItem `gorm:"foreignKey:QuoteID" json:"items"`
}

// QuoteItem is one persisted line of a quote. Position preserves the order
// the rows had in the draft; catalog numbers may repeat.
type QuoteItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID uuid.UUID `gorm:"type:uuid;index;not null" json:"quoteId"`

	Position      int     `gorm:"not null" json:"position"`
	CatalogNumber string  `gorm:"not null" json:"catalogNumber"`
	Description   string  `gorm:"not null" json:"description"`
	UnitPrice     float64 `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Quantity      int     `gorm:"default:1" json:"quantity"`
	MarginPercent float64 `gorm:"type:decimal(10,2);default:0.0" json:"marginPercent"`
	SellingPrice  float64 `gorm:"type:decimal(10,2);not null" json:"sellingPrice"`
}
