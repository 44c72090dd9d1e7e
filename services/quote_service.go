// services/quote_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"hvacquote-backend/models"
	"hvacquote-backend/pricing"
	"hvacquote-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrIncompleteDraft means required client fields are missing or no item
	// row is valid yet.
	ErrIncompleteDraft = errors.New("draft is incomplete")

	// ErrSaveInFlight means a save for this user has not resolved yet.
	ErrSaveInFlight = errors.New("a save is already in progress")
)

// QuoteService turns drafts into persisted quotes. Preview and Save run the
// same build pipeline, so the totals a user confirms are the totals that hit
// the database.
type QuoteService struct {
	db     *gorm.DB
	drafts *DraftStore
}

func NewQuoteService(db *gorm.DB, drafts *DraftStore) *QuoteService {
	return &QuoteService{db: db, drafts: drafts}
}

// Drafts exposes the store backing this service.
func (s *QuoteService) Drafts() *DraftStore {
	return s.drafts
}

// BuildQuote produces the persisted shape of a draft: completeness is
// checked, free-text fields are sanitized on the outbound copy only, totals
// are recomputed from scratch, and every money value is rounded to two
// decimals. The draft itself is not modified.
func BuildQuote(ownerID uuid.UUID, d *models.Draft) (models.Quote, error) {
	if !d.IsComplete() {
		return models.Quote{}, ErrIncompleteDraft
	}

	totals := d.Totals()

	quote := models.Quote{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		QuoteNumber: fmt.Sprintf("QTE-%s-%s", time.Now().Format("20060102"), utils.GenerateRandomString(6)),

		ClientName:       utils.Sanitize(d.Client.Name),
		ClientPhone:      utils.Sanitize(d.Client.Phone),
		ClientEmail:      utils.Sanitize(d.Client.Email),
		ClientStreet:     utils.Sanitize(d.Client.Street),
		ClientUnit:       utils.Sanitize(d.Client.Unit),
		ClientCity:       utils.Sanitize(d.Client.City),
		ClientProvince:   utils.Sanitize(d.Client.Province),
		ClientPostalCode: utils.Sanitize(d.Client.PostalCode),

		ServiceFee:   pricing.Round2(pricing.ParseAmount(d.ServiceFee)),
		ItemSubtotal: pricing.Round2(totals.ItemSubtotal),
		Tax:          pricing.Round2(totals.Tax),
		Total:        pricing.Round2(totals.GrandTotal),
	}

	for i, it := range d.Items {
		quote.Items = append(quote.Items, models.QuoteItem{
			ID:            uuid.New(),
			QuoteID:       quote.ID,
			Position:      i,
			CatalogNumber: utils.Sanitize(it.CatalogNumber),
			Description:   utils.Sanitize(it.Description),
			UnitPrice:     pricing.Round2(pricing.ParseAmount(it.UnitPrice)),
			Quantity:      pricing.ParseQuantity(it.Quantity),
			MarginPercent: pricing.ParsePercent(it.Margin),
			SellingPrice:  pricing.Round2(it.SellingPrice()),
		})
	}

	return quote, nil
}

// Preview builds the quote for the user's current draft without persisting
// anything. The result carries no database identity beyond the generated IDs.
func (s *QuoteService) Preview(ownerID uuid.UUID) (models.Quote, error) {
	return BuildQuote(ownerID, s.drafts.Snapshot(ownerID))
}

// Save rebuilds the quote from the current draft (cached totals are never
// trusted) and writes it in one transaction. On success the draft resets to a
// single blank row; on any failure the draft is left untouched for a manual
// retry. A save arriving while another is in flight writes nothing.
func (s *QuoteService) Save(ownerID uuid.UUID) (models.Quote, error) {
	if !s.drafts.BeginSave(ownerID) {
		return models.Quote{}, ErrSaveInFlight
	}
	defer s.drafts.EndSave(ownerID)

	quote, err := BuildQuote(ownerID, s.drafts.Snapshot(ownerID))
	if err != nil {
		return models.Quote{}, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&quote).Error
	}); err != nil {
		return models.Quote{}, fmt.Errorf("save quote: %w", err)
	}

	s.drafts.Reset(ownerID)
	return quote, nil
}

// ListQuotes returns the owner's saved quotes in insertion order.
func (s *QuoteService) ListQuotes(ownerID uuid.UUID) ([]models.Quote, error) {
	var quotes []models.Quote
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&quotes).Error
	return quotes, err
}

// GetQuote returns one saved quote, scoped to its owner.
func (s *QuoteService) GetQuote(ownerID, quoteID uuid.UUID) (models.Quote, error) {
	var quote models.Quote
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("owner_id = ? AND id = ?", ownerID, quoteID).
		First(&quote).Error
	return quote, err
}
