package services

import (
	"fmt"
	"sync"
	"testing"

	"hvacquote-backend/models"
	"hvacquote-backend/pricing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Quote{}, &models.QuoteItem{}))
	return db
}

func seedCompleteDraft(t *testing.T, store *DraftStore, owner uuid.UUID) {
	t.Helper()
	err := store.Update(owner, func(d *models.Draft) error {
		d.Client = models.Client{
			Name:       "Dana Oduya",
			Phone:      "+14165550123",
			Email:      "dana@example.com",
			Street:     "123 Main St",
			City:       "Toronto",
			Province:   "ON",
			PostalCode: "M5V 2T6",
		}
		d.Items = []pricing.Item{
			{CatalogNumber: "AC-100", Description: "Condenser", UnitPrice: "100", Quantity: "2", Margin: "10"},
		}
		d.SetServiceFee("50")
		return nil
	})
	require.NoError(t, err)
}

func TestBuildQuote_ComputesAndRounds(t *testing.T) {
	store := NewDraftStore()
	owner := uuid.New()
	seedCompleteDraft(t, store, owner)

	quote, err := BuildQuote(owner, store.Snapshot(owner))
	require.NoError(t, err)

	assert.Equal(t, owner, quote.OwnerID)
	assert.InDelta(t, 220.00, quote.ItemSubtotal, 1e-9)
	assert.InDelta(t, 50.00, quote.ServiceFee, 1e-9)
	assert.InDelta(t, 35.10, quote.Tax, 1e-9)
	assert.InDelta(t, 305.10, quote.Total, 1e-9)
	require.Len(t, quote.Items, 1)
	assert.InDelta(t, 220.00, quote.Items[0].SellingPrice, 1e-9)
	assert.Regexp(t, `^QTE-\d{8}-[A-Z2-9]{6}$`, quote.QuoteNumber)
}

func TestBuildQuote_SanitizesOutboundCopyOnly(t *testing.T) {
	store := NewDraftStore()
	owner := uuid.New()
	seedCompleteDraft(t, store, owner)
	require.NoError(t, store.Update(owner, func(d *models.Draft) error {
		d.Client.Name = "<b>Hi & Bye</b>"
		return d.UpdateItemField(0, models.ItemFieldDescription, "  <script>x</script>Coil & fan ")
	}))

	quote, err := BuildQuote(owner, store.Snapshot(owner))
	require.NoError(t, err)

	assert.Equal(t, "Hi &amp; Bye", quote.ClientName)
	assert.Equal(t, "xCoil &amp; fan", quote.Items[0].Description)

	// The live draft keeps the raw text.
	live := store.Snapshot(owner)
	assert.Equal(t, "<b>Hi & Bye</b>", live.Client.Name)
}

func TestBuildQuote_IncompleteDraft(t *testing.T) {
	owner := uuid.New()

	_, err := BuildQuote(owner, models.NewDraft())

	assert.ErrorIs(t, err, ErrIncompleteDraft)
}

func TestBuildQuote_RoundsSellingPriceAtBoundary(t *testing.T) {
	store := NewDraftStore()
	owner := uuid.New()
	seedCompleteDraft(t, store, owner)
	require.NoError(t, store.Update(owner, func(d *models.Draft) error {
		return d.UpdateItemField(0, models.ItemFieldUnitPrice, "19.995")
	}))
	require.NoError(t, store.Update(owner, func(d *models.Draft) error {
		return d.UpdateItemField(0, models.ItemFieldQuantity, "1")
	}))
	require.NoError(t, store.Update(owner, func(d *models.Draft) error {
		return d.UpdateItemField(0, models.ItemFieldMargin, "0")
	}))

	quote, err := BuildQuote(owner, store.Snapshot(owner))
	require.NoError(t, err)

	assert.InDelta(t, 20.00, quote.Items[0].SellingPrice, 1e-9)
}

func TestPreviewAndSaveAgree(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuoteService(db, NewDraftStore())
	owner := uuid.New()
	seedCompleteDraft(t, svc.Drafts(), owner)

	preview, err := svc.Preview(owner)
	require.NoError(t, err)

	saved, err := svc.Save(owner)
	require.NoError(t, err)

	assert.Equal(t, preview.ItemSubtotal, saved.ItemSubtotal)
	assert.Equal(t, preview.Tax, saved.Tax)
	assert.Equal(t, preview.Total, saved.Total)
}

func TestSave_PersistsAndResetsDraft(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuoteService(db, NewDraftStore())
	owner := uuid.New()
	seedCompleteDraft(t, svc.Drafts(), owner)

	saved, err := svc.Save(owner)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Quote{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	fetched, err := svc.GetQuote(owner, saved.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "AC-100", fetched.Items[0].CatalogNumber)

	// Draft is back to its initial one-blank-row shape.
	draft := svc.Drafts().Snapshot(owner)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, pricing.Item{}, draft.Items[0])
	assert.False(t, draft.IsComplete())
}

func TestSave_FailureLeavesDraftUntouched(t *testing.T) {
	// No tables migrated: the insert fails.
	db, err := gorm.Open(sqlite.Open("file:savefail?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	svc := NewQuoteService(db, NewDraftStore())
	owner := uuid.New()
	seedCompleteDraft(t, svc.Drafts(), owner)

	_, err = svc.Save(owner)
	require.Error(t, err)

	draft := svc.Drafts().Snapshot(owner)
	assert.True(t, draft.IsComplete())
	assert.Equal(t, "AC-100", draft.Items[0].CatalogNumber)
}

func TestSave_RejectsWhileInFlight(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuoteService(db, NewDraftStore())
	owner := uuid.New()
	seedCompleteDraft(t, svc.Drafts(), owner)

	require.True(t, svc.Drafts().BeginSave(owner))
	_, err := svc.Save(owner)
	assert.ErrorIs(t, err, ErrSaveInFlight)
	svc.Drafts().EndSave(owner)

	_, err = svc.Save(owner)
	assert.NoError(t, err)
}

func TestSave_DoubleSubmitWritesExactlyOneQuote(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuoteService(db, NewDraftStore())
	owner := uuid.New()
	seedCompleteDraft(t, svc.Drafts(), owner)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Save(owner)
		}(i)
	}
	wg.Wait()

	// One save wins; the other is turned away by the latch or sees the
	// already-reset draft. Either way a single quote lands.
	var count int64
	require.NoError(t, db.Model(&models.Quote{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.True(t, (errs[0] == nil) != (errs[1] == nil), "exactly one save should succeed")
}

func TestListQuotes_OwnerScopedInsertionOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuoteService(db, NewDraftStore())
	owner := uuid.New()
	other := uuid.New()

	seedCompleteDraft(t, svc.Drafts(), owner)
	first, err := svc.Save(owner)
	require.NoError(t, err)

	seedCompleteDraft(t, svc.Drafts(), owner)
	second, err := svc.Save(owner)
	require.NoError(t, err)

	seedCompleteDraft(t, svc.Drafts(), other)
	_, err = svc.Save(other)
	require.NoError(t, err)

	quotes, err := svc.ListQuotes(owner)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, first.QuoteNumber, quotes[0].QuoteNumber)
	assert.Equal(t, second.QuoteNumber, quotes[1].QuoteNumber)

	_, err = svc.GetQuote(other, first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
