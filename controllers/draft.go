// controllers/draft.go
package controllers

import (
	"net/http"
	"strconv"

	"hvacquote-backend/models"
	"hvacquote-backend/pricing"
	"hvacquote-backend/services"
	"hvacquote-backend/utils"

	"github.com/gin-gonic/gin"
)

// DraftController exposes the mutation surface of the per-user draft: row
// management, field edits and the explicit calculate action. Totals are not
// recomputed on every edit; the client asks for them when it wants them.
type DraftController struct {
	Store *services.DraftStore
}

// UpdateFieldInput carries one field edit for an item row or the client block.
type UpdateFieldInput struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateFeeInput carries the flat service fee as typed.
type UpdateFeeInput struct {
	Value string `json:"value"`
}

// RowTotal is the display value of one row in a calculate response.
type RowTotal struct {
	Index        int     `json:"index"`
	SellingPrice float64 `json:"sellingPrice"`
}

// GetDraft returns the user's current draft, creating it on first access.
func (dc *DraftController) GetDraft(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft := dc.Store.Snapshot(ownerID)
	c.JSON(http.StatusOK, gin.H{
		"draft":    draft,
		"complete": draft.IsComplete(),
	})
}

// AddItem appends a blank row to the draft.
func (dc *DraftController) AddItem(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	_ = dc.Store.Update(ownerID, func(d *models.Draft) error {
		d.AddItem()
		return nil
	})

	c.JSON(http.StatusOK, gin.H{"draft": dc.Store.Snapshot(ownerID)})
}

// RemoveItem deletes the row at :index. The list may become empty.
func (dc *DraftController) RemoveItem(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item index")
		return
	}

	if err := dc.Store.Update(ownerID, func(d *models.Draft) error {
		return d.RemoveItem(index)
	}); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": dc.Store.Snapshot(ownerID)})
}

// UpdateItem sets one field of the row at :index. Entering the labor-only
// catalog number autofills the whole row.
func (dc *DraftController) UpdateItem(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid item index")
		return
	}

	var input UpdateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := dc.Store.Update(ownerID, func(d *models.Draft) error {
		return d.UpdateItemField(index, models.ItemField(input.Field), input.Value)
	}); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": dc.Store.Snapshot(ownerID)})
}

// UpdateClient sets one client contact field.
func (dc *DraftController) UpdateClient(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := dc.Store.Update(ownerID, func(d *models.Draft) error {
		return d.SetClientField(models.ClientField(input.Field), input.Value)
	}); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": dc.Store.Snapshot(ownerID)})
}

// UpdateFee replaces the flat service fee.
func (dc *DraftController) UpdateFee(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateFeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	_ = dc.Store.Update(ownerID, func(d *models.Draft) error {
		d.SetServiceFee(input.Value)
		return nil
	})

	c.JSON(http.StatusOK, gin.H{"draft": dc.Store.Snapshot(ownerID)})
}

// Calculate runs the shared pricing computation over the current draft and
// returns display-rounded totals plus per-row selling prices.
func (dc *DraftController) Calculate(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft := dc.Store.Snapshot(ownerID)
	totals := draft.Totals()

	rows := make([]RowTotal, 0, len(draft.Items))
	for i, it := range draft.Items {
		rows = append(rows, RowTotal{Index: i, SellingPrice: pricing.Round2(it.SellingPrice())})
	}

	c.JSON(http.StatusOK, gin.H{
		"itemSubtotal": pricing.Round2(totals.ItemSubtotal),
		"tax":          pricing.Round2(totals.Tax),
		"grandTotal":   pricing.Round2(totals.GrandTotal),
		"rows":         rows,
		"complete":     draft.IsComplete(),
	})
}

// ResetDraft discards the draft, the cancel path of the form.
func (dc *DraftController) ResetDraft(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	dc.Store.Reset(ownerID)
	c.JSON(http.StatusOK, gin.H{"draft": dc.Store.Snapshot(ownerID)})
}
