// controllers/quote.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"hvacquote-backend/pdf"
	"hvacquote-backend/services"
	"hvacquote-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteController covers the preview/confirm/save path and the read-only
// history of saved quotes.
type QuoteController struct {
	Service *services.QuoteService
}

// PreviewQuote recomputes the quote for the current draft without writing
// anything. The response carries the exact record a confirm would persist.
func (qc *QuoteController) PreviewQuote(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := qc.Service.Preview(ownerID)
	if err != nil {
		if errors.Is(err, services.ErrIncompleteDraft) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build preview")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// CreateQuote is the confirm action: rebuild from the live draft, persist in
// one transaction, reset the draft. A failed save leaves the draft as it was.
func (qc *QuoteController) CreateQuote(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, err := qc.Service.Save(ownerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIncompleteDraft):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrSaveInFlight):
			utils.RespondWithError(c, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save quote")
		}
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// GetQuotes lists the user's saved quotes in the order they were created.
func (qc *QuoteController) GetQuotes(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	quotes, err := qc.Service.ListQuotes(ownerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotes")
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// GetQuote returns one saved quote by ID.
func (qc *QuoteController) GetQuote(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	quote, err := qc.Service.GetQuote(ownerID, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetQuotePDF renders a saved quote as a downloadable PDF.
func (qc *QuoteController) GetQuotePDF(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	quote, err := qc.Service.GetQuote(ownerID, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	doc, err := pdf.Generate(quote)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "PDF generation failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", quote.QuoteNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", doc)
}
