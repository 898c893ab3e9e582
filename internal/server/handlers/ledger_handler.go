package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/skinledger/internal/domain/models"
	"github.com/mamadbah2/skinledger/internal/service/ledger"
	"github.com/mamadbah2/skinledger/internal/service/pricing"
)

// LedgerHandler adapts the ledger and pricing services to HTTP.
type LedgerHandler struct {
	ledgerSvc  *ledger.Service
	pricingSvc *pricing.Service
	logger     *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter.
func NewLedgerHandler(ledgerSvc *ledger.Service, pricingSvc *pricing.Service, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{ledgerSvc: ledgerSvc, pricingSvc: pricingSvc, logger: logger}
}

// List returns all items in display order.
func (h *LedgerHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledgerSvc.List())
}

// Totals returns the aggregate over the whole ledger.
func (h *LedgerHandler) Totals(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledgerSvc.Totals())
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search returns name-matching items plus totals over exactly the matches.
func (h *LedgerHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid search payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, totals := h.ledgerSvc.Search(req.Query)
	c.JSON(http.StatusOK, gin.H{"data": items, "totals": totals})
}

// Create adds a new item from the posted field map.
func (h *LedgerHandler) Create(c *gin.Context) {
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.ledgerSvc.Add(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update merges the posted fields into an existing item.
func (h *LedgerHandler) Update(c *gin.Context) {
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.ledgerSvc.Edit(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete permanently removes an item.
func (h *LedgerHandler) Delete(c *gin.Context) {
	itemID := c.Param("id")
	if err := h.ledgerSvc.Remove(c.Request.Context(), itemID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("item %s deleted successfully", itemID)})
}

// Refresh triggers a market price refresh in the background.
func (h *LedgerHandler) Refresh(c *gin.Context) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if err := h.pricingSvc.RefreshAll(ctx); err != nil {
			h.logger.Error("manual price refresh failed", zap.Error(err))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"message": "price refresh started"})
}

// Status reports when prices were last refreshed.
func (h *LedgerHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.pricingSvc.Status())
}

// writeError maps engine errors onto HTTP statuses, surfacing the engine's
// message verbatim.
func (h *LedgerHandler) writeError(c *gin.Context, err error) {
	var notFound *models.NotFoundError
	var validation *models.ValidationError
	var format *models.FormatError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation), errors.As(err, &format):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("unexpected ledger error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
