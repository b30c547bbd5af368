package handler

import (
	"net/http"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/api/middleware"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/repository"
	"github.com/gin-gonic/gin"
)

// LedgerHandler serves balance and movement history endpoints.
type LedgerHandler struct {
	ledger *repository.LedgerRepository
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(ledger *repository.LedgerRepository) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// GetBalance godoc
// GET /api/balance [JWT]
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	userID := middleware.GetUserID(c)

	balance, err := h.ledger.GetBalance(c.Request.Context(), userID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "user not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch balance")
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"balance": balance})
}

// GetMovements godoc
// GET /api/movements?page=1&limit=20 [JWT]
func (h *LedgerHandler) GetMovements(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	movements, err := h.ledger.GetMovements(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch movements")
		return
	}
	respondList(c, movements, len(movements), page, limit)
}
