package handler

import (
	"errors"
	"net/http"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/api/middleware"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/payout"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetHandler serves bet placement, history, and settlement endpoints.
type BetHandler struct {
	betSvc *service.BetService
}

// NewBetHandler creates a BetHandler.
func NewBetHandler(betSvc *service.BetService) *BetHandler {
	return &BetHandler{betSvc: betSvc}
}

// PlaceBet godoc
// POST /api/bets [JWT]
// Body: {"game_id":"uuid","amount":"25.00","bet_type":"number","bet_value":"17"}
func (h *BetHandler) PlaceBet(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var body struct {
		GameID   string `json:"game_id"   binding:"required"`
		Amount   string `json:"amount"    binding:"required"`
		BetType  string `json:"bet_type"  binding:"required"`
		BetValue string `json:"bet_value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "ERR_VALIDATION", err.Error())
		return
	}

	gameID, err := uuid.Parse(body.GameID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_GAME_ID", "invalid game_id format")
		return
	}

	amount, err := decimal.NewFromString(body.Amount)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_AMOUNT", "amount must be a decimal string")
		return
	}

	req := domain.PlaceBetRequest{
		UserID:   userID,
		GameID:   gameID,
		Amount:   amount,
		BetType:  body.BetType,
		BetValue: body.BetValue,
	}

	bet, err := h.betSvc.PlaceBet(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidWager):
			respondError(c, http.StatusBadRequest, "ERR_INVALID_WAGER", domain.ErrInvalidWager.Error())
		case errors.Is(err, domain.ErrInsufficientFunds):
			respondError(c, http.StatusPaymentRequired, "ERR_INSUFFICIENT_FUNDS", domain.ErrInsufficientFunds.Error())
		case errors.Is(err, domain.ErrUnsupportedGame):
			respondError(c, http.StatusBadRequest, "ERR_UNSUPPORTED_GAME", domain.ErrUnsupportedGame.Error())
		case domain.IsNotFound(err):
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "game or user not found")
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not place bet")
		}
		return
	}
	respondSuccess(c, http.StatusCreated, bet.ToResponse())
}

// ResolveBet godoc
// POST /api/bets/:id/resolve [JWT]
// Body (optional, admin only): {"outcome":"17"}
//
// Players can only trigger a house draw on their own bets; an explicit
// outcome may only be supplied by an admin.
func (h *BetHandler) ResolveBet(c *gin.Context) {
	userID := middleware.GetUserID(c)

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_BET_ID", "invalid bet id")
		return
	}

	var body struct {
		Outcome string `json:"outcome"`
	}
	_ = c.ShouldBindJSON(&body) // body is optional

	if !middleware.IsAdmin(c) {
		if body.Outcome != "" {
			respondError(c, http.StatusForbidden, "ERR_FORBIDDEN", "only admins may supply an outcome")
			return
		}
		// Ownership check: players settle only their own bets.
		if _, err := h.betSvc.GetBetByID(c.Request.Context(), betID, userID); err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				respondError(c, http.StatusForbidden, "ERR_FORBIDDEN", "this bet does not belong to you")
				return
			}
			if domain.IsNotFound(err) {
				respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "bet not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not resolve bet")
			return
		}
	}

	bet, err := h.betSvc.ResolveBet(c.Request.Context(), betID, body.Outcome)
	if err != nil {
		switch {
		case domain.IsNotFound(err):
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "bet not found")
		case errors.Is(err, payout.ErrInvalidOutcome):
			respondError(c, http.StatusBadRequest, "ERR_INVALID_OUTCOME", "outcome is not a legal result for this game")
		case errors.Is(err, domain.ErrUnsupportedGame):
			respondError(c, http.StatusConflict, "ERR_UNSUPPORTED_GAME", domain.ErrUnsupportedGame.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not resolve bet")
		}
		return
	}
	respondSuccess(c, http.StatusOK, bet.ToResponse())
}

// GetMyBets godoc
// GET /api/bets/my?page=1&limit=20 [JWT]
func (h *BetHandler) GetMyBets(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	bets, err := h.betSvc.GetMyBets(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch bets")
		return
	}
	responses := make([]domain.BetResponse, 0, len(bets))
	for _, b := range bets {
		responses = append(responses, b.ToResponse())
	}
	respondList(c, responses, len(responses), page, limit)
}

// GetBetByID godoc
// GET /api/bets/:id [JWT]
func (h *BetHandler) GetBetByID(c *gin.Context) {
	userID := middleware.GetUserID(c)

	betID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_BET_ID", "invalid bet id")
		return
	}

	bet, err := h.betSvc.GetBetByID(c.Request.Context(), betID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			respondError(c, http.StatusForbidden, "ERR_FORBIDDEN", "access denied")
		case domain.IsNotFound(err):
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "bet not found")
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch bet")
		}
		return
	}
	respondSuccess(c, http.StatusOK, bet.ToResponse())
}
