package handler

import (
	"net/http"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GameHandler serves the game catalogue endpoints.
type GameHandler struct {
	gameRepo *repository.GameRepository
	betRepo  *repository.BetRepository
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(gameRepo *repository.GameRepository, betRepo *repository.BetRepository) *GameHandler {
	return &GameHandler{gameRepo: gameRepo, betRepo: betRepo}
}

// List godoc
// GET /api/games
func (h *GameHandler) List(c *gin.Context) {
	games, err := h.gameRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch games")
		return
	}
	respondSuccess(c, http.StatusOK, games)
}

// GetByID godoc
// GET /api/games/:id
func (h *GameHandler) GetByID(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_GAME_ID", "invalid game id")
		return
	}

	game, err := h.gameRepo.GetByID(c.Request.Context(), gameID)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "game not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch game")
		return
	}
	respondSuccess(c, http.StatusOK, game)
}

// GetBets godoc
// GET /api/games/:id/bets?page=1&limit=20
func (h *GameHandler) GetBets(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "ERR_INVALID_GAME_ID", "invalid game id")
		return
	}
	page, limit := parsePagination(c)
	offset := (page - 1) * limit

	bets, err := h.betRepo.GetByGameID(c.Request.Context(), gameID, limit, offset)
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
