package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/repository"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/service"
	"github.com/gin-gonic/gin"
)

// RankingHandler serves the leaderboard endpoints.
type RankingHandler struct {
	rankingSvc *service.RankingService
	gameRepo   *repository.GameRepository
}

// NewRankingHandler creates a RankingHandler.
func NewRankingHandler(rankingSvc *service.RankingService, gameRepo *repository.GameRepository) *RankingHandler {
	return &RankingHandler{rankingSvc: rankingSvc, gameRepo: gameRepo}
}

// GetRanking godoc
// GET /api/rankings/:type?game=roulette
//
// :type is one of OVERALL_PROFIT, TOTAL_BETS_AMOUNT, WIN_RATE, BY_GAME_WINS,
// BY_GAME_WIN_RATE (case-insensitive). The per-game types require ?game=.
func (h *RankingHandler) GetRanking(c *gin.Context) {
	rt := domain.RankingType(strings.ToUpper(c.Param("type")))

	var game *domain.Game
	if name := c.Query("game"); name != "" {
		g, err := h.gameRepo.GetByName(c.Request.Context(), strings.ToLower(name))
		if err != nil {
			if domain.IsNotFound(err) {
				respondError(c, http.StatusNotFound, "ERR_NOT_FOUND", "game not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not fetch game")
			return
		}
		game = g
	}

	entries, err := h.rankingSvc.RankByType(c.Request.Context(), rt, game)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownRankingType):
			respondError(c, http.StatusBadRequest, "ERR_UNKNOWN_RANKING_TYPE", err.Error())
		case errors.Is(err, domain.ErrGameRequired):
			respondError(c, http.StatusBadRequest, "ERR_GAME_REQUIRED", err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "ERR_INTERNAL", "could not compute ranking")
		}
		return
	}
	respondSuccess(c, http.StatusOK, entries)
}
