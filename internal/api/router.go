package api

import (
	"net/http"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/api/handler"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/api/middleware"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/config"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/repository"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/service"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps bundles every dependency needed to build the router.
// Populated once in main() and passed to SetupRouter.
type RouterDeps struct {
	AuthSvc    *service.AuthService
	BetSvc     *service.BetService
	RankingSvc *service.RankingService
	UserRepo   *repository.UserRepository
	GameRepo   *repository.GameRepository
	BetRepo    *repository.BetRepository
	Ledger     *repository.LedgerRepository
	Hub        *ws.Hub
	Cfg        *config.Config
}

// SetupRouter creates and configures the main Gin engine with all routes,
// middleware, CORS, and rate limiting rules.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// ── CORS ─────────────────────────────────────────────────────────────────
	r.Use(corsMiddleware(deps.Cfg))

	// ── Health check & metrics ───────────────────────────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── Handlers ─────────────────────────────────────────────────────────────
	userH := handler.NewUserHandler(deps.AuthSvc, deps.UserRepo)
	gameH := handler.NewGameHandler(deps.GameRepo, deps.BetRepo)
	betH := handler.NewBetHandler(deps.BetSvc)
	rankingH := handler.NewRankingHandler(deps.RankingSvc, deps.GameRepo)
	ledgerH := handler.NewLedgerHandler(deps.Ledger)

	// ── JWT middleware (shared) ───────────────────────────────────────────────
	jwtMW := middleware.JWTMiddleware(deps.AuthSvc)

	// ── Rate limiters ─────────────────────────────────────────────────────────
	authRL := middleware.PerIPLimit(middleware.LimitAuth, deps.Cfg.Server.AuthRPS)
	betRL := middleware.PerIPLimit(middleware.LimitWager, deps.Cfg.Server.WagerRPS)

	api := r.Group("/api")
	{
		// ── Auth (public, strict rate limit) ─────────────────────────────────
		auth := api.Group("/auth")
		auth.Use(authRL)
		{
			auth.POST("/register", userH.Register)
			auth.POST("/login", userH.Login)
			auth.POST("/refresh", userH.Refresh)
		}

		// ── Games (public) ───────────────────────────────────────────────────
		games := api.Group("/games")
		{
			games.GET("", gameH.List)
			games.GET("/:id", gameH.GetByID)
			games.GET("/:id/bets", gameH.GetBets)
		}

		// ── Rankings (public) ────────────────────────────────────────────────
		api.GET("/rankings/:type", rankingH.GetRanking)

		// ── Authenticated routes ──────────────────────────────────────────────
		authed := api.Group("")
		authed.Use(jwtMW)
		{
			// Profile & ledger
			authed.GET("/me", userH.Me)
			authed.GET("/balance", ledgerH.GetBalance)
			authed.GET("/movements", ledgerH.GetMovements)

			// Bets
			bets := authed.Group("/bets")
			bets.Use(betRL)
			{
				bets.POST("", betH.PlaceBet)
				bets.GET("/my", betH.GetMyBets)
				bets.GET("/:id", betH.GetBetByID)
				bets.POST("/:id/resolve", betH.ResolveBet)
			}
		}
	}

	// ── WebSocket ─────────────────────────────────────────────────────────────
	if deps.Hub != nil {
		r.GET("/ws", func(c *gin.Context) {
			deps.Hub.ServeWs(c.Writer, c.Request)
		})
	}

	return r
}

// ── CORS helper ───────────────────────────────────────────────────────────────

// corsMiddleware returns a gin middleware that sets appropriate CORS headers.
// In development all origins are allowed; in production only configured origins.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if !cfg.IsProd() {
			// Development: allow any origin
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			allowed := map[string]bool{
				"https://casino.franqueira.dev":     true,
				"https://www.casino.franqueira.dev": true,
			}
			if allowed[origin] {
				c.Header("Access-Control-Allow-Origin", origin)
			}
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
