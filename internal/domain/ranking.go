package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// RankingType
// ──────────────────────────────────────────────────────────────────────────────

// RankingType is the closed enumeration of leaderboard orderings.
type RankingType string

const (
	// RankOverallProfit orders accounts by the sum of winloss across all bets.
	RankOverallProfit RankingType = "OVERALL_PROFIT"
	// RankTotalBetsAmount orders accounts by the total amount staked.
	RankTotalBetsAmount RankingType = "TOTAL_BETS_AMOUNT"
	// RankByGameWins orders accounts by the number of WON bets in one game.
	RankByGameWins RankingType = "BY_GAME_WINS"
	// RankWinRate orders accounts by WON bets over total bets, as a percentage.
	RankWinRate RankingType = "WIN_RATE"
	// RankByGameWinRate is RankWinRate restricted to one game.
	RankByGameWinRate RankingType = "BY_GAME_WIN_RATE"
)

// IsValid returns true when rt is a recognised ranking type.
func (rt RankingType) IsValid() bool {
	switch rt {
	case RankOverallProfit, RankTotalBetsAmount, RankByGameWins,
		RankWinRate, RankByGameWinRate:
		return true
	}
	return false
}

// RequiresGame returns true for ranking types that are only meaningful when
// scoped to a single game. Requesting one of these without a game is a
// configuration error, not something to silently default.
func (rt RankingType) RequiresGame() bool {
	return rt == RankByGameWins || rt == RankByGameWinRate
}

// ──────────────────────────────────────────────────────────────────────────────
// RankingEntry
// ──────────────────────────────────────────────────────────────────────────────

// RankingEntry is one leaderboard row. Entries are computed fresh on every
// query and never persisted; recomputation is deterministic for identical
// bet history.
type RankingEntry struct {
	UserID   uuid.UUID   `json:"user_id"`
	Username string      `json:"username"`
	GameID   *uuid.UUID  `json:"game_id,omitempty"` // nil = global ranking
	Type     RankingType `json:"type"`
	// Score is the ranking metric: a money value for profit/amount rankings,
	// a count for win rankings, a 0–100 percentage for win-rate rankings.
	Score    decimal.Decimal `json:"score"`
	Position int             `json:"position"` // 1..N, dense, no gaps
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregation read models
// ──────────────────────────────────────────────────────────────────────────────

// AccountRef is the minimal account identity the ranking aggregator iterates
// over. CreatedAt fixes the stable tie-break order for equal scores.
type AccountRef struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	CreatedAt time.Time `db:"created_at"`
}

// AccountTally holds the per-account bet aggregates a single grouped query
// produces, optionally filtered to one game.
type AccountTally struct {
	UserID  uuid.UUID       `db:"user_id"`
	Winloss decimal.Decimal `db:"winloss"` // sum of signed results
	Staked  decimal.Decimal `db:"staked"`  // sum of amounts
	Won     int64           `db:"won"`     // count of WON bets
	Total   int64           `db:"total"`   // count of all bets
}
