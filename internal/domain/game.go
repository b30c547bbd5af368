// Package domain defines the core business entities and types for the
// casino wager settlement system.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────────────────────────────────────
// Game
// ──────────────────────────────────────────────────────────────────────────────

// Canonical game names. The name selects the payout resolver that settles
// bets placed on the game.
const (
	GameRoulette = "roulette"
	GameDice     = "dice"
)

// Game identifies one house game. Games are seeded by migration and are
// immutable at runtime.
type Game struct {
	ID        uuid.UUID `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
