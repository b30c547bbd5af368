package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Types & constants
// ──────────────────────────────────────────────────────────────────────────────

// BetStatus represents the current state of a wager.
// The only legal transition is PENDING → {WON, LOST}; settled bets are
// immutable.
type BetStatus string

const (
	BetStatusPending BetStatus = "PENDING" // stake debited, outcome not yet supplied
	BetStatusWon     BetStatus = "WON"     // settled in the player's favour
	BetStatusLost    BetStatus = "LOST"    // settled against the player
)

// ──────────────────────────────────────────────────────────────────────────────
// Bet
// ──────────────────────────────────────────────────────────────────────────────

// Bet represents a single wager on one game round.
//
// BetType and BetValue use the game-specific vocabulary understood by that
// game's payout resolver (e.g. type "number" value "17" for roulette,
// type "parity" value "even" for dice). WinningValue holds the externally
// supplied outcome once the bet is settled. Winloss is the signed net result:
// zero while pending, positive for a win, exactly −Amount for a loss.
type Bet struct {
	ID           uuid.UUID       `json:"id"            db:"id"`
	UserID       uuid.UUID       `json:"user_id"       db:"user_id"`
	GameID       uuid.UUID       `json:"game_id"       db:"game_id"`
	Amount       decimal.Decimal `json:"amount"        db:"amount"`
	BetType      string          `json:"bet_type"      db:"bet_type"`
	BetValue     string          `json:"bet_value"     db:"bet_value"`
	WinningValue *string         `json:"winning_value" db:"winning_value"`
	Winloss      decimal.Decimal `json:"winloss"       db:"winloss"`
	Status       BetStatus       `json:"status"        db:"status"`
	PlacedAt     time.Time       `json:"placed_at"     db:"placed_at"`
	ResolvedAt   *time.Time      `json:"resolved_at"   db:"resolved_at"`
}

// IsPending returns true while the bet awaits settlement.
func (b *Bet) IsPending() bool {
	return b.Status == BetStatusPending
}

// IsSettled returns true once the bet has reached a terminal state.
func (b *Bet) IsSettled() bool {
	return b.Status == BetStatusWon || b.Status == BetStatusLost
}

// ──────────────────────────────────────────────────────────────────────────────
// PlaceBetRequest — value object used by BetService
// ──────────────────────────────────────────────────────────────────────────────

// PlaceBetRequest carries the validated inputs for placing a bet.
type PlaceBetRequest struct {
	UserID   uuid.UUID
	GameID   uuid.UUID
	Amount   decimal.Decimal
	BetType  string
	BetValue string
}

// BetResponse is the API-safe view of a bet.
type BetResponse struct {
	ID           uuid.UUID       `json:"id"`
	GameID       uuid.UUID       `json:"game_id"`
	Amount       decimal.Decimal `json:"amount"`
	BetType      string          `json:"bet_type"`
	BetValue     string          `json:"bet_value"`
	WinningValue *string         `json:"winning_value,omitempty"`
	Winloss      decimal.Decimal `json:"winloss"`
	Status       BetStatus       `json:"status"`
	PlacedAt     time.Time       `json:"placed_at"`
	ResolvedAt   *time.Time      `json:"resolved_at,omitempty"`
}

// ToResponse converts a Bet to its API response form.
func (b *Bet) ToResponse() BetResponse {
	return BetResponse{
		ID:           b.ID,
		GameID:       b.GameID,
		Amount:       b.Amount,
		BetType:      b.BetType,
		BetValue:     b.BetValue,
		WinningValue: b.WinningValue,
		Winloss:      b.Winloss,
		Status:       b.Status,
		PlacedAt:     b.PlacedAt,
		ResolvedAt:   b.ResolvedAt,
	}
}
