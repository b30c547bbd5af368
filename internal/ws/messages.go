// Package ws holds WebSocket message types and the Hub implementation.
// messages.go defines all message structs broadcast to connected clients.
package ws

import (
	"time"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MsgType identifies the kind of WS message so clients can switch on it.
type MsgType string

const (
	MsgTypeBetSettled MsgType = "bet_settled"
	MsgTypeError      MsgType = "error"
)

// ──────────────────────────────────────────────────────────────────────────────
// BetSettledMessage — broadcast when a bet reaches its terminal state.
// ──────────────────────────────────────────────────────────────────────────────

// BetSettledMessage tells clients the outcome of a settled bet so balances
// and leaderboards can refresh.
type BetSettledMessage struct {
	Type         MsgType          `json:"type"`
	BetID        uuid.UUID        `json:"bet_id"`
	UserID       uuid.UUID        `json:"user_id"`
	GameID       uuid.UUID        `json:"game_id"`
	Status       domain.BetStatus `json:"status"`
	WinningValue string           `json:"winning_value"`
	Winloss      decimal.Decimal  `json:"winloss"`
	Timestamp    time.Time        `json:"timestamp"`
}

// ──────────────────────────────────────────────────────────────────────────────
// ErrorMessage — sent to a single client on a non-fatal error.
// ──────────────────────────────────────────────────────────────────────────────

// ErrorMessage is sent directly to one client (not broadcast).
type ErrorMessage struct {
	Type    MsgType `json:"type"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
}
