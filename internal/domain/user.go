package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// UserRole
// ──────────────────────────────────────────────────────────────────────────────

// UserRole controls access levels.
type UserRole string

const (
	RoleUser  UserRole = "user"  // standard player
	RoleAdmin UserRole = "admin" // administrative access
)

// IsAdmin returns true only for the admin role.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// ──────────────────────────────────────────────────────────────────────────────
// User
// ──────────────────────────────────────────────────────────────────────────────

// User is the domain entity for registered player accounts. Balance is the
// user's credit in house currency; it is never negative and is mutated only
// through the ledger debit/credit operations.
type User struct {
	ID           uuid.UUID       `json:"id"         db:"id"`
	Email        string          `json:"email"      db:"email"`
	Username     string          `json:"username"   db:"username"`
	PasswordHash string          `json:"-"          db:"password_hash"` // never serialised
	Role         UserRole        `json:"role"       db:"role"`
	IsActive     bool            `json:"is_active"  db:"is_active"`
	Balance      decimal.Decimal `json:"balance"    db:"balance"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// PublicProfile returns a user view safe to expose via API (no password hash).
type PublicProfile struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Username  string          `json:"username"`
	Role      UserRole        `json:"role"`
	IsActive  bool            `json:"is_active"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToPublicProfile converts a User to its public-safe representation.
func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// BalanceMovement
// ──────────────────────────────────────────────────────────────────────────────

// MovementType enumerates ledger movement types for auditing.
type MovementType string

const (
	MovementStake   MovementType = "stake"   // debit at bet placement
	MovementPayout  MovementType = "payout"  // credit at bet settlement (stake + win)
	MovementWelcome MovementType = "welcome" // registration starting credit
	MovementAdjust  MovementType = "adjust"  // manual admin adjustment
)

// BalanceMovement is an immutable audit record for every balance change.
type BalanceMovement struct {
	ID            uuid.UUID       `json:"id"             db:"id"`
	UserID        uuid.UUID       `json:"user_id"        db:"user_id"`
	Type          MovementType    `json:"type"           db:"type"`
	Amount        decimal.Decimal `json:"amount"         db:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before" db:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"  db:"balance_after"`
	RefID         *uuid.UUID      `json:"ref_id"         db:"ref_id"` // bet ID, when applicable
	Description   string          `json:"description"    db:"description"`
	CreatedAt     time.Time       `json:"created_at"     db:"created_at"`
}
