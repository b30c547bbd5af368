package domain

import (
	"errors"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sentinel errors — compare with errors.Is()
// ──────────────────────────────────────────────────────────────────────────────

// Wager errors
var (
	// ErrInvalidWager is returned when a bet request carries a non-positive
	// amount or an empty bet type / bet value. Rejected before any balance
	// mutation.
	ErrInvalidWager = errors.New("invalid wager: amount must be positive and bet type/value non-empty")

	// ErrInsufficientFunds is returned when a debit would exceed the account
	// balance. The balance is left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBetNotFound is returned when no bet matches the given id.
	ErrBetNotFound = errors.New("bet not found")

	// ErrUnsupportedGame is returned when a bet targets a game that has no
	// registered payout resolver.
	ErrUnsupportedGame = errors.New("no payout resolver registered for game")
)

// Ranking errors
var (
	// ErrGameRequired is returned when a per-game ranking type is requested
	// without a game. This is a caller configuration error; it is never
	// silently defaulted to a global ranking.
	ErrGameRequired = errors.New("ranking type requires a game")

	// ErrUnknownRankingType is returned for a ranking type outside the closed
	// enumeration.
	ErrUnknownRankingType = errors.New("unknown ranking type")
)

// User / game errors
var (
	// ErrUserNotFound is returned when no user matches the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrGameNotFound is returned when no game matches the given criteria.
	ErrGameNotFound = errors.New("game not found")

	// ErrEmailTaken is returned on registration when the email already exists.
	ErrEmailTaken = errors.New("email address is already registered")

	// ErrUsernameTaken is returned on registration when the username already exists.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrInvalidCredentials is returned when login credentials are wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserInactive is returned when a suspended user attempts an action.
	ErrUserInactive = errors.New("user account is inactive")
)

// Auth errors
var (
	// ErrUnauthorized is returned when a valid token is not present.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the authenticated user lacks the required role.
	ErrForbidden = errors.New("forbidden: insufficient permissions")

	// ErrTokenExpired is returned when a JWT has passed its TTL.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned when a token cannot be parsed or its
	// signature does not match.
	ErrTokenInvalid = errors.New("token is invalid")
)

// ──────────────────────────────────────────────────────────────────────────────
// Helper predicates
// ──────────────────────────────────────────────────────────────────────────────

// notFoundErrors collects all "entity not found" sentinel errors so that
// IsNotFound can stay in sync automatically.
var notFoundErrors = []error{
	ErrUserNotFound,
	ErrGameNotFound,
	ErrBetNotFound,
}

// IsNotFound returns true when err (or any error in its chain) is one of the
// domain "not found" errors. Use this instead of comparing error values
// directly when translating domain errors to HTTP 404 responses.
func IsNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsInvalidArgument returns true for request-shape errors that map to HTTP 400.
func IsInvalidArgument(err error) bool {
	invalidErrors := []error{
		ErrInvalidWager,
		ErrGameRequired,
		ErrUnknownRankingType,
	}
	for _, target := range invalidErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsAuthError returns true for authentication/authorisation errors.
func IsAuthError(err error) bool {
	authErrors := []error{
		ErrUnauthorized,
		ErrForbidden,
		ErrTokenExpired,
		ErrTokenInvalid,
		ErrInvalidCredentials,
	}
	for _, target := range authErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
