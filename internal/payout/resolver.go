// Package payout implements the pure payout functions that settle wagers.
// One Resolver exists per game; the Registry selects it by game name.
// Resolvers never touch storage or balances — they map
// (bet type, bet value, outcome, amount) to a signed result.
package payout

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Resolution errors. The bet lifecycle manager treats any resolver error as
// a lost bet (winloss = −amount) so money stays conserved even for malformed
// input; nothing here should ever panic.
var (
	// ErrUnknownBetType is returned for a bet type outside the game's vocabulary.
	ErrUnknownBetType = errors.New("unknown bet type")

	// ErrInvalidBetValue is returned when the bet value cannot be parsed for
	// the given bet type.
	ErrInvalidBetValue = errors.New("invalid bet value")

	// ErrInvalidOutcome is returned when the supplied outcome is not a legal
	// result for the game.
	ErrInvalidOutcome = errors.New("invalid game outcome")
)

// Resolver computes the signed winloss for one settled wager.
//
// A positive return is the player's net win (the stake is credited back on
// top of it by the caller); a negative return is always exactly −amount.
type Resolver interface {
	// GameName returns the game this resolver settles, matching Game.Name.
	GameName() string

	// ValidateOutcome reports whether outcome is a legal result for the
	// game. Callers accepting outcomes from outside (an operator, a feed)
	// must validate before settling: a bet must never reach a terminal
	// state on an outcome the game cannot produce.
	ValidateOutcome(outcome string) error

	// Resolve maps a wager and an outcome to a signed payout.
	Resolve(betType, betValue, outcome string, amount decimal.Decimal) (decimal.Decimal, error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registry
// ──────────────────────────────────────────────────────────────────────────────

// Registry holds the resolvers keyed by game name.
type Registry struct {
	resolvers map[string]Resolver
}

// NewRegistry builds a Registry from the given resolvers.
func NewRegistry(rs ...Resolver) *Registry {
	reg := &Registry{resolvers: make(map[string]Resolver, len(rs))}
	for _, r := range rs {
		reg.resolvers[r.GameName()] = r
	}
	return reg
}

// DefaultRegistry returns a Registry with every house game registered.
func DefaultRegistry() *Registry {
	return NewRegistry(NewRoulette(), NewDice())
}

// For returns the resolver for the given game name.
func (r *Registry) For(gameName string) (Resolver, bool) {
	res, ok := r.resolvers[gameName]
	return res, ok
}
