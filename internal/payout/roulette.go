package payout

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Roulette (American wheel: 0, 00, 1–36 — 38 slots)
// ──────────────────────────────────────────────────────────────────────────────

// rouletteRed is the fixed 18-member red set of the American wheel layout.
// Every other number in 1–36 is black; 0 and 00 are green.
var rouletteRed = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Win multipliers per bet type. These are the paid-out economics of the
// product and must not drift.
var (
	rouletteStraightOdds  = decimal.NewFromInt(35) // single number
	rouletteEvenMoneyOdds = decimal.NewFromInt(1)  // color, parity, half
	rouletteTwoToOneOdds  = decimal.NewFromInt(2)  // dozen, column
)

// Roulette settles bets against a winning slot in {"0","00","1".."36"}.
//
// Bet vocabulary:
//
//	number  exact slot string    pays ×35 (the only type that can win on 0/00)
//	color   "1" red / "2" black  pays ×1
//	parity  "even" / "odd"       pays ×1
//	dozen   "1" / "2" / "3"      pays ×2
//	column  "1" / "2" / "3"      pays ×2
//	half    "low" / "high"       low = 1–18, high = 19–36, pays ×1
//
// Every bet except a direct number bet on "0" or "00" loses automatically
// when the ball lands on a green slot.
type Roulette struct{}

// NewRoulette creates the roulette resolver.
func NewRoulette() *Roulette { return &Roulette{} }

// GameName implements Resolver.
func (r *Roulette) GameName() string { return "roulette" }

// ValidateOutcome implements Resolver: a roulette outcome names one of the
// 38 wheel slots.
func (r *Roulette) ValidateOutcome(outcome string) error {
	if !validSlot(outcome) {
		return ErrInvalidOutcome
	}
	return nil
}

// Resolve implements Resolver.
func (r *Roulette) Resolve(betType, betValue, outcome string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := r.ValidateOutcome(outcome); err != nil {
		return decimal.Zero, err
	}

	green := outcome == "0" || outcome == "00"
	var n int
	if !green {
		n, _ = strconv.Atoi(outcome)
	}

	// Direct number bets are the only ones that survive a green slot.
	if betType == "number" {
		if !validSlot(betValue) {
			return decimal.Zero, ErrInvalidBetValue
		}
		if betValue == outcome {
			return amount.Mul(rouletteStraightOdds), nil
		}
		return amount.Neg(), nil
	}
	if green {
		switch betType {
		case "color", "parity", "dozen", "column", "half":
			if !validOutsideBet(betType, betValue) {
				return decimal.Zero, ErrInvalidBetValue
			}
			return amount.Neg(), nil
		}
		return decimal.Zero, ErrUnknownBetType
	}

	switch betType {
	case "color":
		var won bool
		switch betValue {
		case "1":
			won = rouletteRed[n]
		case "2":
			won = !rouletteRed[n]
		default:
			return decimal.Zero, ErrInvalidBetValue
		}
		return settle(won, amount, rouletteEvenMoneyOdds), nil

	case "parity":
		var won bool
		switch betValue {
		case "even":
			won = n%2 == 0
		case "odd":
			won = n%2 == 1
		default:
			return decimal.Zero, ErrInvalidBetValue
		}
		return settle(won, amount, rouletteEvenMoneyOdds), nil

	case "dozen":
		target, err := strconv.Atoi(betValue)
		if err != nil || target < 1 || target > 3 {
			return decimal.Zero, ErrInvalidBetValue
		}
		dozen := (n + 11) / 12 // ceil(n/12)
		return settle(dozen == target, amount, rouletteTwoToOneOdds), nil

	case "column":
		target, err := strconv.Atoi(betValue)
		if err != nil || target < 1 || target > 3 {
			return decimal.Zero, ErrInvalidBetValue
		}
		col := n % 3
		if col == 0 {
			col = 3
		}
		return settle(col == target, amount, rouletteTwoToOneOdds), nil

	case "half":
		var won bool
		switch betValue {
		case "low":
			won = n >= 1 && n <= 18
		case "high":
			won = n >= 19 && n <= 36
		default:
			return decimal.Zero, ErrInvalidBetValue
		}
		return settle(won, amount, rouletteEvenMoneyOdds), nil
	}

	return decimal.Zero, ErrUnknownBetType
}

// settle returns the signed payout for a win/loss at the given multiplier.
func settle(won bool, amount, odds decimal.Decimal) decimal.Decimal {
	if won {
		return amount.Mul(odds)
	}
	return amount.Neg()
}

// validSlot reports whether s names one of the 38 wheel slots.
func validSlot(s string) bool {
	if s == "0" || s == "00" {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 36
}

// validOutsideBet reports whether the type/value pair is a recognised
// non-number bet. Used on green outcomes, where the bet loses either way but
// a malformed wager must still surface as an error rather than a clean loss.
func validOutsideBet(betType, betValue string) bool {
	switch betType {
	case "color":
		return betValue == "1" || betValue == "2"
	case "parity":
		return betValue == "even" || betValue == "odd"
	case "dozen", "column":
		return betValue == "1" || betValue == "2" || betValue == "3"
	case "half":
		return betValue == "low" || betValue == "high"
	}
	return false
}
