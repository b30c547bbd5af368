package payout

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dice
// ──────────────────────────────────────────────────────────────────────────────

// diceNumberOdds maps a two-dice sum to the win multiplier for an exact
// "number" bet. Sums with fewer combinations pay more.
var diceNumberOdds = map[int]int64{
	2:  30,
	3:  15,
	4:  10,
	5:  8,
	6:  6,
	7:  5,
	8:  6,
	9:  8,
	10: 10,
	11: 15,
	12: 30,
}

// diceEvenMoneyOdds is the near-even multiplier for half and parity bets.
// The missing 5 % is the house edge.
var diceEvenMoneyOdds = decimal.NewFromFloat(0.95)

// Dice settles bets against the sum of two six-sided dice (2–12).
//
// Bet vocabulary:
//
//	number  "2".."12"      exact sum, pays the diceNumberOdds multiplier
//	half    "1" / "2"      half 1 = sum 2–6, half 2 = sum 7–12, pays ×0.95
//	parity  "even" / "odd" parity of the sum, pays ×0.95
type Dice struct{}

// NewDice creates the dice resolver.
func NewDice() *Dice { return &Dice{} }

// GameName implements Resolver.
func (d *Dice) GameName() string { return "dice" }

// ValidateOutcome implements Resolver: a dice outcome is a sum in 2–12.
func (d *Dice) ValidateOutcome(outcome string) error {
	sum, err := strconv.Atoi(outcome)
	if err != nil || sum < 2 || sum > 12 {
		return ErrInvalidOutcome
	}
	return nil
}

// Resolve implements Resolver.
func (d *Dice) Resolve(betType, betValue, outcome string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := d.ValidateOutcome(outcome); err != nil {
		return decimal.Zero, err
	}
	sum, _ := strconv.Atoi(outcome)

	switch betType {
	case "number":
		target, err := strconv.Atoi(betValue)
		if err != nil || target < 2 || target > 12 {
			return decimal.Zero, ErrInvalidBetValue
		}
		if target == sum {
			return amount.Mul(decimal.NewFromInt(diceNumberOdds[sum])), nil
		}
		return amount.Neg(), nil

	case "half":
		var won bool
		switch betValue {
		case "1":
			won = sum >= 2 && sum <= 6
		case "2":
			won = sum >= 7 && sum <= 12
		default:
			return decimal.Zero, ErrInvalidBetValue
		}
		if won {
			return amount.Mul(diceEvenMoneyOdds), nil
		}
		return amount.Neg(), nil

	case "parity":
		var won bool
		switch betValue {
		case "even":
			won = sum%2 == 0
		case "odd":
			won = sum%2 == 1
		default:
			return decimal.Zero, ErrInvalidBetValue
		}
		if won {
			return amount.Mul(diceEvenMoneyOdds), nil
		}
		return amount.Neg(), nil
	}

	return decimal.Zero, ErrUnknownBetType
}
