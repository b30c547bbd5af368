// Package outcome draws game outcomes from crypto/rand. It is the house
// outcome source used when a settlement request does not supply an external
// outcome.
package outcome

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// rouletteSlots is the American wheel: 0, 00 and 1..36. 38 slots total.
var rouletteSlots = buildRouletteSlots()

func buildRouletteSlots() []string {
	slots := []string{"0", "00"}
	for n := 1; n <= 36; n++ {
		slots = append(slots, strconv.Itoa(n))
	}
	return slots
}

// randInt returns a uniform random integer in [0, n).
func randInt(n int64) (int64, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("outcome.randInt: %w", err)
	}
	return v.Int64(), nil
}

// RouletteSlot returns a uniformly random slot from the American wheel.
func RouletteSlot() (string, error) {
	i, err := randInt(int64(len(rouletteSlots)))
	if err != nil {
		return "", err
	}
	return rouletteSlots[i], nil
}

// DiceSum rolls two six-sided dice and returns their sum ("2".."12").
// The dice are rolled independently so the sum follows the natural 2d6
// distribution rather than a uniform one.
func DiceSum() (string, error) {
	d1, err := randInt(6)
	if err != nil {
		return "", err
	}
	d2, err := randInt(6)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(d1+d2+2, 10), nil
}

// ForGame draws an outcome for the named game.
func ForGame(gameName string) (string, error) {
	switch gameName {
	case "roulette":
		return RouletteSlot()
	case "dice":
		return DiceSum()
	default:
		return "", fmt.Errorf("outcome.ForGame: no outcome source for game %q", gameName)
	}
}
