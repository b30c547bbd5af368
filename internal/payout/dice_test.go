package payout

import (
	"errors"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
)

// TestDiceResolve exercises the dice payout table for all three bet types.
func TestDiceResolve(t *testing.T) {
	d := NewDice()

	tests := []struct {
		name     string
		betType  string
		betValue string
		outcome  string
		amount   int64
		want     string
	}{
		// Exact sums pay the combination-weighted odds table.
		{"number 7 hit pays 5x", "number", "7", "7", 5, "25"},
		{"number 2 hit pays 30x", "number", "2", "2", 10, "300"},
		{"number 12 hit pays 30x", "number", "12", "12", 1, "30"},
		{"number 6 hit pays 6x", "number", "6", "6", 10, "60"},
		{"number miss", "number", "7", "8", 5, "-5"},

		// Halves pay ×0.95: half 1 covers sums 2–6, half 2 covers 7–12.
		{"half 1 hit on 6", "half", "1", "6", 10, "9.5"},
		{"half 2 hit on 7", "half", "2", "7", 10, "9.5"},
		{"half 1 miss on 7", "half", "1", "7", 10, "-10"},
		{"half 2 miss on 2", "half", "2", "2", 20, "-20"},

		// Parity pays ×0.95.
		{"parity even hit", "parity", "even", "4", 10, "9.5"},
		{"parity odd hit", "parity", "odd", "11", 10, "9.5"},
		{"parity even miss", "parity", "even", "7", 10, "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Resolve(tt.betType, tt.betValue, tt.outcome, decimal.NewFromInt(tt.amount))
			if err != nil {
				t.Fatalf("Resolve(%s,%s,%s) error: %v", tt.betType, tt.betValue, tt.outcome, err)
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("Resolve(%s,%s,%s) = %s, want %s",
					tt.betType, tt.betValue, tt.outcome, got, want)
			}
		})
	}
}

// TestDiceNumberOddsTable pins the full odds table: every sum wins exactly
// amount × table[sum] on a hit.
func TestDiceNumberOddsTable(t *testing.T) {
	d := NewDice()
	amount := decimal.NewFromInt(1)

	table := map[int]int64{
		2: 30, 3: 15, 4: 10, 5: 8, 6: 6, 7: 5, 8: 6, 9: 8, 10: 10, 11: 15, 12: 30,
	}

	for sum, odds := range table {
		s := strconv.Itoa(sum)
		got, err := d.Resolve("number", s, s, amount)
		if err != nil {
			t.Fatalf("sum %d: %v", sum, err)
		}
		if !got.Equal(decimal.NewFromInt(odds)) {
			t.Errorf("number bet on %d pays %s, want %d", sum, got, odds)
		}
	}
}

// TestDiceInvalidInput verifies the error paths for malformed wagers.
func TestDiceInvalidInput(t *testing.T) {
	d := NewDice()
	amount := decimal.NewFromInt(5)

	tests := []struct {
		name     string
		betType  string
		betValue string
		outcome  string
		wantErr  error
	}{
		{"unknown bet type", "triple", "3", "7", ErrUnknownBetType},
		{"number value too low", "number", "1", "7", ErrInvalidBetValue},
		{"number value too high", "number", "13", "7", ErrInvalidBetValue},
		{"number value garbage", "number", "seven", "7", ErrInvalidBetValue},
		{"half value out of range", "half", "3", "7", ErrInvalidBetValue},
		{"parity value garbage", "parity", "both", "7", ErrInvalidBetValue},
		{"outcome below range", "parity", "even", "1", ErrInvalidOutcome},
		{"outcome above range", "parity", "even", "13", ErrInvalidOutcome},
		{"outcome garbage", "number", "7", "x", ErrInvalidOutcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Resolve(tt.betType, tt.betValue, tt.outcome, amount)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve(%s,%s,%s) err = %v, want %v",
					tt.betType, tt.betValue, tt.outcome, err, tt.wantErr)
			}
		})
	}
}

func TestDiceValidateOutcome(t *testing.T) {
	d := NewDice()

	for _, ok := range []string{"2", "7", "12"} {
		if err := d.ValidateOutcome(ok); err != nil {
			t.Errorf("ValidateOutcome(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"1", "13", "0", "-3", "seven", ""} {
		if err := d.ValidateOutcome(bad); !errors.Is(err, ErrInvalidOutcome) {
			t.Errorf("ValidateOutcome(%q) = %v, want ErrInvalidOutcome", bad, err)
		}
	}
}

// TestRegistrySelection verifies game-name keyed resolver lookup.
func TestRegistrySelection(t *testing.T) {
	reg := DefaultRegistry()

	for _, name := range []string{"roulette", "dice"} {
		r, ok := reg.For(name)
		if !ok {
			t.Fatalf("no resolver registered for %q", name)
		}
		if r.GameName() != name {
			t.Errorf("resolver for %q reports game %q", name, r.GameName())
		}
	}

	if _, ok := reg.For("blackjack"); ok {
		t.Error("registry should not resolve unregistered games")
	}
}
