package payout

import (
	"errors"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
)

// TestRouletteResolve exercises the full roulette payout table, including the
// green-slot kill rule for every outside bet.
func TestRouletteResolve(t *testing.T) {
	r := NewRoulette()
	amount := decimal.NewFromInt(10)

	tests := []struct {
		name     string
		betType  string
		betValue string
		outcome  string
		want     int64 // expected payout for amount=10
	}{
		// Straight number bets pay 35:1.
		{"number hit", "number", "17", "17", 350},
		{"number miss", "number", "17", "18", -10},
		{"number zero hit", "number", "0", "0", 350},
		{"number double zero hit", "number", "00", "00", 350},
		{"number zero vs double zero", "number", "0", "00", -10},

		// Color: "1" = red, "2" = black; 0/00 are green, not red.
		{"color red hit", "color", "1", "1", 10},
		{"color red miss on black", "color", "1", "2", -10},
		{"color black hit", "color", "2", "10", 10},
		{"color red loses on zero", "color", "1", "0", -10},
		{"color black loses on double zero", "color", "2", "00", -10},
		{"color red on 19", "color", "1", "19", 10}, // 19 is red despite being odd-positioned

		// Parity: 0/00 are neither even nor odd for betting purposes.
		{"parity even hit", "parity", "even", "4", 10},
		{"parity odd hit", "parity", "odd", "33", 10},
		{"parity even miss", "parity", "even", "7", -10},
		{"parity even loses on zero", "parity", "even", "0", -10},

		// Dozens pay 2:1.
		{"dozen 1 hit", "dozen", "1", "12", 20},
		{"dozen 2 hit", "dozen", "2", "13", 20},
		{"dozen 3 hit", "dozen", "3", "36", 20},
		{"dozen 1 miss", "dozen", "1", "13", -10},
		{"dozen loses on double zero", "dozen", "1", "00", -10},

		// Columns pay 2:1; column = n mod 3 with 0 mapped to 3.
		{"column 1 hit", "column", "1", "34", 20},
		{"column 2 hit", "column", "2", "35", 20},
		{"column 3 hit", "column", "3", "36", 20},
		{"column 3 hit on 3", "column", "3", "3", 20},
		{"column 1 miss", "column", "1", "2", -10},
		{"column loses on zero", "column", "2", "0", -10},

		// Halves pay 1:1.
		{"half low hit", "half", "low", "18", 10},
		{"half high hit", "half", "high", "19", 10},
		{"half low miss", "half", "low", "19", -10},
		{"half high loses on zero", "half", "high", "0", -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.betType, tt.betValue, tt.outcome, amount)
			if err != nil {
				t.Fatalf("Resolve(%s,%s,%s) error: %v", tt.betType, tt.betValue, tt.outcome, err)
			}
			want := decimal.NewFromInt(tt.want)
			if !got.Equal(want) {
				t.Errorf("Resolve(%s,%s,%s) = %s, want %s",
					tt.betType, tt.betValue, tt.outcome, got, want)
			}
		})
	}
}

// TestRouletteRedSetExact pins the 18-member red set: a red color bet must win
// on exactly these numbers and lose on every other slot.
func TestRouletteRedSetExact(t *testing.T) {
	r := NewRoulette()
	amount := decimal.NewFromInt(1)

	red := map[int]bool{
		1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
		14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
		25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
	}

	reds := 0
	for n := 1; n <= 36; n++ {
		got, err := r.Resolve("color", "1", strconv.Itoa(n), amount)
		if err != nil {
			t.Fatalf("outcome %d: %v", n, err)
		}
		if red[n] {
			reds++
			if !got.Equal(amount) {
				t.Errorf("red bet on outcome %d should win, got %s", n, got)
			}
		} else if !got.Equal(amount.Neg()) {
			t.Errorf("red bet on outcome %d should lose, got %s", n, got)
		}
	}
	if reds != 18 {
		t.Errorf("red set has %d members, want 18", reds)
	}
}

// TestRouletteInvalidInput verifies that malformed wagers and outcomes are
// reported as errors (the lifecycle manager books wager-side rejections as
// losses and refuses to settle on an illegal outcome).
func TestRouletteInvalidInput(t *testing.T) {
	r := NewRoulette()
	amount := decimal.NewFromInt(5)

	tests := []struct {
		name     string
		betType  string
		betValue string
		outcome  string
		wantErr  error
	}{
		{"unknown bet type", "street", "1", "5", ErrUnknownBetType},
		{"unknown bet type on green", "street", "1", "0", ErrUnknownBetType},
		{"bad number value", "number", "37", "5", ErrInvalidBetValue},
		{"bad color value", "color", "red", "5", ErrInvalidBetValue},
		{"bad color value on green", "color", "red", "00", ErrInvalidBetValue},
		{"bad dozen value", "dozen", "4", "5", ErrInvalidBetValue},
		{"bad half value", "half", "middle", "5", ErrInvalidBetValue},
		{"outcome off the wheel", "color", "1", "37", ErrInvalidOutcome},
		{"garbage outcome", "parity", "even", "banana", ErrInvalidOutcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.betType, tt.betValue, tt.outcome, amount)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve(%s,%s,%s) err = %v, want %v",
					tt.betType, tt.betValue, tt.outcome, err, tt.wantErr)
			}
		})
	}
}

func TestRouletteValidateOutcome(t *testing.T) {
	r := NewRoulette()

	for _, ok := range []string{"0", "00", "1", "17", "36"} {
		if err := r.ValidateOutcome(ok); err != nil {
			t.Errorf("ValidateOutcome(%q) = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"37", "-1", "000", "red", ""} {
		if err := r.ValidateOutcome(bad); !errors.Is(err, ErrInvalidOutcome) {
			t.Errorf("ValidateOutcome(%q) = %v, want ErrInvalidOutcome", bad, err)
		}
	}
}
