package outcome

import (
	"strconv"
	"testing"
)

func TestRouletteSlotInRange(t *testing.T) {
	valid := map[string]bool{"0": true, "00": true}
	for n := 1; n <= 36; n++ {
		valid[strconv.Itoa(n)] = true
	}

	for i := 0; i < 500; i++ {
		slot, err := RouletteSlot()
		if err != nil {
			t.Fatalf("RouletteSlot: %v", err)
		}
		if !valid[slot] {
			t.Fatalf("slot %q is not on the wheel", slot)
		}
	}
}

func TestDiceSumInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		s, err := DiceSum()
		if err != nil {
			t.Fatalf("DiceSum: %v", err)
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			t.Fatalf("DiceSum returned non-numeric %q", s)
		}
		if n < 2 || n > 12 {
			t.Fatalf("dice sum %d out of range", n)
		}
	}
}

func TestForGameUnknown(t *testing.T) {
	if _, err := ForGame("poker"); err == nil {
		t.Fatal("expected error for unknown game")
	}
}
