package middleware

import (
	"testing"
	"time"
)

func TestVisitorSpendExhaustsBurst(t *testing.T) {
	v := &visitor{budget: 3, lastSeen: time.Now()}

	for i := 0; i < 3; i++ {
		if !v.spend(0, 3) {
			t.Fatalf("request %d denied inside the burst", i+1)
		}
	}
	if v.spend(0, 3) {
		t.Error("request allowed after the budget ran out")
	}
}

func TestVisitorSpendRefillsOverTime(t *testing.T) {
	v := &visitor{budget: 0, lastSeen: time.Now().Add(-2 * time.Second)}

	// Two seconds at 5 rps refills 10 units, capped at the burst of 5.
	if !v.spend(5, 5) {
		t.Fatal("request denied after the budget refilled")
	}
	if v.budget < 3.9 || v.budget > 4 {
		t.Errorf("budget after refill and spend = %f, want ~4", v.budget)
	}
}

func TestClassLimiterKeysByIP(t *testing.T) {
	cl := &classLimiter{
		class:    LimitWager,
		rps:      0,
		burst:    1,
		visitors: make(map[string]*visitor),
	}

	if !cl.visitor("203.0.113.7").spend(cl.rps, cl.burst) {
		t.Fatal("first request from first IP denied")
	}
	if cl.visitor("203.0.113.7").spend(cl.rps, cl.burst) {
		t.Error("second request from the same IP allowed past a burst of 1")
	}
	// A different client has its own untouched budget.
	if !cl.visitor("203.0.113.8").spend(cl.rps, cl.burst) {
		t.Error("request from a fresh IP denied")
	}
}

func TestClassLimiterMinimumBurst(t *testing.T) {
	cl := newClassLimiter(LimitAuth, 2)
	if cl.burst != 10 {
		t.Errorf("burst = %f, want the floor of 10 for low rates", cl.burst)
	}
}
