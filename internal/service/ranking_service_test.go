package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeAccounts struct {
	refs []domain.AccountRef
}

func (f *fakeAccounts) ListAccounts(_ context.Context) ([]domain.AccountRef, error) {
	return f.refs, nil
}

type fakeTallies struct {
	tallies    []domain.AccountTally
	lastGameID *uuid.UUID
}

func (f *fakeTallies) TallyByUser(_ context.Context, gameID *uuid.UUID) ([]domain.AccountTally, error) {
	f.lastGameID = gameID
	return f.tallies, nil
}

// board builds a RankingService over three accounts created in order
// alice, bob, carol.
func board() (*RankingService, *fakeTallies, [3]uuid.UUID) {
	ids := [3]uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	accounts := &fakeAccounts{refs: []domain.AccountRef{
		{ID: ids[0], Username: "alice", CreatedAt: base},
		{ID: ids[1], Username: "bob", CreatedAt: base.Add(time.Hour)},
		{ID: ids[2], Username: "carol", CreatedAt: base.Add(2 * time.Hour)},
	}}
	tallies := &fakeTallies{}
	return NewRankingService(accounts, tallies), tallies, ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRankByProfitOrdersAndPositions(t *testing.T) {
	svc, tallies, ids := board()
	tallies.tallies = []domain.AccountTally{
		{UserID: ids[0], Winloss: decimal.NewFromInt(50), Total: 5},
		{UserID: ids[1], Winloss: decimal.NewFromInt(-20), Total: 3},
		{UserID: ids[2], Winloss: decimal.NewFromInt(120), Total: 8},
	}

	entries, err := svc.RankByType(context.Background(), domain.RankOverallProfit, nil)
	if err != nil {
		t.Fatalf("RankByType: %v", err)
	}

	wantOrder := []string{"carol", "alice", "bob"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantOrder))
	}
	for i, want := range wantOrder {
		if entries[i].Username != want {
			t.Errorf("position %d: got %s, want %s", i+1, entries[i].Username, want)
		}
		if entries[i].Position != i+1 {
			t.Errorf("entry %s: position = %d, want %d", entries[i].Username, entries[i].Position, i+1)
		}
	}
}

func TestRankTieBreakKeepsCreationOrder(t *testing.T) {
	svc, tallies, ids := board()
	// bob and carol tie; alice trails. bob was created before carol so he
	// must stay ahead, and repeated queries must not reshuffle.
	tallies.tallies = []domain.AccountTally{
		{UserID: ids[0], Winloss: decimal.NewFromInt(1), Total: 1},
		{UserID: ids[1], Winloss: decimal.NewFromInt(10), Total: 1},
		{UserID: ids[2], Winloss: decimal.NewFromInt(10), Total: 1},
	}

	for run := 0; run < 5; run++ {
		entries, err := svc.RankByType(context.Background(), domain.RankOverallProfit, nil)
		if err != nil {
			t.Fatalf("RankByType: %v", err)
		}
		got := []string{entries[0].Username, entries[1].Username, entries[2].Username}
		want := []string{"bob", "carol", "alice"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("run %d: order = %v, want %v", run, got, want)
			}
		}
	}
}

func TestRankWinRatePercentage(t *testing.T) {
	svc, tallies, ids := board()
	tallies.tallies = []domain.AccountTally{
		{UserID: ids[0], Won: 3, Total: 4}, // 75%
		{UserID: ids[1], Won: 1, Total: 2}, // 50%
	}

	entries, err := svc.RankByType(context.Background(), domain.RankWinRate, nil)
	if err != nil {
		t.Fatalf("RankByType: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !entries[0].Score.Equal(decimal.NewFromInt(75)) {
		t.Errorf("top score = %s, want 75", entries[0].Score)
	}
	if entries[0].Username != "alice" {
		t.Errorf("top = %s, want alice", entries[0].Username)
	}
}

func TestRankSkipsAccountsWithoutBets(t *testing.T) {
	svc, tallies, ids := board()
	tallies.tallies = []domain.AccountTally{
		{UserID: ids[1], Staked: decimal.NewFromInt(300), Total: 3},
	}

	entries, err := svc.RankByType(context.Background(), domain.RankTotalBetsAmount, nil)
	if err != nil {
		t.Fatalf("RankByType: %v", err)
	}
	if len(entries) != 1 || entries[0].Username != "bob" {
		t.Fatalf("expected only bob on the board, got %+v", entries)
	}
}

func TestRankPerGameRequiresGame(t *testing.T) {
	svc, _, _ := board()

	for _, rt := range []domain.RankingType{domain.RankByGameWins, domain.RankByGameWinRate} {
		_, err := svc.RankByType(context.Background(), rt, nil)
		if !errors.Is(err, domain.ErrGameRequired) {
			t.Errorf("%s without game: err = %v, want ErrGameRequired", rt, err)
		}
	}
}

func TestRankPerGameFiltersByGame(t *testing.T) {
	svc, tallies, ids := board()
	tallies.tallies = []domain.AccountTally{
		{UserID: ids[0], Won: 2, Total: 2},
	}
	game := &domain.Game{ID: uuid.New(), Name: domain.GameDice}

	entries, err := svc.RankByType(context.Background(), domain.RankByGameWins, game)
	if err != nil {
		t.Fatalf("RankByType: %v", err)
	}
	if tallies.lastGameID == nil || *tallies.lastGameID != game.ID {
		t.Fatalf("tally source was not filtered to game %s", game.ID)
	}
	if len(entries) != 1 || !entries[0].Score.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unexpected board: %+v", entries)
	}
	if entries[0].GameID == nil || *entries[0].GameID != game.ID {
		t.Errorf("entry should carry the game id")
	}
}

func TestRankUnknownTypeRejected(t *testing.T) {
	svc, _, _ := board()

	_, err := svc.RankByType(context.Background(), domain.RankingType("MOST_STYLISH"), nil)
	if !errors.Is(err, domain.ErrUnknownRankingType) {
		t.Errorf("err = %v, want ErrUnknownRankingType", err)
	}
}
