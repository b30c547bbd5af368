package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Data source interfaces
// ──────────────────────────────────────────────────────────────────────────────

// AccountSource supplies the accounts a leaderboard ranks, in creation order.
// Implemented by repository.UserRepository.
type AccountSource interface {
	ListAccounts(ctx context.Context) ([]domain.AccountRef, error)
}

// BetTallySource supplies per-account bet aggregates, optionally filtered to
// one game. Implemented by repository.BetRepository.
type BetTallySource interface {
	TallyByUser(ctx context.Context, gameID *uuid.UUID) ([]domain.AccountTally, error)
}

// RankingCache caches computed leaderboards. Implemented by
// cache.RankingCache; optional.
type RankingCache interface {
	Get(ctx context.Context, rt domain.RankingType, gameName string) ([]domain.RankingEntry, bool)
	Set(ctx context.Context, rt domain.RankingType, gameName string, entries []domain.RankingEntry)
	InvalidateAll(ctx context.Context)
}

// ──────────────────────────────────────────────────────────────────────────────
// RankingService
// ──────────────────────────────────────────────────────────────────────────────

// RankingService computes leaderboards on demand from bet history. Nothing
// is persisted: the same bet history always produces the same board. Ties
// keep account creation order, so equal scores rank older accounts first and
// repeated queries never reshuffle.
type RankingService struct {
	accounts AccountSource
	tallies  BetTallySource
	cache    RankingCache // nil when Redis is not configured
}

// NewRankingService creates a RankingService without a cache.
func NewRankingService(accounts AccountSource, tallies BetTallySource) *RankingService {
	return &RankingService{accounts: accounts, tallies: tallies}
}

// SetCache injects the optional Redis cache post-construction.
func (s *RankingService) SetCache(c RankingCache) { s.cache = c }

// RankByType computes one leaderboard. game must be non-nil for the
// per-game ranking types and is ignored for the global ones; a per-game type
// without a game is an ErrGameRequired, never a silent fallback to global.
//
// Accounts with no bets in scope are left off the board entirely.
func (s *RankingService) RankByType(ctx context.Context, rt domain.RankingType, game *domain.Game) ([]domain.RankingEntry, error) {
	if !rt.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRankingType, rt)
	}

	var gameID *uuid.UUID
	var gameName string
	if rt.RequiresGame() {
		if game == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrGameRequired, rt)
		}
		idCopy := game.ID
		gameID = &idCopy
		gameName = game.Name
	}

	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx, rt, gameName); ok {
			return entries, nil
		}
	}

	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("ranking_service.RankByType: accounts: %w", err)
	}
	tallies, err := s.tallies.TallyByUser(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("ranking_service.RankByType: tallies: %w", err)
	}

	byUser := make(map[uuid.UUID]domain.AccountTally, len(tallies))
	for _, t := range tallies {
		byUser[t.UserID] = t
	}

	// Accounts are iterated in creation order; SliceStable below preserves
	// that order among equal scores.
	entries := make([]domain.RankingEntry, 0, len(tallies))
	for _, acct := range accounts {
		tally, ok := byUser[acct.ID]
		if !ok || tally.Total == 0 {
			continue
		}
		entries = append(entries, domain.RankingEntry{
			UserID:   acct.ID,
			Username: acct.Username,
			GameID:   gameID,
			Type:     rt,
			Score:    scoreFor(rt, tally),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score.GreaterThan(entries[j].Score)
	})
	for i := range entries {
		entries[i].Position = i + 1
	}

	if s.cache != nil {
		s.cache.Set(ctx, rt, gameName, entries)
	}
	return entries, nil
}

// scoreFor computes the ranking metric for one account.
func scoreFor(rt domain.RankingType, t domain.AccountTally) decimal.Decimal {
	switch rt {
	case domain.RankOverallProfit:
		return t.Winloss
	case domain.RankTotalBetsAmount:
		return t.Staked
	case domain.RankByGameWins:
		return decimal.NewFromInt(t.Won)
	case domain.RankWinRate, domain.RankByGameWinRate:
		if t.Total == 0 {
			return decimal.Zero
		}
		return decimal.NewFromInt(t.Won).
			Div(decimal.NewFromInt(t.Total)).
			Mul(decimal.NewFromInt(100))
	}
	return decimal.Zero
}

// InvalidateRankings drops all cached leaderboards. Called by BetService
// after each settlement; a no-op without a cache.
func (s *RankingService) InvalidateRankings(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}
}
