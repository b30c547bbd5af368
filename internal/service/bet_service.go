package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/config"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/metrics"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/outcome"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/payout"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Storage interfaces
// ──────────────────────────────────────────────────────────────────────────────

// Tx is the slice of a database transaction the bet lifecycle needs:
// queryable by the stores and committable by the service. Satisfied by
// *sqlx.Tx.
type Tx interface {
	sqlx.ExtContext
	Commit() error
	Rollback() error
}

// TxStarter opens the transaction a placement or settlement runs in.
type TxStarter interface {
	Begin(ctx context.Context) (Tx, error)
}

// sqlxStarter adapts *sqlx.DB to TxStarter.
type sqlxStarter struct{ db *sqlx.DB }

func (s sqlxStarter) Begin(ctx context.Context) (Tx, error) {
	return s.db.BeginTxx(ctx, nil)
}

// BetStore persists bet records. Implemented by repository.BetRepository.
type BetStore interface {
	CreateTx(ctx context.Context, tx sqlx.ExtContext, b *domain.Bet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Bet, error)
	SettleTx(ctx context.Context, tx sqlx.ExtContext, betID uuid.UUID,
		status domain.BetStatus, winloss decimal.Decimal, winningValue string) (bool, error)
}

// GameSource resolves game records. Implemented by repository.GameRepository.
type GameSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
}

// LedgerStore mutates balances and writes the audit trail. Implemented by
// repository.LedgerRepository.
type LedgerStore interface {
	Debit(ctx context.Context, tx sqlx.ExtContext, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Credit(ctx context.Context, tx sqlx.ExtContext, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	LogMovement(ctx context.Context, tx sqlx.ExtContext, m *domain.BalanceMovement) error
}

// ──────────────────────────────────────────────────────────────────────────────
// Interfaces injected into BetService to avoid import cycles
// ──────────────────────────────────────────────────────────────────────────────

// Broadcaster is the minimal interface BetService needs from the WS hub.
type Broadcaster interface {
	BroadcastBetSettled(bet *domain.Bet)
}

// RankingInvalidator drops cached leaderboards after a settlement.
// Implemented by RankingService.
type RankingInvalidator interface {
	InvalidateRankings(ctx context.Context)
}

// ──────────────────────────────────────────────────────────────────────────────
// BetService
// ──────────────────────────────────────────────────────────────────────────────

// BetService orchestrates the bet lifecycle: placement debits the stake and
// records a PENDING bet atomically; resolution settles the bet exactly once
// and credits any winnings in the same transaction.
type BetService struct {
	db        TxStarter
	betRepo   BetStore
	gameRepo  GameSource
	ledger    LedgerStore
	resolvers *payout.Registry
	cfg       *config.Config

	broadcaster Broadcaster        // injected after WS Hub is built
	rankings    RankingInvalidator // injected after RankingService is built
}

// NewBetService creates a BetService backed by a sqlx database handle.
func NewBetService(
	db *sqlx.DB,
	betRepo BetStore,
	gameRepo GameSource,
	ledger LedgerStore,
	resolvers *payout.Registry,
	cfg *config.Config,
) *BetService {
	return &BetService{
		db:        sqlxStarter{db: db},
		betRepo:   betRepo,
		gameRepo:  gameRepo,
		ledger:    ledger,
		resolvers: resolvers,
		cfg:       cfg,
	}
}

// SetBroadcaster injects the WS Hub dependency post-construction.
func (s *BetService) SetBroadcaster(b Broadcaster) { s.broadcaster = b }

// SetRankingInvalidator injects the RankingService dependency post-construction.
func (s *BetService) SetRankingInvalidator(r RankingInvalidator) { s.rankings = r }

// ──────────────────────────────────────────────────────────────────────────────
// PlaceBet
// ──────────────────────────────────────────────────────────────────────────────

// PlaceBet validates the request, atomically debits the user's balance,
// records the PENDING bet, and writes an audit movement — all inside a single
// PostgreSQL transaction. If the debit fails for insufficient funds no bet
// row is created and the balance is untouched.
func (s *BetService) PlaceBet(ctx context.Context, req domain.PlaceBetRequest) (*domain.Bet, error) {
	// ── 1. Input validation ──────────────────────────────────────────────────
	if req.Amount.Sign() <= 0 || req.BetType == "" || req.BetValue == "" {
		return nil, domain.ErrInvalidWager
	}
	minBet := decimal.NewFromFloat(s.cfg.Casino.MinBet)
	if req.Amount.LessThan(minBet) {
		return nil, domain.ErrInvalidWager
	}
	if s.cfg.Casino.MaxBet > 0 {
		maxBet := decimal.NewFromFloat(s.cfg.Casino.MaxBet)
		if req.Amount.GreaterThan(maxBet) {
			return nil, domain.ErrInvalidWager
		}
	}

	// ── 2. Verify the game exists and has a payout resolver ──────────────────
	game, err := s.gameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		return nil, fmt.Errorf("bet_service.PlaceBet: get game: %w", err)
	}
	if _, ok := s.resolvers.For(game.Name); !ok {
		return nil, domain.ErrUnsupportedGame
	}

	// ── 3. Begin transaction ─────────────────────────────────────────────────
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("bet_service.PlaceBet: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// ── 4. Debit the stake (FOR UPDATE inside the ledger) ────────────────────
	balanceAfter, err := s.ledger.Debit(ctx, tx, req.UserID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("bet_service.PlaceBet: debit: %w", err)
	}

	// ── 5. Persist the bet ───────────────────────────────────────────────────
	now := time.Now().UTC()
	bet := &domain.Bet{
		ID:       uuid.New(),
		UserID:   req.UserID,
		GameID:   req.GameID,
		Amount:   req.Amount,
		BetType:  req.BetType,
		BetValue: req.BetValue,
		Winloss:  decimal.Zero,
		Status:   domain.BetStatusPending,
		PlacedAt: now,
	}
	if err = s.betRepo.CreateTx(ctx, tx, bet); err != nil {
		return nil, fmt.Errorf("bet_service.PlaceBet: create bet: %w", err)
	}

	// ── 6. Audit movement ────────────────────────────────────────────────────
	betIDCopy := bet.ID
	movement := &domain.BalanceMovement{
		ID:            uuid.New(),
		UserID:        req.UserID,
		Type:          domain.MovementStake,
		Amount:        req.Amount,
		BalanceBefore: balanceAfter.Add(req.Amount),
		BalanceAfter:  balanceAfter,
		RefID:         &betIDCopy,
		Description:   fmt.Sprintf("Stake on %s: %s=%s", game.Name, req.BetType, req.BetValue),
		CreatedAt:     now,
	}
	if err = s.ledger.LogMovement(ctx, tx, movement); err != nil {
		return nil, fmt.Errorf("bet_service.PlaceBet: log movement: %w", err)
	}

	// ── 7. Commit ────────────────────────────────────────────────────────────
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("bet_service.PlaceBet: commit: %w", err)
	}

	metrics.BetsPlaced.Inc()
	metrics.AmountWagered.Add(req.Amount.InexactFloat64())

	return bet, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveBet
// ──────────────────────────────────────────────────────────────────────────────

// ResolveBet settles a PENDING bet against an outcome. When externalOutcome
// is empty the house outcome source draws one for the bet's game; a supplied
// outcome is validated against the game first, and an illegal one aborts
// resolution with payout.ErrInvalidOutcome instead of costing the player.
//
// Settlement is idempotent: resolving an already-settled bet is a no-op that
// returns the stored record unchanged, even under concurrent resolution —
// the conditional status update in the repository guarantees exactly one
// caller performs the transition and its payout.
//
// A resolver rejection of the wager side (unknown bet type, malformed value)
// books the bet as LOST with winloss = −amount: the stake was taken at
// placement and an unresolvable wager is a forfeited one.
func (s *BetService) ResolveBet(ctx context.Context, betID uuid.UUID, externalOutcome string) (*domain.Bet, error) {
	// ── 1. Load the bet ──────────────────────────────────────────────────────
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("bet_service.ResolveBet: get bet: %w", err)
	}
	if bet.IsSettled() {
		log.Printf("[bet] resolve on settled bet %s (%s): no-op", bet.ID, bet.Status)
		return bet, nil
	}

	// ── 2. Determine the outcome ─────────────────────────────────────────────
	game, err := s.gameRepo.GetByID(ctx, bet.GameID)
	if err != nil {
		return nil, fmt.Errorf("bet_service.ResolveBet: get game: %w", err)
	}
	resolver, ok := s.resolvers.For(game.Name)
	if !ok {
		return nil, domain.ErrUnsupportedGame
	}

	winningValue := externalOutcome
	if winningValue == "" {
		winningValue, err = outcome.ForGame(game.Name)
		if err != nil {
			return nil, fmt.Errorf("bet_service.ResolveBet: draw outcome: %w", err)
		}
	} else if err = resolver.ValidateOutcome(winningValue); err != nil {
		// An operator typo must not forfeit the player's stake.
		return nil, fmt.Errorf("bet_service.ResolveBet: outcome %q for %s: %w", winningValue, game.Name, err)
	}

	// ── 3. Compute the result ────────────────────────────────────────────────
	net, resolveErr := resolver.Resolve(bet.BetType, bet.BetValue, winningValue, bet.Amount)
	if resolveErr != nil {
		log.Printf("[bet] resolver rejected bet %s (%s %s=%s vs %q): %v — booking as loss",
			bet.ID, game.Name, bet.BetType, bet.BetValue, winningValue, resolveErr)
	}
	status, winloss := settleResult(bet.Amount, net, resolveErr)

	// ── 4. Begin transaction ─────────────────────────────────────────────────
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("bet_service.ResolveBet: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// ── 5. Conditional transition PENDING → terminal ─────────────────────────
	settled, err := s.betRepo.SettleTx(ctx, tx, bet.ID, status, winloss, winningValue)
	if err != nil {
		return nil, fmt.Errorf("bet_service.ResolveBet: settle: %w", err)
	}
	if !settled {
		// Another caller won the race; their settlement stands.
		_ = tx.Rollback()
		current, loadErr := s.betRepo.GetByID(ctx, bet.ID)
		if loadErr != nil {
			return nil, fmt.Errorf("bet_service.ResolveBet: reload after race: %w", loadErr)
		}
		return current, nil
	}

	// ── 6. Credit winnings (stake + net win returns to the balance) ──────────
	if status == domain.BetStatusWon {
		payoutAmount := bet.Amount.Add(winloss)
		balanceAfter, creditErr := s.ledger.Credit(ctx, tx, bet.UserID, payoutAmount)
		if creditErr != nil {
			err = creditErr
			return nil, fmt.Errorf("bet_service.ResolveBet: credit: %w", err)
		}

		betIDCopy := bet.ID
		movement := &domain.BalanceMovement{
			ID:            uuid.New(),
			UserID:        bet.UserID,
			Type:          domain.MovementPayout,
			Amount:        payoutAmount,
			BalanceBefore: balanceAfter.Sub(payoutAmount),
			BalanceAfter:  balanceAfter,
			RefID:         &betIDCopy,
			Description:   fmt.Sprintf("Payout on %s: outcome %s", game.Name, winningValue),
			CreatedAt:     time.Now().UTC(),
		}
		if err = s.ledger.LogMovement(ctx, tx, movement); err != nil {
			return nil, fmt.Errorf("bet_service.ResolveBet: log movement: %w", err)
		}
	}

	// ── 7. Commit ────────────────────────────────────────────────────────────
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("bet_service.ResolveBet: commit: %w", err)
	}

	metrics.BetsSettled.WithLabelValues(string(status)).Inc()
	if status == domain.BetStatusWon {
		metrics.AmountPaidOut.Add(bet.Amount.Add(winloss).InexactFloat64())
	}

	// ── 8. Update the in-memory bet and notify async ─────────────────────────
	now := time.Now().UTC()
	bet.Status = status
	bet.Winloss = winloss
	bet.WinningValue = &winningValue
	bet.ResolvedAt = &now

	go s.postSettleAsync(bet)

	return bet, nil
}

// settleResult maps a resolver's output to the terminal state. A rejected or
// non-positive result is a loss of exactly the stake.
func settleResult(amount, net decimal.Decimal, resolveErr error) (domain.BetStatus, decimal.Decimal) {
	if resolveErr != nil || net.Sign() <= 0 {
		return domain.BetStatusLost, amount.Neg()
	}
	return domain.BetStatusWon, net
}

// postSettleAsync pushes the settlement to WS clients and drops stale
// leaderboard caches. Runs in a goroutine; failures only affect freshness.
func (s *BetService) postSettleAsync(bet *domain.Bet) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.broadcaster != nil {
		s.broadcaster.BroadcastBetSettled(bet)
	}
	if s.rankings != nil {
		s.rankings.InvalidateRankings(ctx)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Query helpers
// ──────────────────────────────────────────────────────────────────────────────

// GetMyBets returns paginated bets for a user.
func (s *BetService) GetMyBets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Bet, error) {
	bets, err := s.betRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("bet_service.GetMyBets: %w", err)
	}
	return bets, nil
}

// GetBetByID returns a single bet only if it belongs to userID.
func (s *BetService) GetBetByID(ctx context.Context, betID uuid.UUID, userID uuid.UUID) (*domain.Bet, error) {
	bet, err := s.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("bet_service.GetBetByID: %w", err)
	}
	if bet.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return bet, nil
}
