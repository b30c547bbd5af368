package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// BetRepository handles all database operations for Bets, including the
// aggregate queries the ranking aggregator reads.
type BetRepository struct {
	db *sqlx.DB
}

// NewBetRepository creates a new BetRepository.
func NewBetRepository(db *sqlx.DB) *BetRepository {
	return &BetRepository{db: db}
}

// CreateTx inserts a new bet inside an existing transaction.
func (r *BetRepository) CreateTx(ctx context.Context, tx sqlx.ExtContext, b *domain.Bet) error {
	query := `
		INSERT INTO bets
			(id, user_id, game_id, amount, bet_type, bet_value, winloss, status, placed_at)
		VALUES
			(:id, :user_id, :game_id, :amount, :bet_type, :bet_value, :winloss, :status, :placed_at)`
	if _, err := sqlx.NamedExecContext(ctx, tx, query, b); err != nil {
		return fmt.Errorf("bet_repo.CreateTx: %w", err)
	}
	return nil
}

// GetByID fetches a bet by its primary key.
func (r *BetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	var b domain.Bet
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBetNotFound
		}
		return nil, fmt.Errorf("bet_repo.GetByID: %w", err)
	}
	return &b, nil
}

// GetByUserID returns a user's bet history, paginated, newest first.
func (r *BetRepository) GetByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.SelectContext(ctx, &bets,
		`SELECT * FROM bets WHERE user_id = $1 ORDER BY placed_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("bet_repo.GetByUserID: %w", err)
	}
	return bets, nil
}

// GetByGameID returns a game's bet history, paginated, newest first.
func (r *BetRepository) GetByGameID(ctx context.Context, gameID uuid.UUID, limit, offset int) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.SelectContext(ctx, &bets,
		`SELECT * FROM bets WHERE game_id = $1 ORDER BY placed_at DESC LIMIT $2 OFFSET $3`,
		gameID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("bet_repo.GetByGameID: %w", err)
	}
	return bets, nil
}

// SettleTx transitions a PENDING bet to its terminal state inside a
// transaction. The WHERE status = 'PENDING' guard makes settlement
// idempotent under concurrency: only one caller observes rows = 1; every
// other caller gets settled = false and must treat the bet as already
// terminal.
func (r *BetRepository) SettleTx(
	ctx context.Context,
	tx sqlx.ExtContext,
	betID uuid.UUID,
	status domain.BetStatus,
	winloss decimal.Decimal,
	winningValue string,
) (settled bool, err error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE bets
		SET status        = $1,
		    winloss       = $2,
		    winning_value = $3,
		    resolved_at   = now()
		WHERE id = $4
		  AND status = 'PENDING'`,
		string(status), winloss, winningValue, betID)
	if err != nil {
		return false, fmt.Errorf("bet_repo.SettleTx: %w", err)
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregates — read models for the ranking aggregator and liability sweep
// ──────────────────────────────────────────────────────────────────────────────

// TallyByUser returns per-account bet aggregates in a single grouped query.
// When gameID is non-nil only bets on that game are counted. Accounts with
// no matching bets produce no row.
func (r *BetRepository) TallyByUser(ctx context.Context, gameID *uuid.UUID) ([]domain.AccountTally, error) {
	var tallies []domain.AccountTally
	err := r.db.SelectContext(ctx, &tallies, `
		SELECT user_id,
		       COALESCE(SUM(winloss), 0)                  AS winloss,
		       COALESCE(SUM(amount), 0)                   AS staked,
		       COUNT(*) FILTER (WHERE status = 'WON')     AS won,
		       COUNT(*)                                   AS total
		FROM bets
		WHERE $1::uuid IS NULL OR game_id = $1
		GROUP BY user_id`,
		gameID)
	if err != nil {
		return nil, fmt.Errorf("bet_repo.TallyByUser: %w", err)
	}
	return tallies, nil
}

// PendingLiability returns the count and total stake of bets that have been
// PENDING for longer than age. A settled book should keep both near zero;
// the scheduler reports them as outstanding liabilities.
func (r *BetRepository) PendingLiability(ctx context.Context, age time.Duration) (int64, decimal.Decimal, error) {
	row := struct {
		Count int64           `db:"count"`
		Total decimal.Decimal `db:"total"`
	}{}
	err := r.db.GetContext(ctx, &row, `
		SELECT COUNT(*)                 AS count,
		       COALESCE(SUM(amount), 0) AS total
		FROM bets
		WHERE status = 'PENDING'
		  AND placed_at < $1`,
		time.Now().UTC().Add(-age))
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("bet_repo.PendingLiability: %w", err)
	}
	return row.Count, row.Total, nil
}
