package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// LedgerRepository is the account ledger: the only component allowed to
// mutate user balances. Every mutation runs inside a caller-supplied
// transaction so that a debit and the bet it funds commit or roll back as
// one unit.
type LedgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Debit subtracts amount from a user's balance inside a transaction and
// returns the new balance.
//
// The row is locked with FOR UPDATE before the balance check, so the
// check-then-deduct pair is one indivisible step: two concurrent debits
// against the same account serialise on the row lock and the second sees the
// first's deduction. Returns ErrInsufficientFunds (balance untouched) when
// amount exceeds the current balance.
func (r *LedgerRepository) Debit(ctx context.Context, tx sqlx.ExtContext, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, tx, &balance,
		`SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("ledger_repo.Debit lock: %w", err)
	}

	if balance.LessThan(amount) {
		return decimal.Zero, domain.ErrInsufficientFunds
	}

	newBalance := balance.Sub(amount)
	_, err = tx.ExecContext(ctx,
		`UPDATE users SET balance = balance - $1, updated_at = now() WHERE id = $2`,
		amount, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger_repo.Debit update: %w", err)
	}
	return newBalance, nil
}

// Credit adds amount to a user's balance inside a transaction and returns
// the new balance. The row lock keeps the returned balance consistent with
// concurrent debits.
func (r *LedgerRepository) Credit(ctx context.Context, tx sqlx.ExtContext, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, tx, &balance,
		`SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("ledger_repo.Credit lock: %w", err)
	}

	newBalance := balance.Add(amount)
	_, err = tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $1, updated_at = now() WHERE id = $2`,
		amount, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger_repo.Credit update: %w", err)
	}
	return newBalance, nil
}

// GetBalance returns a user's current balance.
func (r *LedgerRepository) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("ledger_repo.GetBalance: %w", err)
	}
	return balance, nil
}

// LogMovement inserts an audit record into balance_movements inside a
// transaction.
func (r *LedgerRepository) LogMovement(ctx context.Context, tx sqlx.ExtContext, m *domain.BalanceMovement) error {
	query := `
		INSERT INTO balance_movements
			(id, user_id, type, amount, balance_before, balance_after, ref_id, description, created_at)
		VALUES
			(:id, :user_id, :type, :amount, :balance_before, :balance_after, :ref_id, :description, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, tx, query, m); err != nil {
		return fmt.Errorf("ledger_repo.LogMovement: %w", err)
	}
	return nil
}

// GetMovements returns paginated movement history for a user.
func (r *LedgerRepository) GetMovements(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.BalanceMovement, error) {
	var movements []*domain.BalanceMovement
	err := r.db.SelectContext(ctx, &movements, `
		SELECT * FROM balance_movements
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ledger_repo.GetMovements: %w", err)
	}
	return movements, nil
}
