package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GameRepository handles all database operations for Games.
type GameRepository struct {
	db *sqlx.DB
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// GetByID fetches a game by primary key.
func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var g domain.Game
	err := r.db.GetContext(ctx, &g, `SELECT * FROM games WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("game_repo.GetByID: %w", err)
	}
	return &g, nil
}

// GetByName fetches a game by its unique name.
func (r *GameRepository) GetByName(ctx context.Context, name string) (*domain.Game, error) {
	var g domain.Game
	err := r.db.GetContext(ctx, &g, `SELECT * FROM games WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("game_repo.GetByName: %w", err)
	}
	return &g, nil
}

// List returns every game, in name order.
func (r *GameRepository) List(ctx context.Context) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.SelectContext(ctx, &games, `SELECT * FROM games ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("game_repo.List: %w", err)
	}
	return games, nil
}
