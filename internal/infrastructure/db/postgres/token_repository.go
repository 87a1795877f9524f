package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classifieds/ads-api/internal/core/domain"
	"github.com/classifieds/ads-api/internal/core/ports"
)

type TokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) ports.TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a token. A duplicate value yields domain.ErrConflict.
func (r *TokenRepository) Create(ctx context.Context, token *domain.Token) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO tokens (token, user_id) VALUES ($1, $2) RETURNING id, created_at`,
		token.Value, token.UserID,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("create token: %w", translateError(err, domain.ErrNotFound))
	}
	return nil
}

// FindPrincipal joins the token with its owner.
func (r *TokenRepository) FindPrincipal(ctx context.Context, value uuid.UUID) (*domain.Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Principal
	err := r.db.GetContext(ctx, &p,
		`SELECT t.id AS token_id, t.token, t.created_at AS issued_at,
		        u.id AS user_id, u.name, u.role
		 FROM tokens t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.token = $1`,
		value,
	)
	if err != nil {
		return nil, translateError(err, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *TokenRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return expectAffected(res, domain.ErrNotFound)
}
