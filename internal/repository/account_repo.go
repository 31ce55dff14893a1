package repository

import (
	"context"
	"errors"

	"taskhub/internal/db"
	"taskhub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db db.DB
}

func NewAccountRepository(db db.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, created_at, updated_at FROM accounts WHERE id = $1`,
		id,
	)
	return scanAccount(row)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, created_at, updated_at FROM accounts WHERE email = $1`,
		email,
	)
	return scanAccount(row)
}

// Provision returns the account for email, creating it on first sight.
// Concurrent first logins for the same email are resolved by the unique
// constraint: the loser of the insert race re-reads the winner's row.
func (r *AccountRepository) Provision(ctx context.Context, email string) (*domain.Account, error) {
	acc, err := r.GetByEmail(ctx, email)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO accounts (id, email)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id, email, created_at, updated_at`,
		uuid.NewString(), email,
	)
	acc, err = scanAccount(row)
	if errors.Is(err, domain.ErrNotFound) {
		// lost the race: the row exists now
		return r.GetByEmail(ctx, email)
	}
	return acc, err
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Email, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
