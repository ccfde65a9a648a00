package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
	"github.com/lib/pq"
)

type PostgresPractitionerRepository struct {
	db *sql.DB
}

func NewPostgresPractitionerRepository(db *sql.DB) *PostgresPractitionerRepository {
	return &PostgresPractitionerRepository{
		db: db,
	}
}

func (r *PostgresPractitionerRepository) Create(ctx context.Context, p *domain.Practitioner) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO practitioners (id, email, password_hash, full_name, profession, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		p.ID,
		p.Email,
		p.PasswordHash,
		p.FullName,
		p.Profession,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" {
				return domain.ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("repository: create practitioner failed: %w", err)
	}

	return nil
}

func (r *PostgresPractitionerRepository) GetByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT id, email, password_hash, full_name, profession, created_at, updated_at
		FROM practitioners
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresPractitionerRepository) GetByEmail(ctx context.Context, email string) (*domain.Practitioner, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		SELECT id, email, password_hash, full_name, profession, created_at, updated_at
		FROM practitioners
		WHERE email = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresPractitionerRepository) scanOne(row *sql.Row) (*domain.Practitioner, error) {
	var p domain.Practitioner

	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.FullName,
		&p.Profession,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPractitionerNotFound
		}
		return nil, fmt.Errorf("repository: get practitioner failed: %w", err)
	}

	return &p, nil
}
