package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EstebanIM/wololo/internal/domain"
)

// SuperadminRepository defines persistence access for superadmins.
type SuperadminRepository interface {
	Create(ctx context.Context, superadmin *domain.Superadmin) error
	GetByEmail(ctx context.Context, email string) (*domain.Superadmin, error)
	List(ctx context.Context) ([]*domain.Superadmin, error)
}

type superadminRepository struct {
	pool *pgxpool.Pool
}

// NewSuperadminRepository returns a Postgres-backed implementation.
func NewSuperadminRepository(pool *pgxpool.Pool) SuperadminRepository {
	return &superadminRepository{pool: pool}
}

func (r *superadminRepository) Create(ctx context.Context, superadmin *domain.Superadmin) error {
	const query = `
        INSERT INTO superadmins (email, role)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		superadmin.Email,
		superadmin.Role,
	).Scan(&superadmin.ID, &superadmin.CreatedAt)
}

func (r *superadminRepository) GetByEmail(ctx context.Context, email string) (*domain.Superadmin, error) {
	const query = `
        SELECT id, email, role, created_at
        FROM superadmins WHERE email=$1`

	var superadmin domain.Superadmin
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&superadmin.ID,
		&superadmin.Email,
		&superadmin.Role,
		&superadmin.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &superadmin, nil
}

func (r *superadminRepository) List(ctx context.Context) ([]*domain.Superadmin, error) {
	const query = `
        SELECT id, email, role, created_at
        FROM superadmins ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var superadmins []*domain.Superadmin
	for rows.Next() {
		var superadmin domain.Superadmin
		if err := rows.Scan(
			&superadmin.ID,
			&superadmin.Email,
			&superadmin.Role,
			&superadmin.CreatedAt,
		); err != nil {
			return nil, err
		}
		superadmins = append(superadmins, &superadmin)
	}
	return superadmins, rows.Err()
}
