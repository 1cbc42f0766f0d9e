package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EstebanIM/wololo/internal/domain"
)

// AdminRepository defines persistence access for invited admins.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	ListByStatus(ctx context.Context, status domain.AdminStatus) ([]*domain.Admin, error)
	UpdateCompletion(ctx context.Context, id string, completion domain.AdminCompletion) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (email, brand_name, role, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		admin.Email,
		admin.BrandName,
		admin.Role,
		admin.Status,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	const query = `
        SELECT id, email, brand_name, role, status, national_id, check_digit,
               first_name, first_surname, password_hash, created_at, updated_at
        FROM admins WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `
        SELECT id, email, brand_name, role, status, national_id, check_digit,
               first_name, first_surname, password_hash, created_at, updated_at
        FROM admins WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *adminRepository) ListByStatus(ctx context.Context, status domain.AdminStatus) ([]*domain.Admin, error) {
	const query = `
        SELECT id, email, brand_name, role, status, national_id, check_digit,
               first_name, first_surname, password_hash, created_at, updated_at
        FROM admins WHERE status=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []*domain.Admin
	for rows.Next() {
		admin, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func (r *adminRepository) UpdateCompletion(ctx context.Context, id string, completion domain.AdminCompletion) error {
	const query = `
        UPDATE admins
        SET national_id=$1, check_digit=$2, first_name=$3, first_surname=$4,
            brand_name=$5, password_hash=$6, status=$7, updated_at=$8
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		completion.NationalID,
		completion.CheckDigit,
		completion.FirstName,
		completion.FirstSurname,
		completion.BrandName,
		completion.PasswordHash,
		domain.AdminStatusComplete,
		time.Now(),
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adminRepository) scanOne(row pgx.Row) (*domain.Admin, error) {
	var admin domain.Admin
	if err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.BrandName,
		&admin.Role,
		&admin.Status,
		&admin.NationalID,
		&admin.CheckDigit,
		&admin.FirstName,
		&admin.FirstSurname,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}
