package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/EstebanIM/wololo/internal/domain"
)

// In-memory repository implementations backing tests and local runs
// without a database. They return pgx.ErrNoRows for missing rows so
// callers see the same sentinel as the Postgres implementations.

// MemoryAdminRepository is a map-backed AdminRepository.
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	admins map[string]domain.Admin
}

// NewMemoryAdminRepository builds an empty store.
func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{admins: make(map[string]domain.Admin)}
}

func (r *MemoryAdminRepository) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin.ID = uuid.NewString()
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	r.admins[admin.ID] = *admin
	return nil
}

func (r *MemoryAdminRepository) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &admin, nil
}

func (r *MemoryAdminRepository) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, admin := range r.admins {
		if admin.Email == email {
			a := admin
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemoryAdminRepository) ListByStatus(_ context.Context, status domain.AdminStatus) ([]*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var admins []*domain.Admin
	for _, admin := range r.admins {
		if admin.Status == status {
			a := admin
			admins = append(admins, &a)
		}
	}
	return admins, nil
}

func (r *MemoryAdminRepository) UpdateCompletion(_ context.Context, id string, completion domain.AdminCompletion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return pgx.ErrNoRows
	}
	admin.NationalID = completion.NationalID
	admin.CheckDigit = completion.CheckDigit
	admin.FirstName = completion.FirstName
	admin.FirstSurname = completion.FirstSurname
	admin.BrandName = completion.BrandName
	admin.PasswordHash = completion.PasswordHash
	admin.Status = domain.AdminStatusComplete
	admin.UpdatedAt = time.Now()
	r.admins[id] = admin
	return nil
}

// Len reports the number of stored admins.
func (r *MemoryAdminRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.admins)
}

// MemorySuperadminRepository is a map-backed SuperadminRepository.
type MemorySuperadminRepository struct {
	mu          sync.RWMutex
	superadmins map[string]domain.Superadmin
}

// NewMemorySuperadminRepository builds an empty store.
func NewMemorySuperadminRepository() *MemorySuperadminRepository {
	return &MemorySuperadminRepository{superadmins: make(map[string]domain.Superadmin)}
}

func (r *MemorySuperadminRepository) Create(_ context.Context, superadmin *domain.Superadmin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	superadmin.ID = uuid.NewString()
	superadmin.CreatedAt = time.Now()
	r.superadmins[superadmin.ID] = *superadmin
	return nil
}

func (r *MemorySuperadminRepository) GetByEmail(_ context.Context, email string) (*domain.Superadmin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, superadmin := range r.superadmins {
		if superadmin.Email == email {
			s := superadmin
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemorySuperadminRepository) List(_ context.Context) ([]*domain.Superadmin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	superadmins := make([]*domain.Superadmin, 0, len(r.superadmins))
	for _, superadmin := range r.superadmins {
		s := superadmin
		superadmins = append(superadmins, &s)
	}
	return superadmins, nil
}

// Len reports the number of stored superadmins.
func (r *MemorySuperadminRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.superadmins)
}

// MemoryAccountRepository is a map-backed AccountRepository.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewMemoryAccountRepository builds an empty store.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *MemoryAccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.accounts[account.ID] = *account
	return nil
}

func (r *MemoryAccountRepository) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	account.UpdatedAt = time.Now()
	r.accounts[account.ID] = *account
	return nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (r *MemoryAccountRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.Email == email {
			a := account
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemoryAccountRepository) GetByVerifyToken(_ context.Context, token string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.VerifyToken != nil && *account.VerifyToken == token {
			a := account
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// MemoryUserRepository is a map-backed UserRepository.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository builds an empty store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Len reports the number of stored users.
func (r *MemoryUserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
