package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/taskboard/pkg/pg"
)

// Storage persists users. Create returns ErrEmailTaken for a duplicate
// email, compared case-insensitively.
type Storage interface {
	Create(ctx context.Context, u *User) error
	List(ctx context.Context) ([]User, error)
}

type MemoryStorage struct {
	mu    sync.RWMutex
	seq   int64
	users []User
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrEmailTaken
		}
	}
	s.seq++
	u.ID = s.seq
	u.CreatedAt = time.Now().UTC()
	s.users = append(s.users, *u)
	return nil
}

func (s *MemoryStorage) List(context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out, nil
}

type PGStorage struct {
	pool *pgxpool.Pool
}

func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

// Create stores emails lower-cased so the unique constraint is
// case-insensitive.
func (s *PGStorage) Create(ctx context.Context, u *User) error {
	u.Email = strings.ToLower(u.Email)
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if pg.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PGStorage) List(ctx context.Context) ([]User, error) {
	rows, _ := s.pool.Query(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users ORDER BY id")
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[User])
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
