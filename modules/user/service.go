package user

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/taskboard/pkg/logger"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

type Service struct {
	store      Storage
	log        *slog.Logger
	bcryptCost int
}

type ServiceOption func(*Service)

// WithBcryptCost sets the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func NewService(store Storage, log *slog.Logger, opts ...ServiceOption) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		store:      store,
		log:        log.With(logger.Component("user")),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a user from validated input. The plain password never
// leaves this method.
func (s *Service) Create(ctx context.Context, data validator.Input) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(data.String("password")), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return User{}, validator.ValidationErrors{
			"password": {"The password must not be longer than 72 bytes."},
		}
	}
	if err != nil {
		return User{}, errors.Join(ErrHashPassword, err)
	}

	u := User{
		Name:         data.String("name"),
		Email:        data.String("email"),
		PasswordHash: string(hash),
		Role:         data.String("role"),
	}
	if err := s.store.Create(ctx, &u); err != nil {
		return User{}, err
	}
	s.log.InfoContext(ctx, "user created", logger.UserID(u.ID), logger.Role(u.Role))
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(u User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
