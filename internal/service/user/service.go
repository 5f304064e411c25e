package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ren-lyn/midterm-lab3/internal/domain"
)

// userRepo is the record store contract. Implementations enforce email
// uniqueness atomically and report violations as domain.ErrAlreadyExists.
type userRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service implements CRUD operations over user records.
type Service struct {
	log   *slog.Logger
	users userRepo
	now   func() time.Time
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
		now:   time.Now,
	}
}

// timestamp returns the current time at the precision every store keeps.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// duplicateEmail converts a bare uniqueness violation into a
// DuplicateKeyError naming the email field.
func duplicateEmail(err error, email string) error {
	var dup *domain.DuplicateKeyError
	if errors.As(err, &dup) {
		return err
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		return domain.NewDuplicateKeyError("email", email)
	}
	return err
}
