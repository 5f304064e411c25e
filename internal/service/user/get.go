package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ren-lyn/midterm-lab3/internal/domain"
)

// Get returns a single record by identifier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
