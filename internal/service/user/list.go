package user

import (
	"context"
	"fmt"

	"github.com/ren-lyn/midterm-lab3/internal/domain"
)

// List returns every record, oldest first. The result is never nil.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
