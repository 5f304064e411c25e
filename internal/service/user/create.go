package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ren-lyn/midterm-lab3/internal/domain"
)

// Create validates the input and persists a new record.
func (s *Service) Create(ctx context.Context, input RecordInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name, email, age, occupation := input.Normalize()
	now := s.timestamp()

	created, err := s.users.Create(ctx, &domain.User{
		ID:         uuid.New(),
		Name:       name,
		Email:      email,
		Age:        age,
		Occupation: occupation,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", duplicateEmail(err, email))
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", created.ID.String()),
	)

	return created, nil
}
