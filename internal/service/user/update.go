package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ren-lyn/midterm-lab3/internal/domain"
)

// Update replaces the four descriptive fields of an existing record.
// Concurrent updates are not reconciled: the last write wins.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input RecordInput) (*domain.User, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name, email, age, occupation := input.Normalize()

	next := existing.Clone()
	next.Name = name
	next.Email = email
	next.Age = age
	next.Occupation = occupation
	next.UpdatedAt = s.timestamp()

	updated, err := s.users.Update(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", duplicateEmail(err, email))
	}

	s.log.InfoContext(ctx, "user updated",
		slog.String("user_id", updated.ID.String()),
	)

	return updated, nil
}
