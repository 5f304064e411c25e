// Package user implements the user record repository on PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/ren-lyn/midterm-lab3/internal/adapter/postgres"
	"github.com/ren-lyn/midterm-lab3/internal/domain"
)

const (
	table         = "users"
	entity        = "user"
	emailUniqueIx = "users_email_key"
)

var columns = []string{"id", "name", "email", "age", "occupation", "created_at", "updated_at"}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// row mirrors a users table row for pgxscan.
type row struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Age        int       `db:"age"`
	Occupation string    `db:"occupation"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.User {
	return &domain.User{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Age:        r.Age,
		Occupation: r.Occupation,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

// Repo provides user record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns all records ordered by creation time, then id.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}

	users := make([]domain.User, 0, len(rows))
	for _, rw := range rows {
		users = append(users, *rw.toDomain())
	}
	return users, nil
}

// GetByID returns a record by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query, args, err := psql.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	return r.getOne(ctx, id, "", query, args)
}

// Create inserts a new record and returns the persisted row.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(u.ID, u.Name, u.Email, u.Age, u.Occupation, u.CreatedAt, u.UpdatedAt).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	return r.getOne(ctx, u.ID, u.Email, query, args)
}

// Update replaces the descriptive fields and updated_at of an existing row.
// id and created_at are never written.
func (r *Repo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	query, args, err := psql.Update(table).
		Set("name", u.Name).
		Set("email", u.Email).
		Set("age", u.Age).
		Set("occupation", u.Occupation).
		Set("updated_at", u.UpdatedAt).
		Where(squirrel.Eq{"id": u.ID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	return r.getOne(ctx, u.ID, u.Email, query, args)
}

// Delete removes a record by primary key.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// getOne runs a single-row query. email is the value being written, if any,
// and is reported back when the unique email index rejects it.
func (r *Repo) getOne(ctx context.Context, id uuid.UUID, email, query string, args []any) (*domain.User, error) {
	var rw row
	if err := pgxscan.Get(ctx, r.db, &rw, query, args...); err != nil {
		return nil, mapError(err, id, email)
	}
	return rw.toDomain(), nil
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func mapError(err error, id uuid.UUID, email string) error {
	if pgxscan.NotFound(err) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	if email != "" && postgres.ConstraintName(err) == emailUniqueIx {
		return fmt.Errorf("%s %s: %w", entity, id, domain.NewDuplicateKeyError("email", email))
	}
	return postgres.MapError(err, entity, id)
}
