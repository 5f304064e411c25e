package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a stored person record. ID, CreatedAt and UpdatedAt are assigned
// on creation; the four descriptive fields are replaced as a whole on update.
type User struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Age        int
	Occupation string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Clone returns an independent copy of the record.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
