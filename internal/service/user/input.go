package user

import (
	"github.com/ren-lyn/midterm-lab3/internal/domain"
)

// RecordInput holds the four user-supplied fields of a record. It is used
// for both create and full-replace update. A nil Age means the field was
// not supplied.
type RecordInput struct {
	Name       string
	Email      string
	Age        *int
	Occupation string
}

// Validate checks all fields and collects all errors.
func (i RecordInput) Validate() error {
	var errs []domain.FieldError

	errs = appendRequired(errs, "name", i.Name)
	errs = appendRequired(errs, "email", i.Email)

	switch {
	case i.Age == nil:
		errs = append(errs, domain.FieldError{Field: "age", Message: "is required"})
	case *i.Age < 0:
		errs = append(errs, domain.FieldError{Field: "age", Message: "must be at least 0"})
	}

	errs = appendRequired(errs, "occupation", i.Occupation)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Normalize returns the values as they are stored. Call after Validate.
func (i RecordInput) Normalize() (name, email string, age int, occupation string) {
	if i.Age != nil {
		age = *i.Age
	}
	return domain.NormalizeText(i.Name), domain.NormalizeEmail(i.Email), age, domain.NormalizeText(i.Occupation)
}

func appendRequired(errs []domain.FieldError, field, value string) []domain.FieldError {
	if domain.NormalizeText(value) == "" {
		return append(errs, domain.FieldError{Field: field, Message: "is required"})
	}
	return errs
}
