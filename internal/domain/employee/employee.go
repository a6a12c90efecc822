package employee

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

type Employee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// FieldViolation is a single broken validation rule, keyed by the JSON field name.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Name and position carry no length tags: their bounds apply to the trimmed
// value, so Validate owns them entirely (a tag here would reject padded input
// that trims to a legal length).
type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Position string `json:"position" binding:"required"`
}

// full replacement payload, same shape and rules as create.
type UpdateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Position string `json:"position" binding:"required"`
}

// NormalizeEmail canonicalizes an address for storage and uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *CreateEmployeeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Position = strings.TrimSpace(r.Position)
}

func (r *UpdateEmployeeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Position = strings.TrimSpace(r.Position)
}

// Validate enforces the length bounds the binding tags cannot express: they
// apply to the trimmed value and count characters, not bytes. Callers must
// Normalize first.
func (r CreateEmployeeRequest) Validate() []FieldViolation {
	return validateFields(r.Name, r.Position)
}

func (r UpdateEmployeeRequest) Validate() []FieldViolation {
	return validateFields(r.Name, r.Position)
}

func validateFields(name, position string) []FieldViolation {
	var violations []FieldViolation

	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		violations = append(violations, FieldViolation{
			Field:   "name",
			Message: "Name must be between 2 and 100 characters",
		})
	}

	if n := utf8.RuneCountInString(position); n < 2 || n > 100 {
		violations = append(violations, FieldViolation{
			Field:   "position",
			Message: "Position must be between 2 and 100 characters",
		})
	}

	return violations
}
