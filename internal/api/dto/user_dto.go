package dto

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/micorpx/acquisitions/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SignUpRequest payload for new accounts. Role defaults to "user".
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate normalizes the payload and returns field-level issue messages.
// An empty slice means the payload parsed clean.
func (r *SignUpRequest) Validate() []string {
	var issues []string

	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) < 2 || len(r.Name) > 255 {
		issues = append(issues, "name must be between 2 and 255 characters")
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !emailPattern.MatchString(r.Email) || len(r.Email) > 255 {
		issues = append(issues, "email must be a valid email address")
	}

	issues = append(issues, validatePassword(r.Password)...)

	if r.Role == "" {
		r.Role = string(domain.RoleUser)
	}
	if !domain.Role(r.Role).Valid() {
		issues = append(issues, "role must be either user or admin")
	}

	return issues
}

// SignInRequest payload for login.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate normalizes and checks the payload.
func (r *SignInRequest) Validate() []string {
	var issues []string

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !emailPattern.MatchString(r.Email) {
		issues = append(issues, "email must be a valid email address")
	}
	if r.Password == "" {
		issues = append(issues, "password is required")
	}

	return issues
}

// UpdateUserRequest payload for partial account updates. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Validate normalizes present fields and requires at least one.
func (r *UpdateUserRequest) Validate() []string {
	var issues []string

	if r.Name == nil && r.Email == nil && r.Password == nil && r.Role == nil {
		return []string{"at least one field must be provided"}
	}

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		*r.Name = trimmed
		if len(trimmed) < 2 || len(trimmed) > 255 {
			issues = append(issues, "name must be between 2 and 255 characters")
		}
	}
	if r.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*r.Email))
		*r.Email = normalized
		if !emailPattern.MatchString(normalized) || len(normalized) > 255 {
			issues = append(issues, "email must be a valid email address")
		}
	}
	if r.Password != nil {
		issues = append(issues, validatePassword(*r.Password)...)
	}
	if r.Role != nil && !domain.Role(*r.Role).Valid() {
		issues = append(issues, "role must be either user or admin")
	}

	return issues
}

// ParseUserID validates the :id path parameter.
func ParseUserID(raw string) (int64, []string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, []string{"id must be a positive integer"}
	}
	return id, nil
}

func validatePassword(password string) []string {
	if len(password) < 8 || len(password) > 128 {
		return []string{"password must be between 8 and 128 characters"}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*?&#^_-", r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return []string{"password must contain an uppercase letter, a lowercase letter, a number and a special character"}
	}
	return nil
}
