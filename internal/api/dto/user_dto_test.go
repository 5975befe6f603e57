package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpRequestValidate(t *testing.T) {
	req := SignUpRequest{
		Name:     "  Jane Doe  ",
		Email:    "Jane@Example.COM",
		Password: "Str0ng@Pass",
	}

	issues := req.Validate()
	require.Empty(t, issues)
	assert.Equal(t, "Jane Doe", req.Name)
	assert.Equal(t, "jane@example.com", req.Email)
	assert.Equal(t, "user", req.Role)
}

func TestSignUpRequestValidateIssues(t *testing.T) {
	tests := []struct {
		name string
		req  SignUpRequest
		want string
	}{
		{"short name", SignUpRequest{Name: "J", Email: "j@example.com", Password: "Str0ng@Pass"}, "name must be between 2 and 255 characters"},
		{"bad email", SignUpRequest{Name: "Jane", Email: "not-an-email", Password: "Str0ng@Pass"}, "email must be a valid email address"},
		{"short password", SignUpRequest{Name: "Jane", Email: "j@example.com", Password: "weak"}, "password must be between 8 and 128 characters"},
		{"weak password", SignUpRequest{Name: "Jane", Email: "j@example.com", Password: "alllowercase1"}, "password must contain an uppercase letter, a lowercase letter, a number and a special character"},
		{"bad role", SignUpRequest{Name: "Jane", Email: "j@example.com", Password: "Str0ng@Pass", Role: "root"}, "role must be either user or admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := tt.req.Validate()
			assert.Contains(t, issues, tt.want)
		})
	}
}

func TestSignUpRequestCollectsAllIssues(t *testing.T) {
	req := SignUpRequest{Name: "", Email: "nope", Password: "weak"}

	issues := req.Validate()
	assert.Len(t, issues, 3)
}

func TestSignInRequestValidate(t *testing.T) {
	req := SignInRequest{Email: "USER@example.com", Password: "whatever"}
	require.Empty(t, req.Validate())
	assert.Equal(t, "user@example.com", req.Email)

	empty := SignInRequest{}
	issues := empty.Validate()
	assert.Contains(t, issues, "email must be a valid email address")
	assert.Contains(t, issues, "password is required")
}

func TestUpdateUserRequestValidate(t *testing.T) {
	name := "New Name"
	req := UpdateUserRequest{Name: &name}
	require.Empty(t, req.Validate())

	empty := UpdateUserRequest{}
	assert.Equal(t, []string{"at least one field must be provided"}, empty.Validate())

	badRole := "root"
	withRole := UpdateUserRequest{Role: &badRole}
	assert.Contains(t, withRole.Validate(), "role must be either user or admin")
}

func TestParseUserID(t *testing.T) {
	id, issues := ParseUserID("42")
	require.Empty(t, issues)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"invalid", "-1", "0", "1.5", ""} {
		_, issues := ParseUserID(raw)
		assert.NotEmpty(t, issues, "raw id %q must be rejected", raw)
	}
}
