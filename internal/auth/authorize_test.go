package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micorpx/acquisitions/internal/domain"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

func TestAuthorizeUserAccess(t *testing.T) {
	user := &domain.Identity{ID: 2, Email: "user@example.com", Role: domain.RoleUser}
	admin := &domain.Identity{ID: 9, Email: "admin@example.com", Role: domain.RoleAdmin}

	tests := []struct {
		name     string
		caller   *domain.Identity
		targetID int64
		allowed  bool
	}{
		{"owner may access own account", user, 2, true},
		{"user may not access another account", user, 1, false},
		{"admin may access any account", admin, 2, true},
		{"admin may access own account", admin, 9, true},
		{"anonymous is rejected", nil, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeUserAccess(tt.caller, tt.targetID)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAuthorizeUserUpdateRoleChange(t *testing.T) {
	user := &domain.Identity{ID: 2, Email: "user@example.com", Role: domain.RoleUser}
	admin := &domain.Identity{ID: 9, Email: "admin@example.com", Role: domain.RoleAdmin}

	// Ownership never permits self-promotion.
	err := AuthorizeUserUpdate(user, 2, true)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeForbidden, domainErr.Code)
	assert.Equal(t, "Only admins can change user roles", domainErr.Message)

	assert.NoError(t, AuthorizeUserUpdate(user, 2, false))
	assert.NoError(t, AuthorizeUserUpdate(admin, 2, true))
	assert.NoError(t, AuthorizeUserUpdate(admin, 9, true))
}

func TestAuthorizeUserUpdateOwnershipMessage(t *testing.T) {
	user := &domain.Identity{ID: 2, Email: "user@example.com", Role: domain.RoleUser}

	err := AuthorizeUserUpdate(user, 1, false)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeForbidden, domainErr.Code)
	assert.Equal(t, "You can only access your own account", domainErr.Message)
}
