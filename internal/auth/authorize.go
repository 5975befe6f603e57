package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/micorpx/acquisitions/internal/domain"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

// RequireRole ensures the authenticated caller holds one of the allowed
// roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("Access denied")
		}
		return c.Next()
	}
}

// AuthorizeUserAccess decides whether the caller may act on the account
// identified by targetID. Access is granted to the owner or to an admin.
func AuthorizeUserAccess(caller *domain.Identity, targetID int64) error {
	if caller == nil {
		return apperrors.NewUnauthorized("Authentication required")
	}
	if caller.ID == targetID || caller.Role == domain.RoleAdmin {
		return nil
	}
	return apperrors.NewForbidden("You can only access your own account")
}

// AuthorizeUserUpdate applies the ownership rule plus the elevated-field
// rule: a role change requires admin, independent of ownership. Ownership
// alone never permits self-promotion.
func AuthorizeUserUpdate(caller *domain.Identity, targetID int64, changesRole bool) error {
	if err := AuthorizeUserAccess(caller, targetID); err != nil {
		return err
	}
	if changesRole && caller.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("Only admins can change user roles")
	}
	return nil
}
