package domain

// Identity is the resolved caller principal carried inside a signed token.
// It is embedded verbatim in the token payload and never persisted here.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// RateTier is the coarse caller classification used to pick a rate ceiling.
type RateTier string

const (
	TierGuest RateTier = "guest"
	TierUser  RateTier = "user"
	TierAdmin RateTier = "admin"
)

// TierFor maps an optionally-resolved identity to its rate tier.
// An unresolved caller is a guest.
func TierFor(identity *Identity) RateTier {
	if identity == nil {
		return TierGuest
	}
	if identity.Role == RoleAdmin {
		return TierAdmin
	}
	return TierUser
}
