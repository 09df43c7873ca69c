package domain

import "errors"

var (
	ErrForbidden    = errors.New("access forbidden")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Principal is the authenticated actor of a request. It is rebuilt from
// the bearer credential on every request; Role is the account's current
// role, not the one baked into the token.
type Principal struct {
	ID   string
	Role string
}

// Policy declares which roles an endpoint admits and which roles may act
// on a resource they do not own. Policies are attached to routes and
// evaluated uniformly by Authorize.
type Policy struct {
	Allowed []string
	Bypass  []string
}

// AnyRole is the allowed-role set for endpoints open to every
// authenticated principal.
var AnyRole = Roles

// Authorize decides whether p may act on the resource owned by
// targetOwnerID under pol. Ownership and role membership are two
// independent gates:
//
//  1. p owns the resource, or p's role is in pol.Bypass; and
//  2. p's role is in pol.Allowed, always.
//
// Endpoints with no owner-scoped path parameter pass targetOwnerID == ""
// and only the allowed-role gate applies.
func Authorize(p Principal, targetOwnerID string, pol Policy) error {
	if targetOwnerID != "" && p.ID != targetOwnerID && !containsRole(pol.Bypass, p.Role) {
		return ErrForbidden
	}
	if !containsRole(pol.Allowed, p.Role) {
		return ErrForbidden
	}
	return nil
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
