package access

import "coilworks/internal/domain"

// LandingPath is where unauthorized visitors are sent.
const LandingPath = "/"

// RoleSet is the set of roles allowed through a gate.
type RoleSet map[domain.Role]struct{}

func Roles(roles ...domain.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(role domain.Role) bool {
	_, ok := s[role]
	return ok
}

var (
	AdminOnly       = Roles(domain.RoleAdmin)
	OrderManagers   = Roles(domain.RoleAdmin, domain.RoleManager)
	ProductManagers = Roles(domain.RoleAdmin, domain.RoleManager)
	CatalogEditors  = Roles(domain.RoleProductAdder, domain.RoleManager, domain.RoleAdmin)
	Customers       = Roles(domain.RoleUser)
)

type Decision struct {
	Allowed    bool
	RedirectTo string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// Authorize decides whether identity may enter a view gated by required.
// Anonymous identities and role mismatches are both sent to the landing page.
func Authorize(identity *domain.Identity, required RoleSet) Decision {
	if identity == nil {
		return Redirect(LandingPath)
	}
	if !required.Contains(identity.Role) {
		return Redirect(LandingPath)
	}
	return Allow()
}
