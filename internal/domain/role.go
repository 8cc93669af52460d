package domain

import "fmt"

// Role is the access level attached to a signed-in identity.
type Role string

const (
	RoleUser         Role = "user"
	RoleManager      Role = "manager"
	RoleAdmin        Role = "admin"
	RoleProductAdder Role = "product_adder"
)

var validRoles = []Role{
	RoleUser,
	RoleManager,
	RoleAdmin,
	RoleProductAdder,
}

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role has access to management views.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleProductAdder
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// Identity is the signed-in user as seen by the storefront. A nil *Identity
// means the session is anonymous.
type Identity struct {
	UserID    string `json:"userId"`
	Phone     string `json:"phone"`
	Role      Role   `json:"role"`
	AuthToken string `json:"authToken"`
}
