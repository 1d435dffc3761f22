package domain

// Role is the portal a user belongs to.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleManager  Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleManager:
		return true
	}
	return false
}

// Identity is the authenticated caller as supplied by the identity provider.
// UserID is opaque; this service never issues or validates credentials.
type Identity struct {
	UserID      string
	DisplayName string
	Role        Role
}

// Anonymous reports whether no user is attached.
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}
