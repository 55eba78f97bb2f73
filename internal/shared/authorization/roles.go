package authorization

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleClient
}

// ParseUserRole falls back to RoleClient for unknown values.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleClient
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID uint
	Role   UserRole
	// System marks trusted in-process callers (CLI, payment webhook) that act
	// without a user account.
	System bool
}

// SystemActor returns the identity used by the CLI and the payment webhook.
func SystemActor() Actor {
	return Actor{Role: RoleAdmin, System: true}
}

func (a Actor) IsAdmin() bool {
	return a.System || a.Role.IsAdmin()
}

// CanAccessOwned reports whether the actor may touch a resource owned by ownerID.
// A nil owner is only reachable by admins.
func (a Actor) CanAccessOwned(ownerID *uint) bool {
	if a.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == a.UserID
}
