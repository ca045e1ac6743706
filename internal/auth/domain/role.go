package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// Satisfies reports whether r meets the required role. Admin satisfies
// everything; standard only satisfies standard.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}
