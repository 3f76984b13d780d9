package auth

// Role is the access level carried by a token.
type Role string

const (
	// RoleViewer may read circuits, reports and exports.
	RoleViewer Role = "viewer"
	// RoleOperator may also create and remove circuits and devices.
	RoleOperator Role = "operator"
)

var roleRanks = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
}

// NormalizeRole validates a role claim.
func NormalizeRole(value string) (Role, bool) {
	role := Role(value)
	if _, ok := roleRanks[role]; !ok {
		return "", false
	}
	return role, true
}

// Allows reports whether r grants at least the required level.
// Unknown roles allow nothing.
func (r Role) Allows(required Role) bool {
	rank, ok := roleRanks[r]
	return ok && rank >= roleRanks[required]
}
