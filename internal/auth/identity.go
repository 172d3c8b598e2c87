package auth

import "github.com/yukikurage/club-projects-api/internal/models"

// Identity is the authenticated caller resolved from a request's credentials.
type Identity struct {
	MemberID uint64
	Role     models.Role
	IsActive bool
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// HasRole reports whether the caller holds any of roles.
func (i Identity) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// CanManage reports whether the caller may mutate something owned by ownerID.
func (i Identity) CanManage(ownerID uint64) bool {
	return i.MemberID == ownerID || i.IsAdmin()
}

// IdentityOf builds the Identity for a stored member.
func IdentityOf(m *models.Member) Identity {
	return Identity{MemberID: m.ID, Role: m.Role, IsActive: m.IsActive}
}
