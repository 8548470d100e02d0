package authz

// Role is a project membership role. The set is closed: owner, admin,
// member, viewer.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Capability is an authorization-relevant project action.
type Capability int

const (
	CapEditProject Capability = iota
	CapDeleteProject
	CapInviteMembers
	CapRemoveMembers
	CapChangeRoles
)

// capabilities is the single source of truth for which roles may perform
// which mutation. Admin has owner's rights minus deletion and role changes;
// member and viewer can mutate nothing.
var capabilities = map[Capability]map[Role]bool{
	CapEditProject:   {RoleOwner: true, RoleAdmin: true},
	CapDeleteProject: {RoleOwner: true},
	CapInviteMembers: {RoleOwner: true, RoleAdmin: true},
	CapRemoveMembers: {RoleOwner: true},
	CapChangeRoles:   {RoleOwner: true},
}

// Allows reports whether role may perform cap.
func Allows(role Role, cap Capability) bool {
	return capabilities[cap][role]
}

// ValidRole reports whether s names one of the four roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// AssignableRole reports whether s is a role that can be granted to a
// member. Owner is excluded: the owner row is created with the project
// and never granted afterwards.
func AssignableRole(s string) bool {
	return ValidRole(s) && Role(s) != RoleOwner
}
