package auth

// Permission tokens. Each names one discrete capability.
const (
	PermManageUsers    = "manage_users"
	PermCreateUser     = "create_user"
	PermAssignRoles    = "assign_roles"
	PermManageJobs     = "manage_jobs"
	PermManageCands    = "manage_candidates"
	PermManageIntvws   = "manage_interviews"
	PermViewAnalytics  = "view_analytics"
	PermManageSettings = "manage_settings"
	PermViewTeam       = "view_team"
	PermViewJobs       = "view_jobs"
	PermViewCands      = "view_candidates"
	PermManageAssigned = "manage_assigned_interviews"
	PermApplyJobs      = "apply_jobs"
	PermViewOwnProfile = "view_own_profile"
	PermViewOwnApps    = "view_own_applications"
	PermViewOwnIntvws  = "view_own_interviews"
)

// rolePermissions is the static role to permission-set table. It is defined
// once at process start and never mutated; no input escalates permissions at
// runtime.
var rolePermissions = map[Role][]string{
	RoleAdmin: {
		PermManageUsers,
		PermCreateUser,
		PermAssignRoles,
		PermManageJobs,
		PermManageCands,
		PermManageIntvws,
		PermViewAnalytics,
		PermManageSettings,
	},
	RoleManager: {
		PermManageJobs,
		PermManageCands,
		PermManageIntvws,
		PermViewAnalytics,
		PermViewTeam,
	},
	RoleEmployee: {
		PermViewJobs,
		PermViewCands,
		PermManageAssigned,
	},
	RoleCandidate: {
		PermViewJobs,
		PermApplyJobs,
		PermViewOwnProfile,
		PermViewOwnApps,
		PermViewOwnIntvws,
	},
}

// PermissionsForRole returns a copy of the role's permission set. An
// unrecognized role gets the empty set.
func PermissionsForRole(role Role) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// HasPermission is a pure set-membership test. Absent or unknown roles fail
// closed.
func HasPermission(role Role, permission string) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
