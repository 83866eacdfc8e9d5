package types

// Role is a user's job function. Roles map to permission sets through the
// static table below; the mapping is configuration, not stored data.
type Role string

// Recognized roles.
const (
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "ProjectManager"
	RoleSiteEngineer   Role = "SiteEngineer"
	RoleLabTechnician  Role = "LabTechnician"
	RoleContractor     Role = "Contractor"
	RoleSubcontractor  Role = "Subcontractor"
	RoleSupervisor     Role = "Supervisor"
)

// Permission is a single capability flag.
type Permission string

// Capability flags.
const (
	PermProjectRead    Permission = "PROJECT_READ"
	PermProjectWrite   Permission = "PROJECT_WRITE"
	PermProjectDelete  Permission = "PROJECT_DELETE"
	PermUserRead       Permission = "USER_READ"
	PermUserManage     Permission = "USER_MANAGE"
	PermDocumentRead   Permission = "DOCUMENT_READ"
	PermDocumentWrite  Permission = "DOCUMENT_WRITE"
	PermReportRead     Permission = "REPORT_READ"
	PermReportCreate   Permission = "REPORT_CREATE"
	PermMessageSend    Permission = "MESSAGE_SEND"
	PermSettingsManage Permission = "SETTINGS_MANAGE"
)

// rolePermissions is the static role-to-permission table. Order within each
// set is stable and meaningful to callers that render permission lists.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermProjectRead, PermProjectWrite, PermProjectDelete,
		PermUserRead, PermUserManage,
		PermDocumentRead, PermDocumentWrite,
		PermReportRead, PermReportCreate,
		PermMessageSend, PermSettingsManage,
	},
	RoleProjectManager: {
		PermProjectRead, PermProjectWrite,
		PermUserRead,
		PermDocumentRead, PermDocumentWrite,
		PermReportRead, PermReportCreate,
		PermMessageSend,
	},
	RoleSiteEngineer: {
		PermProjectRead, PermProjectWrite,
		PermDocumentRead, PermDocumentWrite,
		PermReportRead, PermReportCreate,
		PermMessageSend,
	},
	RoleLabTechnician: {
		PermProjectRead, PermDocumentRead, PermReportRead,
	},
	RoleContractor: {
		PermProjectRead, PermDocumentRead, PermMessageSend,
	},
	RoleSubcontractor: {
		PermProjectRead, PermDocumentRead,
	},
	RoleSupervisor: {
		PermProjectRead, PermUserRead,
		PermDocumentRead, PermReportRead,
		PermMessageSend,
	},
}

// RolePermissions returns the ordered permission set for a role. An unknown
// role resolves to an empty set, never an error.
func RolePermissions(role Role) []Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// UserWithPermissions is a user decorated with its resolved permission list.
type UserWithPermissions struct {
	User
	Permissions []Permission `json:"permissions"`
}

// WithPermissions attaches the resolved permission set to a bare user record.
func WithPermissions(u User) UserWithPermissions {
	return UserWithPermissions{
		User:        u,
		Permissions: RolePermissions(u.Role),
	}
}

// HasPermission reports whether the user's role grants the permission.
func (u UserWithPermissions) HasPermission(p Permission) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the user holds at least one of the
// given permissions.
func (u UserWithPermissions) HasAnyPermission(perms ...Permission) bool {
	for _, p := range perms {
		if u.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the user holds every given permission.
func (u UserWithPermissions) HasAllPermissions(perms ...Permission) bool {
	for _, p := range perms {
		if !u.HasPermission(p) {
			return false
		}
	}
	return true
}
