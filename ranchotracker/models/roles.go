package models

// Role types a code can be issued for. The set is closed: codes with any
// other value are rejected at creation time.
const (
	RoleAdmin       = "admin"
	RoleVeterinario = "veterinario"
	RoleSupervisor  = "supervisor"
	RoleEmpleado    = "empleado"
	RoleUsuario     = "usuario"
)

const (
	PermissionRead               = "read"
	PermissionCreate             = "create"
	PermissionUpdate             = "update"
	PermissionDelete             = "delete"
	PermissionManageUsers        = "manage_users"
	PermissionGenerateCodes      = "generate_codes"
	PermissionManageAnimals      = "manage_animals"
	PermissionRecordHealth       = "record_health"
	PermissionViewMedicalReports = "view_medical_reports"
	PermissionViewReports        = "view_reports"
)

var rolePermissions = map[string][]string{
	RoleAdmin: {
		PermissionRead, PermissionCreate, PermissionUpdate, PermissionDelete,
		PermissionManageUsers, PermissionGenerateCodes,
	},
	RoleVeterinario: {
		PermissionRead, PermissionCreate, PermissionUpdate,
		PermissionManageAnimals, PermissionRecordHealth, PermissionViewMedicalReports,
	},
	RoleSupervisor: {
		PermissionRead, PermissionCreate, PermissionUpdate,
		PermissionManageAnimals, PermissionViewReports,
	},
	RoleEmpleado: {PermissionRead, PermissionCreate, PermissionUpdate},
	RoleUsuario:  {PermissionRead, PermissionCreate, PermissionUpdate},
}

func IsKnownRoleType(roleType string) bool {
	_, ok := rolePermissions[roleType]
	return ok
}

// ResolveRole maps a role type from a redeemed code to the role and
// permission set stored on the new member. Unknown types fall back to
// empleado. Returns a copy so callers can't mutate the mapping.
func ResolveRole(roleType string) (role string, permissions []string) {
	role = roleType
	perms, ok := rolePermissions[roleType]
	if !ok {
		role = RoleEmpleado
		perms = rolePermissions[RoleEmpleado]
	}
	permissions = make([]string, len(perms))
	copy(permissions, perms)
	return
}

// AdminPermissions is the set granted to a self-registered ranch owner.
func AdminPermissions() []string {
	_, permissions := ResolveRole(RoleAdmin)
	return permissions
}
