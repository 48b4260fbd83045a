package entity

import "time"

// Catálogo fijo de roles (ids pequeños, nunca generados).
const (
	RoleSuperAdmin       int16 = 1
	RoleSchoolAdmin      int16 = 2
	RoleTeacher          int16 = 3
	RoleInventoryManager int16 = 4
)

// Role fila del catálogo roles.
type Role struct {
	ID   int16
	Name string // super_admin, school_admin, teacher, inventory_manager
}

// RoleName devuelve el nombre canónico de un rol por id.
func RoleName(id int16) string {
	switch id {
	case RoleSuperAdmin:
		return "super_admin"
	case RoleSchoolAdmin:
		return "school_admin"
	case RoleTeacher:
		return "teacher"
	case RoleInventoryManager:
		return "inventory_manager"
	}
	return "unknown"
}

// ValidRoleID verifica que el id pertenezca al catálogo fijo.
func ValidRoleID(id int16) bool {
	return id >= RoleSuperAdmin && id <= RoleInventoryManager
}

// UserRole asignación (user, role, school). Clave compuesta: un usuario puede
// tener roles distintos en escuelas distintas. El school_id del super_admin se
// almacena igual que los demás pero el authz lo ignora al decidir.
type UserRole struct {
	UserID     string
	RoleID     int16
	SchoolID   string
	AssignedAt time.Time
}

// RoleFlags banderas de pertenencia a cada rol, para respuestas de la API.
type RoleFlags struct {
	SuperAdmin       bool `json:"super_admin"`
	SchoolAdmin      bool `json:"school_admin"`
	Teacher          bool `json:"teacher"`
	InventoryManager bool `json:"inventory_manager"`
}

// Set marca la bandera correspondiente a un role id.
func (f *RoleFlags) Set(roleID int16) {
	switch roleID {
	case RoleSuperAdmin:
		f.SuperAdmin = true
	case RoleSchoolAdmin:
		f.SchoolAdmin = true
	case RoleTeacher:
		f.Teacher = true
	case RoleInventoryManager:
		f.InventoryManager = true
	}
}
