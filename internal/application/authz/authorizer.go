package authz

import (
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// Authorizer decide pertenencia a roles consultando la BD en cada request.
// Los roles no viajan en el JWT: revocar un rol surte efecto de inmediato.
type Authorizer struct {
	userRoleRepo repository.UserRoleRepository
}

// NewAuthorizer construye el autorizador.
func NewAuthorizer(userRoleRepo repository.UserRoleRepository) *Authorizer {
	return &Authorizer{userRoleRepo: userRoleRepo}
}

// HasRole indica si el usuario tiene el rol, opcionalmente acotado a un
// colegio. El super_admin se evalúa siempre global (sin filtro de colegio).
func (a *Authorizer) HasRole(userID string, roleID int16, schoolID string) (bool, error) {
	if roleID == entity.RoleSuperAdmin {
		schoolID = ""
	}
	return a.userRoleRepo.Exists(userID, roleID, schoolID)
}

// IsSuperAdmin atajo para el rol global.
func (a *Authorizer) IsSuperAdmin(userID string) (bool, error) {
	return a.userRoleRepo.Exists(userID, entity.RoleSuperAdmin, "")
}

// RequireAnyRole exige que el usuario tenga alguno de los roles dados en el
// colegio indicado. El super_admin pasa siempre. Devuelve ErrForbidden.
func (a *Authorizer) RequireAnyRole(userID, schoolID string, roleIDs ...int16) error {
	super, err := a.IsSuperAdmin(userID)
	if err != nil {
		return err
	}
	if super {
		return nil
	}
	for _, roleID := range roleIDs {
		ok, err := a.userRoleRepo.Exists(userID, roleID, schoolID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return domain.ErrForbidden
}

// Flags devuelve las banderas de rol del usuario para la respuesta de /me.
func (a *Authorizer) Flags(userID string) (entity.RoleFlags, error) {
	var flags entity.RoleFlags
	roles, err := a.userRoleRepo.ListByUser(userID)
	if err != nil {
		return flags, err
	}
	for _, ur := range roles {
		flags.Set(ur.RoleID)
	}
	return flags, nil
}
