package usecase

import (
	"strings"
	"time"

	"github.com/issaqr/inventory-qr-api/internal/application/authz"
	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// UserAdminUseCase administración de usuarios, reservada al super_admin:
// listar con roles, buscar, actualizar, activar, suspender y bloquear.
type UserAdminUseCase struct {
	userRepo     repository.UserRepository
	userRoleRepo repository.UserRoleRepository
	authorizer   *authz.Authorizer
}

// NewUserAdminUseCase construye el caso de uso.
func NewUserAdminUseCase(
	userRepo repository.UserRepository,
	userRoleRepo repository.UserRoleRepository,
	authorizer *authz.Authorizer,
) *UserAdminUseCase {
	return &UserAdminUseCase{userRepo: userRepo, userRoleRepo: userRoleRepo, authorizer: authorizer}
}

// List lista usuarios con sus banderas de rol; con Search busca por nombre
// o email ignorando mayúsculas y acentos.
func (uc *UserAdminUseCase) List(in dto.UserListRequest) (*dto.AdminUserListResponse, error) {
	in.DefaultPage()
	var (
		list []*entity.User
		err  error
	)
	if strings.TrimSpace(in.Search) != "" {
		list, err = uc.userRepo.Search(foldAccents(in.Search), in.Limit, in.Offset)
	} else {
		list, err = uc.userRepo.List(in.Limit, in.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserWithRolesResponse, 0, len(list))
	for _, u := range list {
		flags, err := uc.authorizer.Flags(u.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.UserWithRolesResponse{
			UserResponse: dto.UserResponse{
				ID:        u.ID,
				FullName:  u.FullName,
				Email:     u.Email,
				Status:    u.Status,
				CreatedAt: u.CreatedAt,
			},
			Roles: flags,
		})
	}
	return &dto.AdminUserListResponse{Items: items, Page: dto.PageResponse{Limit: in.Limit, Offset: in.Offset}}, nil
}

// GetByID obtiene un usuario con sus banderas de rol.
func (uc *UserAdminUseCase) GetByID(id string) (*dto.UserWithRolesResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	flags, err := uc.authorizer.Flags(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.UserWithRolesResponse{
		UserResponse: dto.UserResponse{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			Status:    user.Status,
			CreatedAt: user.CreatedAt,
		},
		Roles: flags,
	}, nil
}

// Update cambia nombre y/o email. El cambio de email respeta la unicidad.
func (uc *UserAdminUseCase) Update(id string, in dto.AdminUpdateUserRequest) (*dto.UserWithRolesResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			existing, err := uc.userRepo.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// SetStatus cambia el estado del usuario (enum validado).
func (uc *UserAdminUseCase) SetStatus(id string, in dto.SetUserStatusRequest) (*dto.UserWithRolesResponse, error) {
	if !entity.ValidUserStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByIDAny(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Status = in.Status
	if in.Status == entity.UserStatusActive {
		// Reactivar deshace el bloqueo.
		user.DeletedAt = nil
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Activate pasa el usuario a active; limpia deleted_at si estaba bloqueado.
func (uc *UserAdminUseCase) Activate(id string) (*dto.UserWithRolesResponse, error) {
	return uc.SetStatus(id, dto.SetUserStatusRequest{Status: entity.UserStatusActive})
}

// Suspend pasa el usuario a suspended; conserva sus roles.
func (uc *UserAdminUseCase) Suspend(id string) (*dto.UserWithRolesResponse, error) {
	return uc.SetStatus(id, dto.SetUserStatusRequest{Status: entity.UserStatusSuspended})
}

// Block soft delete + suspended: desaparece de listados y no puede entrar.
func (uc *UserAdminUseCase) Block(id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	user.Status = entity.UserStatusSuspended
	user.DeletedAt = &now
	user.UpdatedAt = now
	return uc.userRepo.Update(user)
}

// AssignRole asigna un rol en un colegio. Repetir la asignación devuelve
// ErrDuplicate (PK compuesta).
func (uc *UserAdminUseCase) AssignRole(userID string, in dto.AssignRoleRequest) error {
	if !entity.ValidRoleID(in.RoleID) {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRoleRepo.Create(&entity.UserRole{
		UserID:     userID,
		RoleID:     in.RoleID,
		SchoolID:   in.SchoolID,
		AssignedAt: time.Now(),
	})
}
