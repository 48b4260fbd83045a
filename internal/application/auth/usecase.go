package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/issaqr/inventory-qr-api/internal/application/authz"
	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
	"github.com/issaqr/inventory-qr-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro abierto, registro por
// invitación, login con password, login con Google y usuario actual.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	invitationRepo repository.InvitationRepository
	txRunner       RegistrationTxRunner
	authorizer     *authz.Authorizer
	google         GoogleVerifier
	jwtCfg         JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. google puede ser nil si
// el login con Google no está configurado.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	invitationRepo repository.InvitationRepository,
	txRunner RegistrationTxRunner,
	authorizer *authz.Authorizer,
	google GoogleVerifier,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		txRunner:       txRunner,
		authorizer:     authorizer,
		google:         google,
		jwtCfg:         jwtCfg,
	}
}

// Register registro abierto: crea un usuario pending sin roles. Las
// asignaciones llegan después, por invitación o por un super_admin.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.UserStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// RegisterWithInvitation canjea una invitación: valida token y email, y en
// una sola transacción crea el usuario activo, le asigna el rol de la
// invitación y la marca como usada. Dos canjes concurrentes del mismo token
// no pueden tener éxito ambos: MarkUsed es condicional a used_at IS NULL.
func (uc *AuthUseCase) RegisterWithInvitation(ctx context.Context, in dto.RegisterWithInvitationRequest) (*dto.UserResponse, error) {
	inv, err := uc.invitationRepo.GetByToken(in.InvitationToken)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvitationNotFound
	}
	if !inv.IsValid(time.Now()) {
		return nil, domain.ErrInvitationInvalid
	}
	email := normalizeEmail(in.Email)
	if normalizeEmail(inv.Email) != email {
		return nil, domain.ErrEmailMismatch
	}
	// Un usuario ya activo o suspendido con ese email no puede canjear; uno
	// pending (registro abierto previo) se promueve dentro de la transacción.
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status != entity.UserStatusPending {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(
		userRepo repository.UserRepository,
		userRoleRepo repository.UserRoleRepository,
		invitationRepo repository.InvitationRepository,
	) error {
		if existing != nil {
			existing.FullName = in.FullName
			existing.PasswordHash = string(hash)
			existing.Status = entity.UserStatusActive
			existing.UpdatedAt = now
			if err := userRepo.Update(existing); err != nil {
				return err
			}
			user = existing
		} else if err := userRepo.Create(user); err != nil {
			return err
		}
		ur := &entity.UserRole{
			UserID:     user.ID,
			RoleID:     inv.RoleID,
			SchoolID:   inv.SchoolID,
			AssignedAt: now,
		}
		if err := userRoleRepo.Create(ur); err != nil {
			return err
		}
		return invitationRepo.MarkUsed(inv.Token, now)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByEmail(normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	return uc.issueToken(user)
}

// GoogleLogin valida el ID token contra Google. Si el email no existe se
// crea un usuario activo sin password (solo podrá entrar por Google).
func (uc *AuthUseCase) GoogleLogin(ctx context.Context, in dto.GoogleLoginRequest) (*dto.TokenResponse, error) {
	if uc.google == nil {
		return nil, domain.ErrUnauthorized
	}
	email, fullName, err := uc.google.Verify(ctx, in.IDToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	email = normalizeEmail(email)
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Password aleatorio: la cuenta solo entra por Google hasta que lo cambie.
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user = &entity.User{
			ID:           uuid.New().String(),
			FullName:     fullName,
			Email:        email,
			PasswordHash: string(hash),
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.userRepo.Create(user); err != nil {
			return nil, err
		}
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	return uc.issueToken(user)
}

// CurrentUser devuelve el usuario del token junto con sus banderas de rol.
func (uc *AuthUseCase) CurrentUser(userID string) (*dto.UserWithRolesResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	flags, err := uc.authorizer.Flags(userID)
	if err != nil {
		return nil, err
	}
	return &dto.UserWithRolesResponse{
		UserResponse: *toUserResponse(user),
		Roles:        flags,
	}, nil
}

func (uc *AuthUseCase) issueToken(user *entity.User) (*dto.TokenResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        *toUserResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
