package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/issaqr/inventory-qr-api/internal/application/auth"
	"github.com/issaqr/inventory-qr-api/internal/application/authz"
	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDAny(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok && u.DeletedAt == nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) Search(pattern string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

type fakeUserRoleRepo struct {
	roles []*entity.UserRole
}

func (r *fakeUserRoleRepo) Create(ur *entity.UserRole) error {
	for _, existing := range r.roles {
		if existing.UserID == ur.UserID && existing.RoleID == ur.RoleID && existing.SchoolID == ur.SchoolID {
			return domain.ErrDuplicate
		}
	}
	r.roles = append(r.roles, ur)
	return nil
}

func (r *fakeUserRoleRepo) Exists(userID string, roleID int16, schoolID string) (bool, error) {
	for _, ur := range r.roles {
		if ur.UserID == userID && ur.RoleID == roleID && (schoolID == "" || ur.SchoolID == schoolID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRoleRepo) ListByUser(userID string) ([]*entity.UserRole, error) {
	var out []*entity.UserRole
	for _, ur := range r.roles {
		if ur.UserID == userID {
			out = append(out, ur)
		}
	}
	return out, nil
}

type fakeInvitationRepo struct {
	byToken map[string]*entity.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byToken: make(map[string]*entity.Invitation)}
}

func (r *fakeInvitationRepo) Create(i *entity.Invitation) error {
	r.byToken[i.Token] = i
	return nil
}

func (r *fakeInvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	if i, ok := r.byToken[token]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeInvitationRepo) List(schoolID, email string, limit, offset int) ([]*entity.Invitation, error) {
	return nil, nil
}

func (r *fakeInvitationRepo) MarkUsed(token string, usedAt time.Time) error {
	i, ok := r.byToken[token]
	if !ok || i.UsedAt != nil {
		return domain.ErrInvitationInvalid
	}
	i.UsedAt = &usedAt
	return nil
}

// fakeTxRunner ejecuta el callback contra los mismos fakes, sin transacción.
type fakeTxRunner struct {
	users       *fakeUserRepo
	userRoles   *fakeUserRoleRepo
	invitations *fakeInvitationRepo
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.UserRepository,
	repository.UserRoleRepository,
	repository.InvitationRepository,
) error) error {
	return fn(t.users, t.userRoles, t.invitations)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSchoolID = "11111111-1111-1111-1111-111111111111"
	testPassword = "contraseña-segura-123"
)

type authFixture struct {
	uc          *auth.AuthUseCase
	users       *fakeUserRepo
	userRoles   *fakeUserRoleRepo
	invitations *fakeInvitationRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUserRepo()
	userRoles := &fakeUserRoleRepo{}
	invitations := newFakeInvitationRepo()
	uc := auth.NewAuthUseCase(
		users, invitations,
		&fakeTxRunner{users: users, userRoles: userRoles, invitations: invitations},
		authz.NewAuthorizer(userRoles),
		nil,
		auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "test"},
	)
	return &authFixture{uc: uc, users: users, userRoles: userRoles, invitations: invitations}
}

func (f *authFixture) seedInvitation(t *testing.T, email string, expiresAt time.Time) *entity.Invitation {
	t.Helper()
	inv := &entity.Invitation{
		ID:        uuid.NewString(),
		Email:     email,
		RoleID:    entity.RoleTeacher,
		SchoolID:  testSchoolID,
		Token:     uuid.NewString(),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.invitations.Create(inv))
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro abierto
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_UsuarioQuedaPendienteSinRoles(t *testing.T) {
	f := newAuthFixture(t)

	out, err := f.uc.Register(dto.RegisterRequest{
		FullName: "Ana García",
		Email:    "  Ana@Colegio.EDU  ",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.UserStatusPending, out.Status,
		"el registro abierto debe dejar al usuario pending")
	assert.Equal(t, "ana@colegio.edu", out.Email,
		"el email debe normalizarse a minúsculas y sin espacios")
	roles, _ := f.userRoles.ListByUser(out.ID)
	assert.Empty(t, roles, "el registro abierto no asigna roles")
}

func TestRegister_EmailDuplicadoRechazado(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Register(dto.RegisterRequest{FullName: "Ana", Email: "ana@colegio.edu", Password: testPassword})
	require.NoError(t, err)

	_, err = f.uc.Register(dto.RegisterRequest{FullName: "Otra Ana", Email: "ana@colegio.edu", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Canje de invitaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterWithInvitation_CreaUsuarioActivoConRol(t *testing.T) {
	f := newAuthFixture(t)
	inv := f.seedInvitation(t, "profe@colegio.edu", time.Now().Add(48*time.Hour))

	out, err := f.uc.RegisterWithInvitation(context.Background(), dto.RegisterWithInvitationRequest{
		InvitationToken: inv.Token,
		FullName:        "Profesora Díaz",
		Email:           "profe@colegio.edu",
		Password:        testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.UserStatusActive, out.Status,
		"el canje crea al usuario directamente activo")

	has, _ := f.userRoles.Exists(out.ID, entity.RoleTeacher, testSchoolID)
	assert.True(t, has, "el rol de la invitación debe quedar asignado en su colegio")

	stored, _ := f.invitations.GetByToken(inv.Token)
	assert.NotNil(t, stored.UsedAt, "la invitación debe quedar marcada como usada")
}

func TestRegisterWithInvitation_EmailDistintoRechazado(t *testing.T) {
	f := newAuthFixture(t)
	inv := f.seedInvitation(t, "profe@colegio.edu", time.Now().Add(48*time.Hour))

	_, err := f.uc.RegisterWithInvitation(context.Background(), dto.RegisterWithInvitationRequest{
		InvitationToken: inv.Token,
		FullName:        "Impostor",
		Email:           "otro@colegio.edu",
		Password:        testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrEmailMismatch)

	stored, _ := f.invitations.GetByToken(inv.Token)
	assert.Nil(t, stored.UsedAt, "un canje rechazado no debe consumir la invitación")
}

func TestRegisterWithInvitation_ExpiradaRechazada(t *testing.T) {
	f := newAuthFixture(t)
	inv := f.seedInvitation(t, "profe@colegio.edu", time.Now().Add(-time.Hour))

	_, err := f.uc.RegisterWithInvitation(context.Background(), dto.RegisterWithInvitationRequest{
		InvitationToken: inv.Token,
		FullName:        "Tarde",
		Email:           "profe@colegio.edu",
		Password:        testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrInvitationInvalid)
}

func TestRegisterWithInvitation_YaUsadaRechazada(t *testing.T) {
	f := newAuthFixture(t)
	inv := f.seedInvitation(t, "profe@colegio.edu", time.Now().Add(48*time.Hour))
	in := dto.RegisterWithInvitationRequest{
		InvitationToken: inv.Token,
		FullName:        "Profesora Díaz",
		Email:           "profe@colegio.edu",
		Password:        testPassword,
	}

	_, err := f.uc.RegisterWithInvitation(context.Background(), in)
	require.NoError(t, err)

	_, err = f.uc.RegisterWithInvitation(context.Background(), in)
	assert.Error(t, err, "el segundo canje del mismo token debe fallar")
}

func TestRegisterWithInvitation_PromuevePendiente(t *testing.T) {
	f := newAuthFixture(t)

	// Registro abierto previo: queda pending.
	prev, err := f.uc.Register(dto.RegisterRequest{
		FullName: "Ana", Email: "ana@colegio.edu", Password: "password-vieja",
	})
	require.NoError(t, err)

	inv := f.seedInvitation(t, "ana@colegio.edu", time.Now().Add(48*time.Hour))
	out, err := f.uc.RegisterWithInvitation(context.Background(), dto.RegisterWithInvitationRequest{
		InvitationToken: inv.Token,
		FullName:        "Ana García",
		Email:           "ana@colegio.edu",
		Password:        testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, prev.ID, out.ID, "debe promoverse la cuenta pending, no crearse otra")
	assert.Equal(t, entity.UserStatusActive, out.Status)
	assert.Equal(t, "Ana García", out.FullName)
}

func TestRegisterWithInvitation_UsuarioActivoExistenteRechazado(t *testing.T) {
	f := newAuthFixture(t)

	inv1 := f.seedInvitation(t, "ana@colegio.edu", time.Now().Add(48*time.Hour))
	_, err := f.uc.RegisterWithInvitation(context.Background(), dto.RegisterWithInvitationRequest{
		InvitationToken: inv1.Token, FullName: "Ana", Email: "ana@colegio.edu", Password: testPassword,
	})
	require.NoError(t, err)

	inv2 := f.seedInvitation(t, "ana@colegio.edu", time.Now().Add(48*time.Hour))
	_, err = f.uc.RegisterWithInvitation(context.Background(), dto.RegisterWithInvitationRequest{
		InvitationToken: inv2.Token, FullName: "Ana", Email: "ana@colegio.edu", Password: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists,
		"una cuenta ya activa no puede canjear otra invitación")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func seedActiveUser(t *testing.T, f *authFixture, email, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           uuid.NewString(),
		FullName:     "Usuario Test",
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, f.users.Create(u))
	return u
}

func TestLogin_CredencialesValidas(t *testing.T) {
	f := newAuthFixture(t)
	seedActiveUser(t, f, "ana@colegio.edu", testPassword)

	out, err := f.uc.Login(dto.LoginRequest{Email: "ana@colegio.edu", Password: testPassword})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "Bearer", out.TokenType)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	f := newAuthFixture(t)
	seedActiveUser(t, f, "ana@colegio.edu", testPassword)

	_, err := f.uc.Login(dto.LoginRequest{Email: "ana@colegio.edu", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioPendienteBloqueado(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.Register(dto.RegisterRequest{
		FullName: "Ana", Email: "ana@colegio.edu", Password: testPassword,
	})
	require.NoError(t, err)

	_, err = f.uc.Login(dto.LoginRequest{Email: "ana@colegio.edu", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"un usuario pending no debe poder iniciar sesión")
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.Login(dto.LoginRequest{Email: "nadie@colegio.edu", Password: testPassword})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}
