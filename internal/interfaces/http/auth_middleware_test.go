package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issaqr/inventory-qr-api/internal/application/authz"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	apphttp "github.com/issaqr/inventory-qr-api/internal/interfaces/http"
	pkgjwt "github.com/issaqr/inventory-qr-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testSchoolID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "inventory-qr-test"
	testExpMin    = 60
)

// fakeRoleStore asignaciones de rol en memoria; los roles ya no viajan en el
// token, se consultan aquí por petición.
type fakeRoleStore struct {
	roles []*entity.UserRole
}

func (r *fakeRoleStore) Create(ur *entity.UserRole) error {
	r.roles = append(r.roles, ur)
	return nil
}

func (r *fakeRoleStore) Exists(userID string, roleID int16, schoolID string) (bool, error) {
	for _, ur := range r.roles {
		if ur.UserID == userID && ur.RoleID == roleID && (schoolID == "" || ur.SchoolID == schoolID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRoleStore) ListByUser(userID string) ([]*entity.UserRole, error) {
	var out []*entity.UserRole
	for _, ur := range r.roles {
		if ur.UserID == userID {
			out = append(out, ur)
		}
	}
	return out, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - el gate de rol indicado consultando el fakeRoleStore
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(store *fakeRoleStore, gate func(*authz.Authorizer) fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	a := authz.NewAuthorizer(store)
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		gate(a),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// tokenFor genera el header Authorization para un usuario.
func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, "ana@colegio.edu", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func grant(store *fakeRoleStore, userID string, roleID int16, schoolID string) {
	store.roles = append(store.roles, &entity.UserRole{UserID: userID, RoleID: roleID, SchoolID: schoolID})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests gates de rol
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: super_admin accede a ruta de super_admin → HTTP 200.
func TestRequireSuperAdmin_SuperAdminAccede(t *testing.T) {
	store := &fakeRoleStore{}
	grant(store, testUserID, entity.RoleSuperAdmin, testSchoolID)
	app := buildTestApp(store, apphttp.RequireSuperAdmin)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"super_admin debe poder acceder a ruta restringida a super_admin")
}

// Caso 2: school_admin bloqueado en ruta de super_admin → HTTP 403.
func TestRequireSuperAdmin_SchoolAdminBloqueado(t *testing.T) {
	store := &fakeRoleStore{}
	grant(store, testUserID, entity.RoleSchoolAdmin, testSchoolID)
	app := buildTestApp(store, apphttp.RequireSuperAdmin)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"school_admin no debe poder acceder a ruta de super_admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: school_admin de cualquier colegio pasa el gate de admin → HTTP 200.
func TestRequireAdmin_SchoolAdminAccede(t *testing.T) {
	store := &fakeRoleStore{}
	grant(store, testUserID, entity.RoleSchoolAdmin, testSchoolID)
	app := buildTestApp(store, apphttp.RequireAdmin)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"school_admin debe pasar el gate de admin")
}

// Caso 3b: super_admin también pasa el gate de admin → HTTP 200.
func TestRequireAdmin_SuperAdminAccede(t *testing.T) {
	store := &fakeRoleStore{}
	grant(store, testUserID, entity.RoleSuperAdmin, testSchoolID)
	app := buildTestApp(store, apphttp.RequireAdmin)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 4: teacher bloqueado en ruta de admin → HTTP 403.
func TestRequireAdmin_TeacherBloqueado(t *testing.T) {
	store := &fakeRoleStore{}
	grant(store, testUserID, entity.RoleTeacher, testSchoolID)
	app := buildTestApp(store, apphttp.RequireAdmin)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"teacher no debe poder acceder a rutas de administración")
}

// Caso 5: usuario sin asignaciones de rol → HTTP 403.
func TestRequireAdmin_SinRolesBloqueado(t *testing.T) {
	store := &fakeRoleStore{}
	app := buildTestApp(store, apphttp.RequireAdmin)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 6: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeRoleStore{}, apphttp.RequireAdmin)

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 7: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeRoleStore{}, apphttp.RequireAdmin)

	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 8: Esquema distinto de Bearer → HTTP 401.
func TestAuthMiddleware_EsquemaBasicRechazado(t *testing.T) {
	app := buildTestApp(&fakeRoleStore{}, apphttp.RequireAdmin)

	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), testUserID)
}
