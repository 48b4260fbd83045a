package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	apphttp "github.com/issaqr/inventory-qr-api/internal/interfaces/http"
)

// fakeCategoryStore fake en memoria con el nombre único del esquema real.
type fakeCategoryStore struct {
	categories map[string]*entity.AssetCategory
}

func (r *fakeCategoryStore) Create(c *entity.AssetCategory) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryStore) GetByID(id string) (*entity.AssetCategory, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, nil
}

func (r *fakeCategoryStore) GetByName(name string) (*entity.AssetCategory, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryStore) List(limit, offset int) ([]*entity.AssetCategory, error) {
	return nil, nil
}

func buildCategoryApp() *fiber.App {
	app := fiber.New()
	store := &fakeCategoryStore{categories: make(map[string]*entity.AssetCategory)}
	handler := apphttp.NewCatalogHandler(usecase.NewCategoryUseCase(store), nil)
	app.Post("/categories", handler.CreateCategory)
	return app
}

func postCategory(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateCategory_Creada(t *testing.T) {
	app := buildCategoryApp()

	resp := postCategory(t, app, `{"name":"Mobiliario"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

// El nombre repetido es entrada inválida: 400, no 409.
func TestCreateCategory_NombreRepetidoRetorna400(t *testing.T) {
	app := buildCategoryApp()

	resp := postCategory(t, app, `{"name":"Mobiliario"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postCategory(t, app, `{"name":"Mobiliario"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"crear dos veces la misma categoría debe responder 400")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "DUPLICATE",
		"la respuesta debe llevar el código DUPLICATE")
}

func TestCreateCategory_NombreVacioRechazado(t *testing.T) {
	app := buildCategoryApp()

	resp := postCategory(t, app, `{"name":""}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
