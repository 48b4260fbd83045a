package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issaqr/inventory-qr-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-123", "ana@colegio.edu", "inventory-qr-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, "ana@colegio.edu", email)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-123", "ana@colegio.edu", "inventory-qr-api", 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err, "un token firmado con otro secreto no debe validar")
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-123", "ana@colegio.edu", "inventory-qr-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, _, err := jwt.Parse(testSecret, "no-es-un-jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacioRechazado(t *testing.T) {
	_, err := jwt.Generate("", "user-123", "ana@colegio.edu", "inventory-qr-api", 60)
	assert.Error(t, err)
}
