package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/internal/domain"
)

func newQRFixture(t *testing.T) (*usecase.QRUseCase, *assetFixture) {
	t.Helper()
	f := newAssetFixture(t)
	return usecase.NewQRUseCase(f.uc, f.qrs, f.assets), f
}

func TestQRRegenerate_ActualizaLaFilaExistente(t *testing.T) {
	qrUC, f := newQRFixture(t)
	asset := f.createAsset(t, "SN-QR-1")

	original, err := f.qrs.GetByAssetID(asset.ID)
	require.NoError(t, err)
	require.NotNil(t, original)

	// Simula una imagen desactualizada para observar el refresco.
	original.QRURL = "data:image/png;base64,dmllam8="

	out, err := qrUC.Regenerate(asset.ID)
	require.NoError(t, err)

	assert.Equal(t, original.ID, out.ID, "regenerar reutiliza la fila, no crea otra")
	assert.Equal(t, "data:image/png;base64,ZmFrZQ==", out.QRURL)
	assert.Len(t, f.qrs.byAsset, 1, "nunca hay más de una fila de QR por activo")
}

func TestQRRegenerate_CreaLaFilaSiFalta(t *testing.T) {
	qrUC, f := newQRFixture(t)
	asset := f.createAsset(t, "SN-QR-2")

	// El QR pudo no crearse (fallo del generador al crear el activo).
	delete(f.qrs.byAsset, asset.ID)

	out, err := qrUC.Regenerate(asset.ID)
	require.NoError(t, err)

	assert.Equal(t, asset.ID, out.AssetID)
	assert.Len(t, f.qrs.byAsset, 1)
}

func TestQRRegenerate_ActivoInexistenteRetornaNotFound(t *testing.T) {
	qrUC, _ := newQRFixture(t)

	_, err := qrUC.Regenerate("99999999-9999-9999-9999-999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQRGetOrCreate_NoDuplicaLaFila(t *testing.T) {
	qrUC, f := newQRFixture(t)
	asset := f.createAsset(t, "SN-QR-3")

	first, err := qrUC.GetOrCreate(asset.ID)
	require.NoError(t, err)
	second, err := qrUC.GetOrCreate(asset.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.qrs.byAsset, 1)
}
