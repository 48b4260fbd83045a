package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssetRepo struct {
	assets map[string]*entity.Asset
}

func (r *fakeAssetRepo) Create(a *entity.Asset) error {
	cp := *a
	r.assets[a.ID] = &cp
	return nil
}

func (r *fakeAssetRepo) GetByID(id string) (*entity.Asset, error) {
	if a, ok := r.assets[id]; ok && a.DeletedAt == nil {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAssetRepo) List(limit, offset int) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for _, a := range r.assets {
		if a.DeletedAt == nil {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) ListByClassroom(classroomID string, limit, offset int) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for _, a := range r.assets {
		if a.DeletedAt == nil && a.ClassroomID == classroomID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAssetRepo) Update(a *entity.Asset) error {
	cp := *a
	r.assets[a.ID] = &cp
	return nil
}

type fakeClassroomRepo struct {
	classrooms map[string]*entity.Classroom
}

func (r *fakeClassroomRepo) Create(c *entity.Classroom) error { r.classrooms[c.ID] = c; return nil }
func (r *fakeClassroomRepo) GetByID(id string) (*entity.Classroom, error) {
	if c, ok := r.classrooms[id]; ok {
		return c, nil
	}
	return nil, nil
}
func (r *fakeClassroomRepo) ListBySchool(schoolID string, limit, offset int) ([]*entity.Classroom, error) {
	return nil, nil
}
func (r *fakeClassroomRepo) List(limit, offset int) ([]*entity.Classroom, error) { return nil, nil }
func (r *fakeClassroomRepo) ListCodes(schoolID string) ([]string, error)         { return nil, nil }
func (r *fakeClassroomRepo) Update(c *entity.Classroom) error                    { return nil }
func (r *fakeClassroomRepo) SoftDelete(id string) error                          { return nil }

type fakeTemplateRepo struct {
	templates map[string]*entity.AssetTemplate
}

func (r *fakeTemplateRepo) Create(t *entity.AssetTemplate) error { r.templates[t.ID] = t; return nil }
func (r *fakeTemplateRepo) GetByID(id string) (*entity.AssetTemplate, error) {
	if t, ok := r.templates[id]; ok {
		return t, nil
	}
	return nil, nil
}
func (r *fakeTemplateRepo) List(limit, offset int) ([]*entity.AssetTemplate, error) {
	return nil, nil
}
func (r *fakeTemplateRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.AssetTemplate, error) {
	return nil, nil
}

type fakeEventRepo struct {
	events []*entity.AssetEvent
}

func (r *fakeEventRepo) Create(e *entity.AssetEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeEventRepo) ListByAsset(assetID string, limit, offset int) ([]*entity.AssetEvent, error) {
	var out []*entity.AssetEvent
	for _, e := range r.events {
		if e.AssetID == assetID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) byType(assetID, eventType string) []*entity.AssetEvent {
	var out []*entity.AssetEvent
	for _, e := range r.events {
		if e.AssetID == assetID && e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeQRRepo struct {
	byAsset map[string]*entity.QRCode
}

func (r *fakeQRRepo) Create(qr *entity.QRCode) error {
	if _, ok := r.byAsset[qr.AssetID]; ok {
		return domain.ErrDuplicate
	}
	r.byAsset[qr.AssetID] = qr
	return nil
}

func (r *fakeQRRepo) GetByAssetID(assetID string) (*entity.QRCode, error) {
	if qr, ok := r.byAsset[assetID]; ok {
		return qr, nil
	}
	return nil, nil
}

func (r *fakeQRRepo) GetByID(id string) (*entity.QRCode, error) {
	for _, qr := range r.byAsset {
		if qr.ID == id {
			return qr, nil
		}
	}
	return nil, nil
}

func (r *fakeQRRepo) Update(qr *entity.QRCode) error {
	r.byAsset[qr.AssetID] = qr
	return nil
}

type fakeQRGen struct{ calls int }

func (g *fakeQRGen) GenerateDataURI(url string) (string, error) {
	g.calls++
	return "data:image/png;base64,ZmFrZQ==", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	assetTestClassroomID = "66666666-6666-6666-6666-666666666666"
	assetTestActorID     = "77777777-7777-7777-7777-777777777777"
)

type assetFixture struct {
	uc     *usecase.AssetUseCase
	assets *fakeAssetRepo
	events *fakeEventRepo
	qrs    *fakeQRRepo
	qrGen  *fakeQRGen
}

func newAssetFixture(t *testing.T) *assetFixture {
	t.Helper()
	assets := &fakeAssetRepo{assets: make(map[string]*entity.Asset)}
	classrooms := &fakeClassroomRepo{classrooms: map[string]*entity.Classroom{
		assetTestClassroomID: {ID: assetTestClassroomID, Name: "Aula 101"},
	}}
	templates := &fakeTemplateRepo{templates: make(map[string]*entity.AssetTemplate)}
	events := &fakeEventRepo{}
	qrs := &fakeQRRepo{byAsset: make(map[string]*entity.QRCode)}
	qrGen := &fakeQRGen{}
	uc := usecase.NewAssetUseCase(
		assets, classrooms, templates, events, qrs, qrGen,
		logger.New(logger.Config{Env: "production", Level: "error"}),
		"https://inventario.example.com",
	)
	return &assetFixture{uc: uc, assets: assets, events: events, qrs: qrs, qrGen: qrGen}
}

func (f *assetFixture) createAsset(t *testing.T, serial string) *dto.AssetResponse {
	t.Helper()
	out, err := f.uc.Create(assetTestActorID, dto.CreateAssetRequest{
		ClassroomID:  assetTestClassroomID,
		SerialNumber: serial,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestAssetCreate_RegistraEventoYGeneraQR(t *testing.T) {
	f := newAssetFixture(t)

	out := f.createAsset(t, "SN-001")

	assert.Equal(t, entity.AssetStatusAvailable, out.Status, "sin estado explícito nace available")
	assert.Len(t, f.events.byType(out.ID, entity.AssetEventCreated), 1)

	qr, _ := f.qrs.GetByAssetID(out.ID)
	require.NotNil(t, qr, "crear el activo genera su QR 1:1")
	assert.Contains(t, qr.QRURL, "data:image/png;base64,")

	var payload entity.QRPayload
	require.NoError(t, json.Unmarshal(qr.Payload, &payload))
	assert.Equal(t, out.ID, payload.AssetID)
	assert.Equal(t, "https://inventario.example.com/assets/"+out.ID, payload.AssetURL)
}

func TestAssetCreate_AulaInexistenteRechazada(t *testing.T) {
	f := newAssetFixture(t)

	_, err := f.uc.Create(assetTestActorID, dto.CreateAssetRequest{
		ClassroomID:  "88888888-8888-8888-8888-888888888888",
		SerialNumber: "SN-001",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssetCreate_EstadoInvalidoRechazado(t *testing.T) {
	f := newAssetFixture(t)

	_, err := f.uc.Create(assetTestActorID, dto.CreateAssetRequest{
		ClassroomID:  assetTestClassroomID,
		SerialNumber: "SN-001",
		Status:       "roto",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización y diff de auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestAssetUpdate_DiffSoloCamposCambiados(t *testing.T) {
	f := newAssetFixture(t)
	created := f.createAsset(t, "SN-001")

	nuevoSerial := "SN-002"
	mismoStatus := entity.AssetStatusAvailable
	_, err := f.uc.Update(assetTestActorID, created.ID, dto.UpdateAssetRequest{
		SerialNumber: &nuevoSerial,
		Status:       &mismoStatus, // igual al actual: no debe entrar al diff
	})
	require.NoError(t, err)

	updates := f.events.byType(created.ID, entity.AssetEventUpdated)
	require.Len(t, updates, 1)

	var diff map[string]map[string]any
	require.NoError(t, json.Unmarshal(updates[0].Metadata, &diff))
	require.Contains(t, diff, "serial_number")
	assert.Equal(t, "SN-001", diff["serial_number"]["old"])
	assert.Equal(t, "SN-002", diff["serial_number"]["new"])
	assert.NotContains(t, diff, "status", "un campo con el mismo valor no entra al diff")
}

func TestAssetUpdate_SinCambiosNoRegistraEvento(t *testing.T) {
	f := newAssetFixture(t)
	created := f.createAsset(t, "SN-001")

	mismoSerial := "SN-001"
	_, err := f.uc.Update(assetTestActorID, created.ID, dto.UpdateAssetRequest{
		SerialNumber: &mismoSerial,
	})
	require.NoError(t, err)

	assert.Empty(t, f.events.byType(created.ID, entity.AssetEventUpdated),
		"una actualización sin cambios efectivos no genera evento")
}

func TestAssetUpdate_CambioDeEstadoAuditado(t *testing.T) {
	f := newAssetFixture(t)
	created := f.createAsset(t, "SN-001")

	enReparacion := entity.AssetStatusInRepair
	out, err := f.uc.Update(assetTestActorID, created.ID, dto.UpdateAssetRequest{Status: &enReparacion})
	require.NoError(t, err)

	assert.Equal(t, entity.AssetStatusInRepair, out.Status)

	updates := f.events.byType(created.ID, entity.AssetEventUpdated)
	require.Len(t, updates, 1)
	var diff map[string]map[string]any
	require.NoError(t, json.Unmarshal(updates[0].Metadata, &diff))
	assert.Equal(t, entity.AssetStatusAvailable, diff["status"]["old"])
	assert.Equal(t, entity.AssetStatusInRepair, diff["status"]["new"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Soft delete
// ──────────────────────────────────────────────────────────────────────────────

func TestAssetDelete_SoftDeleteConDecomiso(t *testing.T) {
	f := newAssetFixture(t)
	created := f.createAsset(t, "SN-001")

	require.NoError(t, f.uc.Delete(assetTestActorID, created.ID))

	stored := f.assets.assets[created.ID]
	require.NotNil(t, stored.DeletedAt, "delete es soft: la fila queda con deleted_at")
	assert.Equal(t, entity.AssetStatusDecommissioned, stored.Status)

	_, err := f.uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un activo eliminado desaparece de las lecturas")

	assert.Len(t, f.events.byType(created.ID, entity.AssetEventDeleted), 1)
}

func TestAssetDelete_HistorialSigueConsultable(t *testing.T) {
	f := newAssetFixture(t)
	created := f.createAsset(t, "SN-001")
	require.NoError(t, f.uc.Delete(assetTestActorID, created.ID))

	out, err := f.uc.Events(created.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2, "created + deleted sobreviven al soft delete")
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones masivas
// ──────────────────────────────────────────────────────────────────────────────

func TestAssetBulkDelete_ReportaFallosSinAbortar(t *testing.T) {
	f := newAssetFixture(t)
	a := f.createAsset(t, "SN-001")
	b := f.createAsset(t, "SN-002")

	out, err := f.uc.BulkDelete(assetTestActorID, dto.BulkDeleteAssetsRequest{
		IDs: []string{a.ID, "99999999-9999-9999-9999-999999999999", b.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Processed)
	assert.Equal(t, []string{"99999999-9999-9999-9999-999999999999"}, out.Failed,
		"el ID inexistente se reporta y el resto se procesa")
}
