package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

const classroomTestSchoolID = "cccccccc-cccc-cccc-cccc-cccccccccccc"

// fakeClassroomStore fake con el índice único (school_id, code) del esquema real.
type fakeClassroomStore struct {
	classrooms map[string]*entity.Classroom
}

func (r *fakeClassroomStore) Create(c *entity.Classroom) error {
	for _, existing := range r.classrooms {
		if existing.DeletedAt == nil && existing.SchoolID == c.SchoolID && existing.Code == c.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.classrooms[c.ID] = &cp
	return nil
}

func (r *fakeClassroomStore) GetByID(id string) (*entity.Classroom, error) {
	if c, ok := r.classrooms[id]; ok && c.DeletedAt == nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeClassroomStore) ListBySchool(schoolID string, limit, offset int) ([]*entity.Classroom, error) {
	var out []*entity.Classroom
	for _, c := range r.classrooms {
		if c.DeletedAt == nil && c.SchoolID == schoolID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeClassroomStore) List(limit, offset int) ([]*entity.Classroom, error) {
	return r.ListBySchool("", limit, offset)
}

func (r *fakeClassroomStore) ListCodes(schoolID string) ([]string, error) {
	var out []string
	for _, c := range r.classrooms {
		if c.DeletedAt == nil && c.SchoolID == schoolID {
			out = append(out, c.Code)
		}
	}
	return out, nil
}

func (r *fakeClassroomStore) Update(c *entity.Classroom) error {
	cp := *c
	r.classrooms[c.ID] = &cp
	return nil
}

func (r *fakeClassroomStore) SoftDelete(id string) error {
	delete(r.classrooms, id)
	return nil
}

type fakeSchoolStore struct {
	schools map[string]*entity.School
}

func (r *fakeSchoolStore) Create(s *entity.School) error { r.schools[s.ID] = s; return nil }
func (r *fakeSchoolStore) GetByID(id string) (*entity.School, error) {
	if s, ok := r.schools[id]; ok {
		return s, nil
	}
	return nil, nil
}
func (r *fakeSchoolStore) List(limit, offset int) ([]*entity.School, error) { return nil, nil }
func (r *fakeSchoolStore) Update(s *entity.School) error                    { return nil }
func (r *fakeSchoolStore) SoftDelete(id string) error                       { return nil }

// fakeReportRepo estos tests solo tocan ClassroomInventory; el resto retorna ceros.
type fakeReportRepo struct {
	inventory *repository.ClassroomInventorySummary
}

func (r *fakeReportRepo) AssetTotals(ctx context.Context, f repository.ReportFilter) (int, decimal.Decimal, error) {
	return 0, decimal.Zero, nil
}
func (r *fakeReportRepo) AssetsByStatus(ctx context.Context, f repository.ReportFilter) ([]repository.AssetStatusCount, error) {
	return nil, nil
}
func (r *fakeReportRepo) AssetsByCategory(ctx context.Context, f repository.ReportFilter) ([]repository.AssetCategoryCount, error) {
	return nil, nil
}
func (r *fakeReportRepo) AssetsBySchool(ctx context.Context, f repository.ReportFilter) ([]repository.AssetSchoolCount, error) {
	return nil, nil
}
func (r *fakeReportRepo) AssetsWithoutTemplate(ctx context.Context, f repository.ReportFilter) (int, error) {
	return 0, nil
}
func (r *fakeReportRepo) TopValuedAssets(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.TopAssetResult, error) {
	return nil, nil
}
func (r *fakeReportRepo) IncidentsByStatus(ctx context.Context, f repository.ReportFilter) ([]repository.IncidentStatusCount, error) {
	return nil, nil
}
func (r *fakeReportRepo) UnresolvedIncidents(ctx context.Context, f repository.ReportFilter) (int, error) {
	return 0, nil
}
func (r *fakeReportRepo) AverageResolutionHours(ctx context.Context, f repository.ReportFilter) (*float64, error) {
	return nil, nil
}
func (r *fakeReportRepo) ClassroomInventory(ctx context.Context, classroomID string) (*repository.ClassroomInventorySummary, error) {
	if r.inventory != nil {
		return r.inventory, nil
	}
	return &repository.ClassroomInventorySummary{TotalValue: decimal.Zero}, nil
}
func (r *fakeReportRepo) Dashboard(ctx context.Context) (*repository.DashboardCounts, error) {
	return &repository.DashboardCounts{}, nil
}
func (r *fakeReportRepo) SubscriptionsByStatus(ctx context.Context) (map[string]int, error) {
	return nil, nil
}

type classroomFixture struct {
	uc      *usecase.ClassroomUseCase
	store   *fakeClassroomStore
	reports *fakeReportRepo
}

func newClassroomFixture(t *testing.T) *classroomFixture {
	t.Helper()
	store := &fakeClassroomStore{classrooms: make(map[string]*entity.Classroom)}
	schools := &fakeSchoolStore{schools: map[string]*entity.School{
		classroomTestSchoolID: {ID: classroomTestSchoolID, Name: "Colegio Central"},
	}}
	reports := &fakeReportRepo{}
	return &classroomFixture{
		uc:      usecase.NewClassroomUseCase(store, schools, reports),
		store:   store,
		reports: reports,
	}
}

func TestClassroomCreate_GeneraCodigoDelNombre(t *testing.T) {
	f := newClassroomFixture(t)

	out, err := f.uc.Create(dto.CreateClassroomRequest{
		SchoolID: classroomTestSchoolID,
		Name:     "Aula de Ciencias",
	})
	require.NoError(t, err)

	assert.Equal(t, "CIE-1", out.Code, "el código se deriva de la palabra significativa del nombre")
}

func TestClassroomCreate_SufijoDesambiguaCodigosRepetidos(t *testing.T) {
	f := newClassroomFixture(t)

	first, err := f.uc.Create(dto.CreateClassroomRequest{SchoolID: classroomTestSchoolID, Name: "Aula de Ciencias"})
	require.NoError(t, err)
	second, err := f.uc.Create(dto.CreateClassroomRequest{SchoolID: classroomTestSchoolID, Name: "Otra de Ciencias"})
	require.NoError(t, err)

	assert.Equal(t, "CIE-1", first.Code)
	assert.Equal(t, "CIE-2", second.Code, "el mismo prefijo en el colegio toma el siguiente sufijo libre")
}

func TestClassroomCreate_ColegioInexistenteRechazado(t *testing.T) {
	f := newClassroomFixture(t)

	_, err := f.uc.Create(dto.CreateClassroomRequest{
		SchoolID: "dddddddd-dddd-dddd-dddd-dddddddddddd",
		Name:     "Aula Fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClassroomUpdate_ElCodigoNoCambia(t *testing.T) {
	f := newClassroomFixture(t)
	created, err := f.uc.Create(dto.CreateClassroomRequest{SchoolID: classroomTestSchoolID, Name: "Aula de Ciencias"})
	require.NoError(t, err)

	nuevoNombre := "Laboratorio de Física"
	out, err := f.uc.Update(created.ID, dto.UpdateClassroomRequest{Name: &nuevoNombre})
	require.NoError(t, err)

	assert.Equal(t, nuevoNombre, out.Name)
	assert.Equal(t, created.Code, out.Code, "renombrar el aula no regenera su código")
}

func TestClassroomInventory_ResumePorEstado(t *testing.T) {
	f := newClassroomFixture(t)
	created, err := f.uc.Create(dto.CreateClassroomRequest{SchoolID: classroomTestSchoolID, Name: "Aula de Ciencias"})
	require.NoError(t, err)

	f.reports.inventory = &repository.ClassroomInventorySummary{
		ByStatus: []repository.AssetStatusCount{
			{Status: entity.AssetStatusAvailable, Count: 7},
			{Status: entity.AssetStatusInRepair, Count: 2},
		},
		TotalCount: 9,
		TotalValue: decimal.NewFromInt(4500),
	}

	out, err := f.uc.Inventory(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, out.ClassroomID)
	assert.Equal(t, 9, out.TotalAssets)
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(4500)))
	require.Len(t, out.ByStatus, 2)
	assert.Equal(t, entity.AssetStatusAvailable, out.ByStatus[0].Status)
	assert.Equal(t, 7, out.ByStatus[0].Count)
}
