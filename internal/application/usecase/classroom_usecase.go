package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// ClassroomUseCase casos de uso CRUD para aulas, generación de código único
// por colegio y resumen de inventario.
type ClassroomUseCase struct {
	repo       repository.ClassroomRepository
	schoolRepo repository.SchoolRepository
	reportRepo repository.ReportRepository
}

// NewClassroomUseCase construye el caso de uso.
func NewClassroomUseCase(
	repo repository.ClassroomRepository,
	schoolRepo repository.SchoolRepository,
	reportRepo repository.ReportRepository,
) *ClassroomUseCase {
	return &ClassroomUseCase{repo: repo, schoolRepo: schoolRepo, reportRepo: reportRepo}
}

// Create crea un aula. El código se genera del nombre y se desambigua con
// un sufijo numérico; la carrera sobre el índice único se reintenta una vez.
func (uc *ClassroomUseCase) Create(in dto.CreateClassroomRequest) (*dto.ClassroomResponse, error) {
	school, err := uc.schoolRepo.GetByID(in.SchoolID)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	code, err := uc.generateCode(in.SchoolID, in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	classroom := &entity.Classroom{
		ID:          uuid.New().String(),
		SchoolID:    in.SchoolID,
		Code:        code,
		Name:        in.Name,
		Capacity:    in.Capacity,
		Responsible: in.Responsible,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(classroom); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			classroom.Code, err = uc.generateCode(in.SchoolID, in.Name)
			if err != nil {
				return nil, err
			}
			if err := uc.repo.Create(classroom); err != nil {
				return nil, err
			}
			return toClassroomResponse(classroom), nil
		}
		return nil, err
	}
	return toClassroomResponse(classroom), nil
}

// GetByID obtiene un aula por ID.
func (uc *ClassroomUseCase) GetByID(id string) (*dto.ClassroomResponse, error) {
	classroom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, domain.ErrNotFound
	}
	return toClassroomResponse(classroom), nil
}

// List lista aulas, opcionalmente filtradas por colegio.
func (uc *ClassroomUseCase) List(schoolID string, page dto.PageRequest) (*dto.ClassroomListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Classroom
		err  error
	)
	if schoolID != "" {
		list, err = uc.repo.ListBySchool(schoolID, page.Limit, page.Offset)
	} else {
		list, err = uc.repo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClassroomResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClassroomResponse(c))
	}
	return &dto.ClassroomListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update actualización parcial; el código nunca cambia.
func (uc *ClassroomUseCase) Update(id string, in dto.UpdateClassroomRequest) (*dto.ClassroomResponse, error) {
	classroom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		classroom.Name = *in.Name
	}
	if in.Capacity != nil {
		classroom.Capacity = in.Capacity
	}
	if in.Responsible != nil {
		classroom.Responsible = *in.Responsible
	}
	if in.ImageURL != nil {
		classroom.ImageURL = *in.ImageURL
	}
	classroom.UpdatedAt = time.Now()
	if err := uc.repo.Update(classroom); err != nil {
		return nil, err
	}
	return toClassroomResponse(classroom), nil
}

// Delete soft delete del aula.
func (uc *ClassroomUseCase) Delete(id string) error {
	classroom, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if classroom == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

// Inventory resume el inventario del aula: conteo por estado y valor total.
func (uc *ClassroomUseCase) Inventory(ctx context.Context, id string) (*dto.ClassroomInventoryResponse, error) {
	classroom, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, domain.ErrNotFound
	}
	summary, err := uc.reportRepo.ClassroomInventory(ctx, id)
	if err != nil {
		return nil, err
	}
	byStatus := make([]dto.StatusCountResponse, 0, len(summary.ByStatus))
	for _, sc := range summary.ByStatus {
		byStatus = append(byStatus, dto.StatusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	return &dto.ClassroomInventoryResponse{
		ClassroomID: classroom.ID,
		Name:        classroom.Name,
		Code:        classroom.Code,
		TotalAssets: summary.TotalCount,
		ByStatus:    byStatus,
		TotalValue:  summary.TotalValue,
	}, nil
}

// generateCode deriva un prefijo de tres letras del nombre (sin acentos) y
// le añade el menor sufijo libre en el colegio: "Aula de Ciencias" → CIE-1.
func (uc *ClassroomUseCase) generateCode(schoolID, name string) (string, error) {
	prefix := codePrefix(name)
	existing, err := uc.repo.ListCodes(schoolID)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(existing))
	for _, c := range existing {
		taken[c] = true
	}
	for i := 1; ; i++ {
		code := fmt.Sprintf("%s-%d", prefix, i)
		if !taken[code] {
			return code, nil
		}
	}
}

// codePrefix toma las tres primeras letras de la palabra más significativa
// del nombre (la última de más de dos letras), en mayúsculas.
func codePrefix(name string) string {
	words := strings.Fields(foldAccents(name))
	pick := ""
	for _, w := range words {
		letters := make([]rune, 0, len(w))
		for _, r := range w {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				letters = append(letters, r)
			}
		}
		if len(letters) > 2 {
			pick = string(letters)
		}
	}
	if pick == "" {
		pick = "aul"
	}
	if len(pick) > 3 {
		pick = pick[:3]
	}
	return strings.ToUpper(pick)
}

func toClassroomResponse(c *entity.Classroom) *dto.ClassroomResponse {
	return &dto.ClassroomResponse{
		ID:          c.ID,
		SchoolID:    c.SchoolID,
		Code:        c.Code,
		Name:        c.Name,
		Capacity:    c.Capacity,
		Responsible: c.Responsible,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
