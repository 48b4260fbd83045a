package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// SchoolUseCase casos de uso CRUD para colegios (tenant raíz).
type SchoolUseCase struct {
	repo repository.SchoolRepository
}

// NewSchoolUseCase construye el caso de uso.
func NewSchoolUseCase(repo repository.SchoolRepository) *SchoolUseCase {
	return &SchoolUseCase{repo: repo}
}

// Create crea un colegio.
func (uc *SchoolUseCase) Create(in dto.CreateSchoolRequest) (*dto.SchoolResponse, error) {
	now := time.Now()
	school := &entity.School{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(school); err != nil {
		return nil, err
	}
	return toSchoolResponse(school), nil
}

// GetByID obtiene un colegio por ID.
func (uc *SchoolUseCase) GetByID(id string) (*dto.SchoolResponse, error) {
	school, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	return toSchoolResponse(school), nil
}

// List lista colegios con paginación.
func (uc *SchoolUseCase) List(page dto.PageRequest) (*dto.SchoolListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SchoolResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSchoolResponse(s))
	}
	return &dto.SchoolListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update actualización parcial de colegio.
func (uc *SchoolUseCase) Update(id string, in dto.UpdateSchoolRequest) (*dto.SchoolResponse, error) {
	school, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if school == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		school.Name = *in.Name
	}
	if in.Address != nil {
		school.Address = *in.Address
	}
	if in.Description != nil {
		school.Description = *in.Description
	}
	if in.LogoURL != nil {
		school.LogoURL = *in.LogoURL
	}
	school.UpdatedAt = time.Now()
	if err := uc.repo.Update(school); err != nil {
		return nil, err
	}
	return toSchoolResponse(school), nil
}

// Delete soft delete del colegio.
func (uc *SchoolUseCase) Delete(id string) error {
	school, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if school == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

func toSchoolResponse(s *entity.School) *dto.SchoolResponse {
	return &dto.SchoolResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Description: s.Description,
		LogoURL:     s.LogoURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
