package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// TemplateUseCase casos de uso para plantillas de activos.
type TemplateUseCase struct {
	repo         repository.AssetTemplateRepository
	categoryRepo repository.AssetCategoryRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(repo repository.AssetTemplateRepository, categoryRepo repository.AssetCategoryRepository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea una plantilla; si trae categoría, valida que exista.
func (uc *TemplateUseCase) Create(in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	template := &entity.AssetTemplate{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Description:  in.Description,
		CategoryID:   in.CategoryID,
		Manufacturer: in.Manufacturer,
		ModelNumber:  in.ModelNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(template); err != nil {
		return nil, err
	}
	return toTemplateResponse(template), nil
}

// GetByID obtiene una plantilla por ID.
func (uc *TemplateUseCase) GetByID(id string) (*dto.TemplateResponse, error) {
	template, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	return toTemplateResponse(template), nil
}

// List lista plantillas, opcionalmente filtradas por categoría.
func (uc *TemplateUseCase) List(categoryID string, page dto.PageRequest) (*dto.TemplateListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.AssetTemplate
		err  error
	)
	if categoryID != "" {
		list, err = uc.repo.ListByCategory(categoryID, page.Limit, page.Offset)
	} else {
		list, err = uc.repo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTemplateResponse(t))
	}
	return &dto.TemplateListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func toTemplateResponse(t *entity.AssetTemplate) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		CategoryID:   t.CategoryID,
		Manufacturer: t.Manufacturer,
		ModelNumber:  t.ModelNumber,
		CreatedAt:    t.CreatedAt,
	}
}
