package repository

import "github.com/issaqr/inventory-qr-api/internal/domain/entity"

// AssetCategoryRepository puerto para categorías de activos.
type AssetCategoryRepository interface {
	Create(category *entity.AssetCategory) error
	GetByID(id string) (*entity.AssetCategory, error)
	GetByName(name string) (*entity.AssetCategory, error)
	List(limit, offset int) ([]*entity.AssetCategory, error)
}

// AssetTemplateRepository puerto para plantillas de activos.
type AssetTemplateRepository interface {
	Create(template *entity.AssetTemplate) error
	GetByID(id string) (*entity.AssetTemplate, error)
	List(limit, offset int) ([]*entity.AssetTemplate, error)
	ListByCategory(categoryID string, limit, offset int) ([]*entity.AssetTemplate, error)
}

// AssetRepository puerto para activos. Get/List excluyen soft-deleted.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	List(limit, offset int) ([]*entity.Asset, error)
	ListByClassroom(classroomID string, limit, offset int) ([]*entity.Asset, error)
	Update(asset *entity.Asset) error
}

// AssetEventRepository bitácora append-only: solo Create y lecturas.
type AssetEventRepository interface {
	Create(event *entity.AssetEvent) error
	ListByAsset(assetID string, limit, offset int) ([]*entity.AssetEvent, error)
}

// QRCodeRepository puerto para códigos QR (1:1 con asset).
type QRCodeRepository interface {
	Create(qr *entity.QRCode) error
	GetByAssetID(assetID string) (*entity.QRCode, error)
	GetByID(id string) (*entity.QRCode, error)
	// Update sobrescribe imagen y payload en la fila existente (regeneración in-place).
	Update(qr *entity.QRCode) error
}
