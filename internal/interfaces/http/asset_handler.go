package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/application/usecase"
	"github.com/issaqr/inventory-qr-api/pkg/validate"
)

// AssetHandler maneja las peticiones HTTP para Asset, su historial y sus QR.
type AssetHandler struct {
	uc   *usecase.AssetUseCase
	qrUC *usecase.QRUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *usecase.AssetUseCase, qrUC *usecase.QRUseCase) *AssetHandler {
	return &AssetHandler{uc: uc, qrUC: qrUC}
}

// Create godoc
// @Summary      Crear activo (registra evento y genera su QR)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "Datos del activo"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener activo por ID (excluye dados de baja)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activo no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar activos vigentes (opcionalmente por aula)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        classroom_id  query  string  false  "Filtrar por aula"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200           {object}  dto.AssetListResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.List(c.Query("classroom_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar activo (registra diff campo a campo como evento)
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.UpdateAssetRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AssetResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activo no encontrado"})
	}
	return c.JSON(out)
}

// PatchImage godoc
// @Summary      Actualizar solo la imagen del activo
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.PatchAssetImageRequest  true  "URL de la imagen"
// @Success      200   {object}  dto.AssetResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/image [patch]
func (h *AssetHandler) PatchImage(c *fiber.Ctx) error {
	var in dto.PatchAssetImageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.PatchImage(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activo no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja el activo (soft delete + evento)
// @Tags         assets
// @Security     Bearer
// @Param        id  path  string  true  "ID del activo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkUpdate godoc
// @Summary      Actualizar varios activos; devuelve procesados y fallidos
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateAssetsRequest  true  "IDs y campos a aplicar"
// @Success      200   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assets/bulk-update [post]
func (h *AssetHandler) BulkUpdate(c *fiber.Ctx) error {
	var in dto.BulkUpdateAssetsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.BulkUpdate(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkDelete godoc
// @Summary      Dar de baja varios activos; devuelve procesados y fallidos
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkDeleteAssetsRequest  true  "IDs a dar de baja"
// @Success      200   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assets/bulk-delete [post]
func (h *AssetHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteAssetsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validate.Message(err)})
	}
	out, err := h.uc.BulkDelete(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Events godoc
// @Summary      Historial de eventos del activo (consultable tras la baja)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del activo"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.AssetEventListResponse
// @Router       /api/assets/{id}/events [get]
func (h *AssetHandler) Events(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.Events(c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetQR godoc
// @Summary      Obtener el QR del activo (lo crea si no existe)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.QRCodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/qr-codes [get]
func (h *AssetHandler) GetQR(c *fiber.Ctx) error {
	out, err := h.qrUC.GetOrCreate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activo no encontrado"})
	}
	return c.JSON(out)
}

// RegenerateQR godoc
// @Summary      Regenerar el QR in-place (nunca crea una segunda fila)
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.QRCodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/qr-codes/regenerate [post]
func (h *AssetHandler) RegenerateQR(c *fiber.Ctx) error {
	out, err := h.qrUC.Regenerate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "activo no encontrado"})
	}
	return c.JSON(out)
}
