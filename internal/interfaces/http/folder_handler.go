package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/application/usecase"
)

// FolderHandler maneja las peticiones HTTP para carpetas de tránsito.
type FolderHandler struct {
	uc *usecase.FolderUseCase
}

// NewFolderHandler construye el handler.
func NewFolderHandler(uc *usecase.FolderUseCase) *FolderHandler {
	return &FolderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear carpeta de tránsito
// @Tags         folders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFolderRequest  true  "Datos de la carpeta"
// @Success      201   {object}  dto.FolderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/folders [post]
func (h *FolderHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateFolderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener carpeta por ID
// @Tags         folders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la carpeta"
// @Success      200  {object}  dto.FolderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/folders/{id} [get]
func (h *FolderHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar carpetas
// @Tags         folders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.FolderResponse
// @Router       /api/folders [get]
func (h *FolderHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(companyID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetDaysInvoiced godoc
// @Summary      Registrar días a facturar de una carpeta
// @Description  Cero es un valor válido y significa que el almacenamiento no se cobra.
// @Tags         folders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la carpeta"
// @Param        body  body  dto.SetDaysInvoicedRequest  true  "Días a facturar"
// @Success      200   {object}  dto.FolderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/folders/{id}/days-invoiced [put]
func (h *FolderHandler) SetDaysInvoiced(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SetDaysInvoicedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetDaysInvoiced(companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del tránsito de una carpeta
// @Description  Marca o desmarca tránsito completo, egreso completo y cierre. Cerrar la carpeta la excluye de la corrida de almacenamiento; el egreso completo bloquea nuevas facturas de egreso.
// @Tags         folders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la carpeta"
// @Param        body  body  dto.UpdateFolderStatusRequest  true  "Indicadores a cambiar"
// @Success      200   {object}  dto.FolderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/folders/{id}/status [put]
func (h *FolderHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateFolderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetEntryDate godoc
// @Summary      Registrar fecha de ingreso de una carpeta
// @Tags         folders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la carpeta"
// @Param        body  body  dto.SetEntryDateRequest  true  "Fecha de ingreso"
// @Success      200   {object}  dto.FolderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/folders/{id}/entry-date [put]
func (h *FolderHandler) SetEntryDate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SetEntryDateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetEntryDate(companyID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
