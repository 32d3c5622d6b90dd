package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/billing"
	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
)

// InvoiceHandler maneja la creación y consulta de facturas, el PDF,
// la corrida de almacenamiento y el recálculo de renglones.
type InvoiceHandler struct {
	createUC  *billing.CreateInvoiceUseCase
	storageUC *billing.StorageInvoiceUseCase
	pdfUC     *billing.PDFUseCase
	pricer    *billing.PricingService
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(
	createUC *billing.CreateInvoiceUseCase,
	storageUC *billing.StorageInvoiceUseCase,
	pdfUC *billing.PDFUseCase,
	pricer *billing.PricingService,
) *InvoiceHandler {
	return &InvoiceHandler{createUC: createUC, storageUC: storageUC, pdfUC: pdfUC, pricer: pricer}
}

// Create godoc
// @Summary      Crear factura de ingreso o egreso desde carpetas
// @Description  Tarifa cada renglón con el resolutor de tarifas y aplica la política de precio mínimo. Si falta el tipo de cambio para un producto por valor declarado devuelve 422 y no persiste nada.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "tipo, cliente, carpetas"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreateInvoice(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura con sus renglones
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.createUC.GetInvoice(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.pdfUC.InvoicePDF(c.Context(), companyID, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// StorageRun godoc
// @Summary      Corrida de facturación de almacenamiento
// @Description  Factura las carpetas abiertas de todos los clientes. Un cliente que falla no aborta la corrida: queda registrado en failures y la corrida continúa.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StorageRunResponse
// @Router       /api/invoices/storage-run [post]
func (h *InvoiceHandler) StorageRun(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.storageUC.Run(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecomputeLine godoc
// @Summary      Recalcular precio de un renglón de factura
// @Description  Vuelve a resolver tarifa y mínimo con los datos actuales del renglón y persiste cantidad, precio unitario y subtotal.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id       path  string  true  "ID de la factura"
// @Param        line_id  path  string  true  "ID del renglón"
// @Success      200  {object}  dto.RecomputeLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/lines/{line_id}/recompute [post]
func (h *InvoiceHandler) RecomputeLine(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	invoiceID := c.Params("id")
	lineID := c.Params("line_id")
	if invoiceID == "" || lineID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id y line_id son requeridos"})
	}
	out, err := h.pricer.RecomputeLine(c.Context(), companyID, invoiceID, lineID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
