package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/application/usecase"
)

// ExchangeRateHandler maneja la carga y consulta de tipos de cambio.
// La carga requiere rol admin.
type ExchangeRateHandler struct {
	uc *usecase.ExchangeRateUseCase
}

// NewExchangeRateHandler construye el handler.
func NewExchangeRateHandler(uc *usecase.ExchangeRateUseCase) *ExchangeRateHandler {
	return &ExchangeRateHandler{uc: uc}
}

// Create godoc
// @Summary      Cargar tipo de cambio
// @Tags         exchange-rates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExchangeRateRequest  true  "moneda, fecha, tasa"
// @Success      201   {object}  dto.ExchangeRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/exchange-rates [post]
func (h *ExchangeRateHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateExchangeRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tipos de cambio
// @Tags         exchange-rates
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.ExchangeRateResponse
// @Router       /api/exchange-rates [get]
func (h *ExchangeRateHandler) List(c *fiber.Ctx) error {
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
