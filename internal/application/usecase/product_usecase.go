package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de servicios facturables.
type ProductUseCase struct {
	repo          repository.ProductRepository
	pricelistRepo repository.PricelistRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, pricelistRepo repository.PricelistRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, pricelistRepo: pricelistRepo}
}

// Create crea un producto. El modo de facturación es una variante cerrada:
// NONE, STORAGE o DECLARED_VALUE, cualquier otro valor se rechaza.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	mode := entity.BillingMode(in.BillingMode)
	if in.BillingMode == "" {
		mode = entity.BillingModeNone
	}
	if !mode.Valid() {
		return nil, domain.ErrInvalidInput
	}
	switch in.InvoicePack {
	case entity.InvoicePackNone, entity.InvoicePackIncome, entity.InvoicePackOutcome, entity.InvoicePackStorage:
	default:
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		SKU:                 in.SKU,
		Name:                in.Name,
		Description:         in.Description,
		BillingMode:         mode,
		InvoicePack:         in.InvoicePack,
		ListPrice:           in.ListPrice,
		DefaultMinimumPrice: in.DefaultMinimumPrice,
		GroupFolders:        in.GroupFolders,
		FullTransitProduct:  in.FullTransitProduct,
		UnitMeasure:         in.UnitMeasure,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// Update actualiza la configuración de facturación del producto.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.BillingMode != nil {
		mode := entity.BillingMode(*in.BillingMode)
		if !mode.Valid() {
			return nil, domain.ErrInvalidInput
		}
		product.BillingMode = mode
	}
	if in.InvoicePack != nil {
		switch *in.InvoicePack {
		case entity.InvoicePackNone, entity.InvoicePackIncome, entity.InvoicePackOutcome, entity.InvoicePackStorage:
			product.InvoicePack = *in.InvoicePack
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.ListPrice != nil {
		product.ListPrice = *in.ListPrice
	}
	if in.DefaultMinimumPrice != nil {
		product.DefaultMinimumPrice = *in.DefaultMinimumPrice
	}
	if in.GroupFolders != nil {
		product.GroupFolders = *in.GroupFolders
	}
	if in.FullTransitProduct != nil {
		product.FullTransitProduct = *in.FullTransitProduct
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista los productos de la empresa.
func (uc *ProductUseCase) List(companyID string, limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// AddPricelistItem agrega una regla de tarifa diaria al producto.
func (uc *ProductUseCase) AddPricelistItem(companyID, productID string, in dto.CreatePricelistItemRequest) (*dto.PricelistItemResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !in.FixedPrice.IsPositive() || in.MinQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item := &entity.PricelistItem{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ProductID:   productID,
		MinQuantity: in.MinQuantity,
		FixedPrice:  in.FixedPrice,
		DateStart:   in.DateStart,
		DateEnd:     in.DateEnd,
		CreatedAt:   time.Now(),
	}
	if err := uc.pricelistRepo.Create(item); err != nil {
		return nil, err
	}
	return toPricelistItemResponse(item), nil
}

// ListPricelist lista las reglas de tarifa diaria del producto.
func (uc *ProductUseCase) ListPricelist(companyID, productID string) ([]*dto.PricelistItemResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.pricelistRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PricelistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toPricelistItemResponse(item))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                  p.ID,
		CompanyID:           p.CompanyID,
		SKU:                 p.SKU,
		Name:                p.Name,
		Description:         p.Description,
		BillingMode:         string(p.BillingMode),
		InvoicePack:         p.InvoicePack,
		ListPrice:           p.ListPrice,
		DefaultMinimumPrice: p.DefaultMinimumPrice,
		GroupFolders:        p.GroupFolders,
		FullTransitProduct:  p.FullTransitProduct,
		UnitMeasure:         p.UnitMeasure,
	}
}

func toPricelistItemResponse(item *entity.PricelistItem) *dto.PricelistItemResponse {
	return &dto.PricelistItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		MinQuantity: item.MinQuantity,
		FixedPrice:  item.FixedPrice,
		DateStart:   item.DateStart,
		DateEnd:     item.DateEnd,
	}
}
