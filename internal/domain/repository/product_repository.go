package repository

import "github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	// ListByPack devuelve los productos del paquete de facturación indicado
	// (income | outcome | storage).
	ListByPack(companyID, pack string) ([]*entity.Product, error)
	// FindFullTransit devuelve el producto marcado como línea de tránsito
	// completo; nil sin error si ninguno está configurado.
	FindFullTransit(companyID string) (*entity.Product, error)
	Update(product *entity.Product) error
}
