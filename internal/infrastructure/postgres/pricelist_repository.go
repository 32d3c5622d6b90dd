package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

var _ repository.PricelistRepository = (*PricelistRepo)(nil)

// PricelistRepo implementación de PricelistRepository sobre PostgreSQL.
type PricelistRepo struct {
	q Querier
}

// NewPricelistRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPricelistRepository(q Querier) *PricelistRepo {
	return &PricelistRepo{q: q}
}

const pricelistColumns = `id, company_id, product_id, min_quantity, fixed_price, date_start, date_end, created_at`

// Create persiste una regla de tarifa diaria.
func (r *PricelistRepo) Create(item *entity.PricelistItem) error {
	query := `
		INSERT INTO pricelist_items (` + pricelistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.ProductID, item.MinQuantity, item.FixedPrice,
		item.DateStart, item.DateEnd, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pricelist item: %w", err)
	}
	return nil
}

// ListByProduct lista las reglas del producto.
func (r *PricelistRepo) ListByProduct(productID string) ([]*entity.PricelistItem, error) {
	query := `SELECT ` + pricelistColumns + ` FROM pricelist_items WHERE product_id = $1 ORDER BY min_quantity`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list pricelist items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PricelistItem
	for rows.Next() {
		var item entity.PricelistItem
		if err := rows.Scan(&item.ID, &item.CompanyID, &item.ProductID, &item.MinQuantity, &item.FixedPrice, &item.DateStart, &item.DateEnd, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pricelist item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// ApplicableRate resuelve en SQL la regla aplicable: la de mayor MinQuantity
// satisfecha por la cantidad, vigente a la fecha. ok = false si ninguna aplica
// (el motor cae entonces al ListPrice del producto).
func (r *PricelistRepo) ApplicableRate(productID string, quantity decimal.Decimal, date time.Time) (decimal.Decimal, bool, error) {
	query := `
		SELECT fixed_price FROM pricelist_items
		WHERE product_id = $1
		  AND min_quantity <= $2
		  AND (date_start IS NULL OR date_start <= $3)
		  AND (date_end IS NULL OR date_end >= $3)
		ORDER BY min_quantity DESC LIMIT 1`
	var rate decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, quantity, date).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("applicable rate: %w", err)
	}
	return rate, true, nil
}
