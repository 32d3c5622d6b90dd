package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

var _ repository.SpecialMinimumRepository = (*SpecialMinimumRepo)(nil)

// SpecialMinimumRepo implementación de SpecialMinimumRepository sobre PostgreSQL.
// La tabla lleva un constraint único sobre (customer_id, product_id, company_id).
type SpecialMinimumRepo struct {
	q Querier
}

// NewSpecialMinimumRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSpecialMinimumRepository(q Querier) *SpecialMinimumRepo {
	return &SpecialMinimumRepo{q: q}
}

const ruleColumns = `id, company_id, customer_id, product_id, special_minimum_price, created_at, updated_at`

// Create persiste la regla. Una segunda regla para la misma tripleta viola el
// constraint único y devuelve ErrDuplicate.
func (r *SpecialMinimumRepo) Create(rule *entity.SpecialMinimumRule) error {
	query := `
		INSERT INTO special_minimum_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.CompanyID, rule.CustomerID, rule.ProductID,
		rule.SpecialMinimumPrice, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert special minimum rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *SpecialMinimumRepo) GetByID(id string) (*entity.SpecialMinimumRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM special_minimum_rules WHERE id = $1`
	var rule entity.SpecialMinimumRule
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rule.ID, &rule.CompanyID, &rule.CustomerID, &rule.ProductID,
		&rule.SpecialMinimumPrice, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get special minimum rule: %w", err)
	}
	return &rule, nil
}

// FindByTriple devuelve las reglas de (cliente, producto, empresa). El orden
// por ID hace determinista el desempate si alguna vez existiera más de una.
func (r *SpecialMinimumRepo) FindByTriple(customerID, productID, companyID string) ([]*entity.SpecialMinimumRule, error) {
	query := `
		SELECT ` + ruleColumns + ` FROM special_minimum_rules
		WHERE customer_id = $1 AND product_id = $2 AND company_id = $3
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, customerID, productID, companyID)
	if err != nil {
		return nil, fmt.Errorf("find special minimum rules: %w", err)
	}
	return r.scanAll(rows)
}

// ListByCompany lista las reglas de la empresa con paginación.
func (r *SpecialMinimumRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.SpecialMinimumRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM special_minimum_rules WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list special minimum rules: %w", err)
	}
	return r.scanAll(rows)
}

// Delete elimina una regla por ID.
func (r *SpecialMinimumRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM special_minimum_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete special minimum rule: %w", err)
	}
	return nil
}

func (r *SpecialMinimumRepo) scanAll(rows pgx.Rows) ([]*entity.SpecialMinimumRule, error) {
	defer rows.Close()
	var list []*entity.SpecialMinimumRule
	for rows.Next() {
		var rule entity.SpecialMinimumRule
		if err := rows.Scan(&rule.ID, &rule.CompanyID, &rule.CustomerID, &rule.ProductID, &rule.SpecialMinimumPrice, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan special minimum rule: %w", err)
		}
		list = append(list, &rule)
	}
	return list, rows.Err()
}
