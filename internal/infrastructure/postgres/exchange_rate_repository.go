package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

var _ repository.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

// ExchangeRateRepo implementación de ExchangeRateRepository sobre PostgreSQL.
type ExchangeRateRepo struct {
	q Querier
}

// NewExchangeRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExchangeRateRepository(q Querier) *ExchangeRateRepo {
	return &ExchangeRateRepo{q: q}
}

const rateColumns = `id, company_id, currency_code, rate_to_company, as_of_date, created_at`

// Create persiste una tasa.
func (r *ExchangeRateRepo) Create(rate *entity.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (` + rateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.CompanyID, rate.CurrencyCode, rate.RateToCompany, rate.AsOfDate, rate.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert exchange rate: %w", err)
	}
	return nil
}

// LatestAsOf devuelve la tasa más reciente vigente a la fecha, o nil si no
// hay ninguna cargada. El caller decide cómo tratar la ausencia; aquí no se
// inventa una tasa.
func (r *ExchangeRateRepo) LatestAsOf(companyID, currency string, date time.Time) (*entity.ExchangeRate, error) {
	query := `
		SELECT ` + rateColumns + ` FROM exchange_rates
		WHERE company_id = $1 AND currency_code = $2 AND as_of_date <= $3
		ORDER BY as_of_date DESC LIMIT 1`
	var rate entity.ExchangeRate
	err := r.q.QueryRow(context.Background(), query, companyID, currency, date).Scan(
		&rate.ID, &rate.CompanyID, &rate.CurrencyCode, &rate.RateToCompany, &rate.AsOfDate, &rate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest exchange rate: %w", err)
	}
	return &rate, nil
}

// ListByCompany lista tasas de la empresa con paginación.
func (r *ExchangeRateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ExchangeRate, error) {
	query := `SELECT ` + rateColumns + ` FROM exchange_rates WHERE company_id = $1 ORDER BY as_of_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list exchange rates: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExchangeRate
	for rows.Next() {
		var rate entity.ExchangeRate
		if err := rows.Scan(&rate.ID, &rate.CompanyID, &rate.CurrencyCode, &rate.RateToCompany, &rate.AsOfDate, &rate.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		list = append(list, &rate)
	}
	return list, rows.Err()
}
