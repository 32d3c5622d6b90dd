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

var _ repository.FolderRepository = (*FolderRepo)(nil)

// FolderRepo implementación de FolderRepository sobre PostgreSQL (usable con pool o tx).
type FolderRepo struct {
	q Querier
}

// NewFolderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFolderRepository(q Querier) *FolderRepo {
	return &FolderRepo{q: q}
}

const folderColumns = `id, company_id, customer_id, name, entry_date, days_invoiced, total_storage_volume, declared_value, full_transit, outbound_complete, closed, created_at, updated_at`

// Create persiste una nueva carpeta de importación.
func (r *FolderRepo) Create(folder *entity.TransitFolder) error {
	query := `
		INSERT INTO transit_folders (` + folderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		folder.ID, folder.CompanyID, folder.CustomerID, folder.Name, folder.EntryDate,
		folder.DaysInvoiced, folder.TotalStorageVolume, folder.DeclaredValue,
		folder.FullTransit, folder.OutboundComplete, folder.Closed, folder.CreatedAt, folder.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert folder: %w", err)
	}
	return nil
}

// GetByID obtiene una carpeta por ID.
func (r *FolderRepo) GetByID(id string) (*entity.TransitFolder, error) {
	query := `SELECT ` + folderColumns + ` FROM transit_folders WHERE id = $1`
	var f entity.TransitFolder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.CompanyID, &f.CustomerID, &f.Name, &f.EntryDate, &f.DaysInvoiced,
		&f.TotalStorageVolume, &f.DeclaredValue, &f.FullTransit, &f.OutboundComplete, &f.Closed,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return &f, nil
}

// ListByCompany lista carpetas de la empresa con paginación.
func (r *FolderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.TransitFolder, error) {
	query := `SELECT ` + folderColumns + ` FROM transit_folders WHERE company_id = $1 ORDER BY entry_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return r.scanAll(rows)
}

// ListOpen lista las carpetas con tránsito no cerrado, en orden estable por
// cliente y fecha de ingreso (entrada de la corrida de almacenamiento).
func (r *FolderRepo) ListOpen(companyID string) ([]*entity.TransitFolder, error) {
	query := `SELECT ` + folderColumns + ` FROM transit_folders WHERE company_id = $1 AND closed = false ORDER BY customer_id, entry_date`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list open folders: %w", err)
	}
	return r.scanAll(rows)
}

// Update actualiza una carpeta.
func (r *FolderRepo) Update(folder *entity.TransitFolder) error {
	query := `
		UPDATE transit_folders
		SET name = $2, entry_date = $3, days_invoiced = $4, total_storage_volume = $5, declared_value = $6,
		    full_transit = $7, outbound_complete = $8, closed = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		folder.ID, folder.Name, folder.EntryDate, folder.DaysInvoiced, folder.TotalStorageVolume,
		folder.DeclaredValue, folder.FullTransit, folder.OutboundComplete, folder.Closed, folder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}
	return nil
}

// SetDaysInvoiced fija los días a facturar de la carpeta.
func (r *FolderRepo) SetDaysInvoiced(id string, days int) error {
	query := `UPDATE transit_folders SET days_invoiced = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, days)
	if err != nil {
		return fmt.Errorf("set days invoiced: %w", err)
	}
	return nil
}

// SetEntryDate corrige la fecha de ingreso de la carpeta.
func (r *FolderRepo) SetEntryDate(id string, entryDate time.Time) error {
	query := `UPDATE transit_folders SET entry_date = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entryDate)
	if err != nil {
		return fmt.Errorf("set entry date: %w", err)
	}
	return nil
}

func (r *FolderRepo) scanAll(rows pgx.Rows) ([]*entity.TransitFolder, error) {
	defer rows.Close()
	var list []*entity.TransitFolder
	for rows.Next() {
		var f entity.TransitFolder
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.CustomerID, &f.Name, &f.EntryDate, &f.DaysInvoiced, &f.TotalStorageVolume, &f.DeclaredValue, &f.FullTransit, &f.OutboundComplete, &f.Closed, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
