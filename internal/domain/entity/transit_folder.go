package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransitFolder representa una carpeta de importación (tránsito): la unidad
// operativa que agrupa la carga de un cliente desde su ingreso al depósito
// hasta el egreso completo. Es la fuente de los datos de facturación:
// volumen almacenado, días a facturar y valor FOB declarado.
type TransitFolder struct {
	ID                 string
	CompanyID          string
	CustomerID         string
	Name               string // código de carpeta (ej. IMP-2024-0153)
	EntryDate          time.Time
	DaysInvoiced       *int            // días a facturar; nil = sin fijar (el motor asume 1)
	TotalStorageVolume decimal.Decimal // volumen total en depósito (m³)
	DeclaredValue      decimal.Decimal // valor FOB total declarado (moneda de referencia)
	FullTransit        bool            // tránsito completo: la carga pasa de largo y genera el cargo extra
	OutboundComplete   bool            // egreso completo: bloquea la facturación de egreso
	Closed             bool            // tránsito cerrado: fuera del ciclo de facturación
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
