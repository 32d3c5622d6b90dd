package pricing

import "github.com/shopspring/decimal"

// Precisiones de redondeo. El subtotal se redondea una sola vez, a la
// precisión de la moneda; el precio unitario derivado de un piso se redondea
// a 6 decimales antes de persistirse.
const (
	CurrencyScale  = 2
	UnitPriceScale = 6
)

// NaturalRate es la tripleta "natural" de una línea antes de aplicar pisos de
// precio mínimo. Invariante: Quantity × Days × UnitPrice == Subtotal, con un
// único redondeo a precisión de moneda sobre el subtotal. Days es el
// multiplicador de duración (1 en todo modo distinto de STORAGE).
type NaturalRate struct {
	Quantity  decimal.Decimal
	Days      decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// FloorSource identifica de dónde salió el piso efectivo.
type FloorSource string

const (
	FloorSourceSpecial FloorSource = "special" // regla cliente-producto
	FloorSourceGlobal  FloorSource = "global"  // mínimo por defecto del producto
	FloorSourceNone    FloorSource = "none"    // sin piso (o cliente eximido)
)

// FinalRate es la tripleta definitiva a persistir en la línea. Si el piso
// obligó a recalcular, FloorApplied es true y Subtotal == EffectiveMinimum
// redondeado a precisión de moneda. Garantía: Subtotal >= subtotal natural.
type FinalRate struct {
	NaturalRate

	FloorApplied     bool
	FloorSource      FloorSource
	EffectiveMinimum decimal.Decimal
}
