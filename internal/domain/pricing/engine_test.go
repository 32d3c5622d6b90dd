package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures en memoria para los tres colaboradores del motor.
// ──────────────────────────────────────────────────────────────────────────────

type fakeRates struct {
	rate decimal.Decimal
	ok   bool
	err  error
}

func (f fakeRates) DailyRate(context.Context, string, decimal.Decimal, time.Time) (decimal.Decimal, bool, error) {
	return f.rate, f.ok, f.err
}

type fakeFX struct {
	rate decimal.Decimal
	err  error
}

func (f fakeFX) RateToCompanyCurrency(context.Context, string, string, time.Time) (decimal.Decimal, error) {
	return f.rate, f.err
}

type fakeRules struct {
	rules []entity.SpecialMinimumRule
	err   error
}

func (f fakeRules) Find(context.Context, string, string, string) ([]entity.SpecialMinimumRule, error) {
	return f.rules, f.err
}

func newTestEngine(rates pricing.RateLookup, fx pricing.ExchangeLookup, rules pricing.SpecialRuleLookup) *pricing.Engine {
	return pricing.NewEngine(rates, fx, rules, pricing.Config{ReferenceCurrency: "USD"}, zerolog.Nop())
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(n int) *int { return &n }

func storageProduct(minimum string) *entity.Product {
	return &entity.Product{
		ID:                  "prod-storage",
		CompanyID:           "comp-1",
		BillingMode:         entity.BillingModeStorage,
		ListPrice:           d("1.00"),
		DefaultMinimumPrice: d(minimum),
	}
}

func normalCustomer() *entity.Customer {
	return &entity.Customer{ID: "cust-1", CompanyID: "comp-1"}
}

// equalDecimal compara decimales por valor (no por representación).
func equalDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: esperado %s, obtenido %s", msg, want, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolutor de tarifa natural
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveNatural_Storage_TarifaDeListaDePrecios(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("2.50"), ok: true}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("10"), StorageDays: intPtr(4), UseCustomPricing: true}

	nat, err := eng.ResolveNatural(context.Background(), line, storageProduct("0"))
	require.NoError(t, err)
	equalDecimal(t, "2.50", nat.UnitPrice, "tarifa diaria de la lista de precios")
	equalDecimal(t, "100.00", nat.Subtotal, "10 m³ × 4 días × 2.50")
}

func TestResolveNatural_Storage_FallbackAlPrecioDeLista(t *testing.T) {
	eng := newTestEngine(fakeRates{ok: false}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("3"), StorageDays: intPtr(2), UseCustomPricing: true}

	nat, err := eng.ResolveNatural(context.Background(), line, storageProduct("0"))
	require.NoError(t, err)
	equalDecimal(t, "1.00", nat.UnitPrice, "sin regla aplicable cae al ListPrice")
	equalDecimal(t, "6.00", nat.Subtotal, "3 × 2 × 1.00")
}

func TestResolveNatural_Storage_SinTarifaDerivable(t *testing.T) {
	eng := newTestEngine(fakeRates{ok: false}, fakeFX{}, fakeRules{})
	product := storageProduct("0")
	product.ListPrice = decimal.Zero
	line := &entity.InvoiceLine{Quantity: d("3"), UseCustomPricing: true}

	_, err := eng.ResolveNatural(context.Background(), line, product)
	require.Error(t, err)
	assert.True(t, pricing.IsConfiguration(err), "debe ser ConfigurationError, fue %v", err)
}

func TestResolveNatural_Storage_DiasSinFijarAsumeUno(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("5.00"), ok: true}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("2"), StorageDays: nil, UseCustomPricing: true}

	nat, err := eng.ResolveNatural(context.Background(), line, storageProduct("0"))
	require.NoError(t, err)
	equalDecimal(t, "1", nat.Days, "días sin fijar")
	equalDecimal(t, "10.00", nat.Subtotal, "2 × 1 × 5.00")
}

func TestResolveNatural_Storage_CeroDiasExplicitoValeCero(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("5.00"), ok: true}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("2"), StorageDays: intPtr(0), UseCustomPricing: true}

	nat, err := eng.ResolveNatural(context.Background(), line, storageProduct("0"))
	require.NoError(t, err)
	equalDecimal(t, "0.00", nat.Subtotal, "cero días explícito")
}

func TestResolveNatural_ValorDeclarado(t *testing.T) {
	eng := newTestEngine(fakeRates{}, fakeFX{rate: d("4.0")}, fakeRules{})
	product := &entity.Product{ID: "prod-fob", CompanyID: "comp-1", BillingMode: entity.BillingModeDeclaredValue}
	line := &entity.InvoiceLine{DeclaredValue: d("100000"), UseCustomPricing: true}

	nat, err := eng.ResolveNatural(context.Background(), line, product)
	require.NoError(t, err)
	// 100000 × (1/4.0) × 0.001 = 25.00
	equalDecimal(t, "25.00", nat.Subtotal, "FOB convertido y escalado")
	equalDecimal(t, "1", nat.Quantity, "cantidad canónica 1")
	equalDecimal(t, "25.00", nat.UnitPrice, "precio unitario = subtotal")
}

func TestResolveNatural_ValorDeclarado_SinTipoDeCambio(t *testing.T) {
	fxErr := &pricing.RateUnavailableError{Currency: "USD", Date: time.Now()}
	eng := newTestEngine(fakeRates{}, fakeFX{err: fxErr}, fakeRules{})
	product := &entity.Product{ID: "prod-fob", CompanyID: "comp-1", BillingMode: entity.BillingModeDeclaredValue}
	line := &entity.InvoiceLine{DeclaredValue: d("1000"), UseCustomPricing: true}

	_, err := eng.ResolveNatural(context.Background(), line, product)
	require.Error(t, err)
	// El motor jamás asume tasa 1.0: el error se propaga tal cual.
	assert.True(t, pricing.IsRateUnavailable(err), "debe propagar RateUnavailable, fue %v", err)
}

func TestResolveNatural_SinModo_PasoDirecto(t *testing.T) {
	eng := newTestEngine(fakeRates{}, fakeFX{}, fakeRules{})
	product := &entity.Product{ID: "prod-none", CompanyID: "comp-1", BillingMode: entity.BillingModeNone}
	line := &entity.InvoiceLine{Quantity: d("7"), UnitPrice: d("3.10"), UseCustomPricing: true}

	nat, err := eng.ResolveNatural(context.Background(), line, product)
	require.NoError(t, err)
	equalDecimal(t, "21.70", nat.Subtotal, "precio × cantidad sin modificar")
	equalDecimal(t, "3.10", nat.UnitPrice, "precio unitario intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de referencia del pipeline completo
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: almacenamiento sin tocar el piso.
// 10 m³ × 5 días × 2.00 = 100.00 >= mínimo 50 => tripleta natural intacta.
func TestPriceLine_EscenarioA_PisoNoObliga(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("2.00"), ok: true}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("10"), StorageDays: intPtr(5), UseCustomPricing: true}

	final, err := eng.PriceLine(context.Background(), line, storageProduct("50"), normalCustomer())
	require.NoError(t, err)
	assert.False(t, final.FloorApplied)
	equalDecimal(t, "100.00", final.Subtotal, "subtotal natural")
	equalDecimal(t, "2.00", final.UnitPrice, "tarifa intacta")
	equalDecimal(t, "10", final.Quantity, "cantidad intacta")
}

// Escenario B: almacenamiento con piso global.
// 2 m³ × 3 días × 1.00 = 6.00 < 50 => unit = 50/(2×3) = 8.333333, cantidad y
// días se preservan, subtotal exactamente 50.00.
func TestPriceLine_EscenarioB_PisoGlobalObliga(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("1.00"), ok: true}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("2"), StorageDays: intPtr(3), UseCustomPricing: true}

	final, err := eng.PriceLine(context.Background(), line, storageProduct("50"), normalCustomer())
	require.NoError(t, err)
	assert.True(t, final.FloorApplied)
	assert.Equal(t, pricing.FloorSourceGlobal, final.FloorSource)
	equalDecimal(t, "50.00", final.Subtotal, "subtotal = piso")
	equalDecimal(t, "8.333333", final.UnitPrice, "50 / (2 × 3) a 6 decimales")
	equalDecimal(t, "2", final.Quantity, "la cantidad no colapsa a 1")
	equalDecimal(t, "3", final.Days, "los días se preservan")
}

// Escenario C: valor declarado con piso.
// 1000 × (1/1.0) × 0.001 = 1.00 < 25 => cantidad 1, unit 25, subtotal 25.00.
func TestPriceLine_EscenarioC_ValorDeclaradoConPiso(t *testing.T) {
	eng := newTestEngine(fakeRates{}, fakeFX{rate: d("1.0")}, fakeRules{})
	product := &entity.Product{
		ID: "prod-fob", CompanyID: "comp-1",
		BillingMode:         entity.BillingModeDeclaredValue,
		DefaultMinimumPrice: d("25"),
	}
	line := &entity.InvoiceLine{DeclaredValue: d("1000"), UseCustomPricing: true}

	final, err := eng.PriceLine(context.Background(), line, product, normalCustomer())
	require.NoError(t, err)
	assert.True(t, final.FloorApplied)
	equalDecimal(t, "25.00", final.Subtotal, "subtotal = piso")
	equalDecimal(t, "1", final.Quantity, "cantidad 1")
	equalDecimal(t, "25.000000", final.UnitPrice, "unit = piso / 1")
}

// Escenario D: exención absoluta del cliente — el piso se ignora siempre.
func TestPriceLine_EscenarioD_ClienteEximido(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("1.00"), ok: true}, fakeFX{}, fakeRules{
		rules: []entity.SpecialMinimumRule{{ID: "r1", SpecialMinimumPrice: d("500")}},
	})
	customer := normalCustomer()
	customer.WaivesMinimumPricing = true
	line := &entity.InvoiceLine{Quantity: d("2"), StorageDays: intPtr(3), UseCustomPricing: true}

	final, err := eng.PriceLine(context.Background(), line, storageProduct("50"), customer)
	require.NoError(t, err)
	assert.False(t, final.FloorApplied)
	assert.Equal(t, pricing.FloorSourceNone, final.FloorSource)
	equalDecimal(t, "6.00", final.Subtotal, "subtotal natural sin piso")
	equalDecimal(t, "1.00", final.UnitPrice, "tarifa intacta")
}

// Escenario E: la regla especial (80) precede al mínimo global (50).
func TestPriceLine_EscenarioE_ReglaEspecialPrecede(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("1.00"), ok: true}, fakeFX{}, fakeRules{
		rules: []entity.SpecialMinimumRule{{ID: "r1", SpecialMinimumPrice: d("80")}},
	})
	line := &entity.InvoiceLine{Quantity: d("2"), StorageDays: intPtr(3), UseCustomPricing: true}

	final, err := eng.PriceLine(context.Background(), line, storageProduct("50"), normalCustomer())
	require.NoError(t, err)
	assert.True(t, final.FloorApplied)
	assert.Equal(t, pricing.FloorSourceSpecial, final.FloorSource)
	equalDecimal(t, "80.00", final.Subtotal, "piso especial")
	equalDecimal(t, "13.333333", final.UnitPrice, "80 / 6 a 6 decimales")
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestPriceLine_Idempotencia(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("1.00"), ok: true}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("2"), StorageDays: intPtr(3), UseCustomPricing: true}
	product := storageProduct("50")

	first, err1 := eng.PriceLine(context.Background(), line, product, normalCustomer())
	second, err2 := eng.PriceLine(context.Background(), line, product, normalCustomer())
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, first.Quantity.Equal(second.Quantity))
	assert.True(t, first.UnitPrice.Equal(second.UnitPrice))
	assert.True(t, first.Subtotal.Equal(second.Subtotal))
}

func TestPriceLine_MonotoniaDelPiso(t *testing.T) {
	// Para cualquier combinación, el subtotal final nunca baja del natural y
	// es exactamente max(natural, piso) cuando hay piso.
	cases := []struct {
		name    string
		qty     string
		days    int
		rate    string
		minimum string
		want    string
	}{
		{"piso no obliga", "10", 5, "2.00", "50", "100.00"},
		{"piso obliga", "2", 3, "1.00", "50", "50.00"},
		{"sin piso", "2", 3, "1.00", "0", "6.00"},
		{"piso igual al natural", "2", 3, "1.00", "6", "6.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng := newTestEngine(fakeRates{rate: d(tc.rate), ok: true}, fakeFX{}, fakeRules{})
			line := &entity.InvoiceLine{Quantity: d(tc.qty), StorageDays: intPtr(tc.days), UseCustomPricing: true}

			final, err := eng.PriceLine(context.Background(), line, storageProduct(tc.minimum), normalCustomer())
			require.NoError(t, err)
			equalDecimal(t, tc.want, final.Subtotal, "subtotal final")

			natural := d(tc.qty).Mul(decimal.NewFromInt(int64(tc.days))).Mul(d(tc.rate))
			assert.True(t, final.Subtotal.GreaterThanOrEqual(natural.Round(2)),
				"el subtotal final nunca es menor que el natural")
		})
	}
}

func TestPriceLine_PisoExacto(t *testing.T) {
	// Cuando el piso obliga, cantidad × días × unit redondeado a precisión de
	// moneda coincide exactamente con el piso redondeado igual.
	eng := newTestEngine(fakeRates{rate: d("1.00"), ok: true}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("7"), StorageDays: intPtr(3), UseCustomPricing: true}

	final, err := eng.PriceLine(context.Background(), line, storageProduct("100"), normalCustomer())
	require.NoError(t, err)
	require.True(t, final.FloorApplied)
	recomputed := final.Quantity.Mul(final.Days).Mul(final.UnitPrice).Round(2)
	equalDecimal(t, "100.00", recomputed, "reconstrucción de la tripleta")
	equalDecimal(t, "100.00", final.Subtotal, "subtotal persistido")
}

func TestApplyMinimum_SinDrivers(t *testing.T) {
	// Cantidad y días ambos cero: línea unitaria al piso, sin división por cero.
	eng := newTestEngine(fakeRates{}, fakeFX{}, fakeRules{})
	natural := pricing.NaturalRate{Quantity: decimal.Zero, Days: decimal.Zero, Subtotal: decimal.Zero}

	final, err := eng.ApplyMinimum(context.Background(), natural, storageProduct("40"), normalCustomer())
	require.NoError(t, err)
	require.True(t, final.FloorApplied)
	equalDecimal(t, "1", final.Quantity, "cantidad canónica 1")
	equalDecimal(t, "40.00", final.Subtotal, "subtotal = piso")
}

func TestApplyMinimum_UnSoloDriver(t *testing.T) {
	// Solo cantidad (días explícitos en cero): el piso se divide por la cantidad.
	eng := newTestEngine(fakeRates{}, fakeFX{}, fakeRules{})
	natural := pricing.NaturalRate{Quantity: d("4"), Days: decimal.Zero, Subtotal: decimal.Zero}

	final, err := eng.ApplyMinimum(context.Background(), natural, storageProduct("10"), normalCustomer())
	require.NoError(t, err)
	require.True(t, final.FloorApplied)
	equalDecimal(t, "2.500000", final.UnitPrice, "10 / 4")
	equalDecimal(t, "4", final.Quantity, "cantidad preservada")
	equalDecimal(t, "10.00", final.Subtotal, "subtotal = piso")
}

func TestApplyMinimum_ReglaDuplicadaEligeDeterminista(t *testing.T) {
	// Dos reglas para la misma tripleta violan el constraint único; el motor
	// no falla: elige la de menor ID.
	eng := newTestEngine(fakeRates{}, fakeFX{}, fakeRules{
		rules: []entity.SpecialMinimumRule{
			{ID: "r9", SpecialMinimumPrice: d("900")},
			{ID: "r1", SpecialMinimumPrice: d("80")},
		},
	})
	natural := pricing.NaturalRate{Quantity: d("2"), Days: d("3"), UnitPrice: d("1"), Subtotal: d("6.00")}

	final, err := eng.ApplyMinimum(context.Background(), natural, storageProduct("50"), normalCustomer())
	require.NoError(t, err)
	equalDecimal(t, "80", final.EffectiveMinimum, "gana la regla de menor id")
}

func TestApplyMinimum_ReglaNoPositivaCaeAlGlobal(t *testing.T) {
	// Una regla con mínimo <= 0 se trata como ausente.
	eng := newTestEngine(fakeRates{}, fakeFX{}, fakeRules{
		rules: []entity.SpecialMinimumRule{{ID: "r1", SpecialMinimumPrice: decimal.Zero}},
	})
	natural := pricing.NaturalRate{Quantity: d("2"), Days: d("3"), UnitPrice: d("1"), Subtotal: d("6.00")}

	final, err := eng.ApplyMinimum(context.Background(), natural, storageProduct("50"), normalCustomer())
	require.NoError(t, err)
	assert.Equal(t, pricing.FloorSourceGlobal, final.FloorSource)
	equalDecimal(t, "50", final.EffectiveMinimum, "piso global del producto")
}

func TestPriceLine_SinPreciosEspeciales_MotorNoInterviene(t *testing.T) {
	eng := newTestEngine(fakeRates{rate: d("99"), ok: true}, fakeFX{}, fakeRules{})
	line := &entity.InvoiceLine{Quantity: d("5"), UnitPrice: d("2.00"), UseCustomPricing: false}

	final, err := eng.PriceLine(context.Background(), line, storageProduct("1000"), normalCustomer())
	require.NoError(t, err)
	assert.False(t, final.FloorApplied)
	equalDecimal(t, "10.00", final.Subtotal, "precio × cantidad sin modificar")
}
