package pricing

import (
	"errors"
	"fmt"
	"time"
)

// RateUnavailableError indica que no se pudo resolver un tipo de cambio para
// el modo DECLARED_VALUE. El motor nunca sustituye la tasa por 1.0 en
// silencio: el error se propaga y el caller decide abortar o pedir carga
// manual de la tasa.
type RateUnavailableError struct {
	Currency string
	Date     time.Time
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("sin tipo de cambio %s al %s", e.Currency, e.Date.Format("2006-01-02"))
}

// ConfigurationError indica que el producto no permite derivar una tarifa:
// por ejemplo, modo STORAGE sin regla de lista de precios ni ListPrice.
type ConfigurationError struct {
	ProductID string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuración de producto %s inválida: %s", e.ProductID, e.Reason)
}

// IsRateUnavailable reporta si err es (o envuelve) un RateUnavailableError.
func IsRateUnavailable(err error) bool {
	var target *RateUnavailableError
	return errors.As(err, &target)
}

// IsConfiguration reporta si err es (o envuelve) un ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}
