package order

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-consola/internal/domain"
)

// Códigos de regla de validación.
const (
	RuleCounterpartyRequired = "COUNTERPARTY_REQUIRED"
	RuleLinesRequired        = "LINES_REQUIRED"
	RuleQuantityPositive     = "QUANTITY_POSITIVE"
)

// ValidationError una regla violada. Lines lista los índices de línea afectados, si aplica.
type ValidationError struct {
	Code    string
	Message string
	Lines   []int
}

func (v ValidationError) Error() string { return v.Message }

// ValidationFailedError agrupa las reglas violadas; errors.Is(err, domain.ErrValidationFailed) es true.
type ValidationFailedError struct {
	Errors []ValidationError
}

func (e *ValidationFailedError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		msgs = append(msgs, v.Message)
	}
	return domain.ErrValidationFailed.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationFailedError) Unwrap() error { return domain.ErrValidationFailed }

// Validate devuelve un error por regla violada; vacío si el borrador se puede enviar.
func (e *Editor) Validate() []ValidationError {
	var out []ValidationError
	d := e.draft
	if d.CounterpartyRef == "" {
		msg := "cliente requerido"
		if d.Mode == ModePurchase {
			msg = "proveedor requerido"
		}
		out = append(out, ValidationError{Code: RuleCounterpartyRequired, Message: msg})
	}
	if len(d.CompleteLines()) == 0 {
		out = append(out, ValidationError{
			Code:    RuleLinesRequired,
			Message: "se requiere al menos una línea de producto",
		})
	}
	var bad []int
	for i, l := range d.Lines {
		if !l.Blank() && !l.Quantity.GreaterThan(decimal.Zero) {
			bad = append(bad, i)
		}
	}
	if len(bad) > 0 {
		out = append(out, ValidationError{
			Code:    RuleQuantityPositive,
			Message: "la cantidad debe ser positiva",
			Lines:   bad,
		})
	}
	return out
}
