package order

import "github.com/shopspring/decimal"

// SubmissionLine línea enviada al backend.
type SubmissionLine struct {
	ProductRef string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
}

// SubmissionPayload proyección del borrador que recibe el endpoint de registro.
// Total es informativo: el backend recalcula y confirma el suyo.
type SubmissionPayload struct {
	Mode            Mode
	CounterpartyRef string
	ReceiptType     ReceiptType
	Lines           []SubmissionLine
	Total           decimal.Decimal
}

// Payload valida y proyecta las líneas completas; las incompletas se descartan en silencio.
// Si hay reglas violadas devuelve *ValidationFailedError.
func (e *Editor) Payload() (SubmissionPayload, error) {
	if errs := e.Validate(); len(errs) > 0 {
		return SubmissionPayload{}, &ValidationFailedError{Errors: errs}
	}
	lines := e.draft.CompleteLines()
	p := SubmissionPayload{
		Mode:            e.draft.Mode,
		CounterpartyRef: e.draft.CounterpartyRef,
		ReceiptType:     e.draft.ReceiptType,
		Lines:           make([]SubmissionLine, 0, len(lines)),
		Total:           e.draft.Total,
	}
	for _, l := range lines {
		p.Lines = append(p.Lines, SubmissionLine{
			ProductRef: l.ProductRef,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}
	return p, nil
}
