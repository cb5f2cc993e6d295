package editor

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
)

// Submit valida y envía el borrador al backend.
//
//   - reglas violadas: *order.ValidationFailedError, el backend no se llama.
//   - durante la llamada el editor queda bloqueado (ErrEditorBusy para mutaciones y reenvíos).
//   - éxito: el editor se descarta y se devuelve el comprobante.
//   - fallo del backend: el borrador queda intacto para corregir o reintentar.
//
// La llamada no se cancela si el cliente HTTP se desconecta; el timeout del cliente
// del backend la acota.
func (s *Service) Submit(ctx context.Context, sess *entity.Session, id string) (*dto.ReceiptResponse, error) {
	ds, err := s.lookup(sess.ID, id)
	if err != nil {
		return nil, err
	}

	ds.mu.Lock()
	if ds.discarded {
		ds.mu.Unlock()
		return nil, notFound(id)
	}
	if ds.inFlight {
		ds.mu.Unlock()
		return nil, domain.ErrEditorBusy
	}
	payload, err := ds.editor.Payload()
	if err != nil {
		ds.mu.Unlock()
		return nil, err
	}
	ds.inFlight = true
	ds.mu.Unlock()

	receipt, err := s.gateway.Submit(context.WithoutCancel(ctx), credentials(sess), payload)

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.inFlight = false
	ds.touched = s.now()

	if ds.discarded {
		ev := s.log.Warn().Str("editor_id", id).Err(err)
		if receipt != nil {
			ev = ev.Str("numero_comprobante", receipt.Number)
		}
		ev.Msg("respuesta tardía de un editor cancelado, se descarta")
		return nil, fmt.Errorf("%w: editor %s cancelado durante el envío", domain.ErrNotFound, id)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("editor_id", id).Str("mode", string(payload.Mode)).Msg("envío fallido, el borrador se conserva")
		return nil, err
	}

	ds.discarded = true
	s.remove(id)

	s.log.Info().
		Str("editor_id", id).
		Str("mode", string(payload.Mode)).
		Str("numero_comprobante", receipt.Number).
		Str("total", receipt.Total.String()).
		Int("lines", len(payload.Lines)).
		Msg("documento registrado")

	return &dto.ReceiptResponse{
		Mode:       string(payload.Mode),
		DocumentID: receipt.DocumentID,
		Number:     receipt.Number,
		Total:      receipt.Total,
	}, nil
}
