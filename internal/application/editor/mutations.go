package editor

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-consola/internal/application/dto"
	"github.com/jhoicas/inventario-consola/internal/domain"
	"github.com/jhoicas/inventario-consola/internal/domain/entity"
	"github.com/jhoicas/inventario-consola/internal/domain/order"
)

// Mutate aplica fn sobre el borrador con acceso exclusivo y devuelve la vista recalculada.
// Con un envío pendiente devuelve domain.ErrEditorBusy sin tocar el borrador.
func (s *Service) Mutate(_ context.Context, sess *entity.Session, id string, fn func(*order.Editor) error) (*dto.EditorResponse, error) {
	ds, err := s.lookup(sess.ID, id)
	if err != nil {
		return nil, err
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.discarded {
		return nil, notFound(id)
	}
	if ds.inFlight {
		return nil, domain.ErrEditorBusy
	}
	if err := fn(ds.editor); err != nil {
		return nil, err
	}
	ds.touched = s.now()
	return ds.view(false), nil
}

func (s *Service) AddLine(ctx context.Context, sess *entity.Session, id string) (*dto.EditorResponse, error) {
	return s.Mutate(ctx, sess, id, func(e *order.Editor) error {
		e.AddLine()
		return nil
	})
}

func (s *Service) RemoveLine(ctx context.Context, sess *entity.Session, id string, index int) (*dto.EditorResponse, error) {
	return s.Mutate(ctx, sess, id, func(e *order.Editor) error {
		return e.RemoveLine(index)
	})
}

func (s *Service) SetLineProduct(ctx context.Context, sess *entity.Session, id string, index int, ref string) (*dto.EditorResponse, error) {
	return s.Mutate(ctx, sess, id, func(e *order.Editor) error {
		return e.SetLineProduct(index, ref)
	})
}

// SetLineQuantity recibe la cantidad como texto decimal ("2", "0.5").
func (s *Service) SetLineQuantity(ctx context.Context, sess *entity.Session, id string, index int, quantity string) (*dto.EditorResponse, error) {
	q, err := parseDecimal("cantidad", quantity)
	if err != nil {
		return nil, err
	}
	return s.Mutate(ctx, sess, id, func(e *order.Editor) error {
		return e.SetLineQuantity(index, q)
	})
}

func (s *Service) SetLinePrice(ctx context.Context, sess *entity.Session, id string, index int, price string) (*dto.EditorResponse, error) {
	p, err := parseDecimal("precio", price)
	if err != nil {
		return nil, err
	}
	return s.Mutate(ctx, sess, id, func(e *order.Editor) error {
		return e.SetLinePrice(index, p)
	})
}

func (s *Service) SetCounterparty(ctx context.Context, sess *entity.Session, id, ref string) (*dto.EditorResponse, error) {
	return s.Mutate(ctx, sess, id, func(e *order.Editor) error {
		return e.SetCounterparty(ref)
	})
}

func (s *Service) SetReceiptType(ctx context.Context, sess *entity.Session, id, receiptType string) (*dto.EditorResponse, error) {
	return s.Mutate(ctx, sess, id, func(e *order.Editor) error {
		return e.SetReceiptType(order.ReceiptType(receiptType))
	})
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, field, raw)
	}
	return d, nil
}
