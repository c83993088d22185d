// Package sequencer escalona la primera carga de los widgets del dashboard: cada
// widget tiene un turno (slot) y sólo consulta la API cuando el contador llega a
// su turno. Al terminar (con éxito o con error) avanza el contador exactamente una vez.
//
// Varios widgets pueden compartir un slot: arrancan juntos y cualquiera de ellos
// que termine desbloquea el slot siguiente.
package sequencer

import (
	"context"
	"sync"
)

// Sequencer contador de turnos de una carga del dashboard.
// Se crea uno por carga y se descarta al terminar; no hay estado global.
type Sequencer struct {
	mu        sync.Mutex
	current   int
	changed   chan struct{} // se cierra y se reemplaza en cada avance
	onAdvance func(slot int)
}

// Option configura el Sequencer.
type Option func(*Sequencer)

// WithAdvanceHook registra una función invocada tras cada avance con el nuevo slot.
func WithAdvanceHook(fn func(slot int)) Option {
	return func(s *Sequencer) { s.onAdvance = fn }
}

// New crea un Sequencer con el contador en 0.
func New(opts ...Option) *Sequencer {
	s := &Sequencer{changed: make(chan struct{})}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentSlot devuelve el slot activo.
func (s *Sequencer) CurrentSlot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// IsTurn indica si el contador está exactamente en slot.
func (s *Sequencer) IsTurn(slot int) bool {
	return s.CurrentSlot() == slot
}

// Advance incrementa el contador en uno y despierta a quienes esperan.
// Los llamadores deben garantizar una sola llamada por widget; Lifecycle lo hace.
func (s *Sequencer) Advance() int {
	s.mu.Lock()
	s.current++
	next := s.current
	close(s.changed)
	s.changed = make(chan struct{})
	hook := s.onAdvance
	s.mu.Unlock()

	if hook != nil {
		hook(next)
	}
	return next
}

// Wait bloquea hasta que el turno de slot se haya abierto (contador >= slot) o
// hasta que ctx termine. Un slot compartido queda abierto para todos sus widgets
// aunque otro de ellos ya haya avanzado el contador.
func (s *Sequencer) Wait(ctx context.Context, slot int) error {
	for {
		s.mu.Lock()
		if s.current >= slot {
			s.mu.Unlock()
			return nil
		}
		ch := s.changed
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}
