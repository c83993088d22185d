package sequencer

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/painel-vendas/internal/domain"
)

// State estado de un widget dentro de una carga.
type State int

const (
	StatePending State = iota
	StateLoading
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoading:
		return "loading"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome resultado de un widget completado.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}

// Lifecycle máquina de estados Pending → Loading → Completed de un widget.
// Sólo la transición Loading → Completed avanza el Sequencer, y ocurre una vez.
// Un widget sin slot (no secuenciado) recorre los mismos estados sin tocar el contador.
type Lifecycle struct {
	mu      sync.Mutex
	seq     *Sequencer
	slot    int
	state   State
	outcome Outcome
}

// Register asocia un widget al slot indicado.
func (s *Sequencer) Register(slot int) *Lifecycle {
	return &Lifecycle{seq: s, slot: slot}
}

// Unsequenced crea el ciclo de vida de un widget que carga sin esperar turno.
func Unsequenced() *Lifecycle {
	return &Lifecycle{slot: -1}
}

// Slot devuelve el slot asignado; ok es false para widgets no secuenciados.
func (l *Lifecycle) Slot() (slot int, ok bool) {
	if l.seq == nil {
		return 0, false
	}
	return l.slot, true
}

// State estado actual.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Outcome resultado; OutcomeNone mientras no se haya completado.
func (l *Lifecycle) Outcome() Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outcome
}

// Await espera el turno del widget. Si ctx termina antes, el widget queda en
// Pending y no avanza el contador.
func (l *Lifecycle) Await(ctx context.Context) error {
	if l.seq == nil {
		return ctx.Err()
	}
	return l.seq.Wait(ctx, l.slot)
}

// Start pasa de Pending a Loading.
func (l *Lifecycle) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StatePending {
		return fmt.Errorf("sequencer: start desde %s: %w", l.state, domain.ErrInvalidState)
	}
	l.state = StateLoading
	return nil
}

// Complete pasa de Loading a Completed con el resultado de err (nil = éxito) y
// avanza el Sequencer. Una segunda llamada devuelve ErrAlreadyCompleted sin avanzar.
func (l *Lifecycle) Complete(err error) error {
	l.mu.Lock()
	switch l.state {
	case StateCompleted:
		l.mu.Unlock()
		return domain.ErrAlreadyCompleted
	case StatePending:
		l.mu.Unlock()
		return fmt.Errorf("sequencer: complete sin start: %w", domain.ErrInvalidState)
	}
	l.state = StateCompleted
	if err != nil {
		l.outcome = OutcomeFailure
	} else {
		l.outcome = OutcomeSuccess
	}
	l.mu.Unlock()

	if l.seq != nil {
		l.seq.Advance()
	}
	return nil
}
