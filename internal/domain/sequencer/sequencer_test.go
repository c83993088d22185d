package sequencer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/sequencer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Contador
// ──────────────────────────────────────────────────────────────────────────────

func TestSequencer_AdvanceIncrementaDeAUno(t *testing.T) {
	s := sequencer.New()
	require.Equal(t, 0, s.CurrentSlot())

	for want := 1; want <= 6; want++ {
		assert.Equal(t, want, s.Advance())
		assert.Equal(t, want, s.CurrentSlot())
	}
}

func TestSequencer_IsTurnUnaVentanaPorSlot(t *testing.T) {
	s := sequencer.New()
	const slots = 5

	// seen[slot] registra en qué pasos IsTurn(slot) fue verdadero.
	seen := make(map[int][]int)
	for step := 0; step <= slots; step++ {
		for slot := 0; slot <= slots; slot++ {
			if s.IsTurn(slot) {
				seen[slot] = append(seen[slot], step)
			}
		}
		s.Advance()
	}

	for slot := 0; slot <= slots; slot++ {
		assert.Equal(t, []int{slot}, seen[slot], "slot %d debe estar activo en un único paso", slot)
	}
}

func TestSequencer_WaitDesbloqueaAlLlegarAlSlot(t *testing.T) {
	s := sequencer.New()
	done := make(chan error, 1)

	go func() { done <- s.Wait(context.Background(), 2) }()

	s.Advance()
	select {
	case <-done:
		t.Fatal("Wait(2) no debe volver con el contador en 1")
	case <-time.After(20 * time.Millisecond):
	}

	s.Advance()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait(2) debe volver con el contador en 2")
	}
}

func TestSequencer_WaitRespetaContexto(t *testing.T) {
	s := sequencer.New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.Wait(ctx, 3)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, s.CurrentSlot())
}

func TestSequencer_HookRecibeNuevoSlot(t *testing.T) {
	var got []int
	s := sequencer.New(sequencer.WithAdvanceHook(func(slot int) { got = append(got, slot) }))

	s.Advance()
	s.Advance()

	assert.Equal(t, []int{1, 2}, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida del widget
// ──────────────────────────────────────────────────────────────────────────────

func TestLifecycle_CompleteAvanzaUnaSolaVez(t *testing.T) {
	s := sequencer.New()
	lc := s.Register(0)

	require.NoError(t, lc.Await(context.Background()))
	require.NoError(t, lc.Start())
	require.NoError(t, lc.Complete(nil))

	err := lc.Complete(nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	assert.Equal(t, 1, s.CurrentSlot(), "la segunda llamada no debe avanzar")
	assert.Equal(t, sequencer.StateCompleted, lc.State())
	assert.Equal(t, sequencer.OutcomeSuccess, lc.Outcome())
}

func TestLifecycle_FallaTambienAvanza(t *testing.T) {
	s := sequencer.New()
	lc := s.Register(0)

	require.NoError(t, lc.Start())
	require.NoError(t, lc.Complete(errors.New("timeout de red")))

	assert.Equal(t, 1, s.CurrentSlot())
	assert.Equal(t, sequencer.OutcomeFailure, lc.Outcome())
}

func TestLifecycle_TransicionesInvalidas(t *testing.T) {
	s := sequencer.New()
	lc := s.Register(0)

	assert.ErrorIs(t, lc.Complete(nil), domain.ErrInvalidState, "no se completa sin start")
	assert.Equal(t, 0, s.CurrentSlot())

	require.NoError(t, lc.Start())
	assert.ErrorIs(t, lc.Start(), domain.ErrInvalidState, "start dos veces")
}

func TestLifecycle_AbortoEnPendingNoAvanza(t *testing.T) {
	s := sequencer.New()
	lc := s.Register(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, lc.Await(ctx))
	assert.Equal(t, sequencer.StatePending, lc.State())
	assert.Equal(t, 0, s.CurrentSlot())
}

func TestLifecycle_NoSecuenciadoNoTocaElContador(t *testing.T) {
	lc := sequencer.Unsequenced()
	_, ok := lc.Slot()
	assert.False(t, ok)

	require.NoError(t, lc.Await(context.Background()))
	require.NoError(t, lc.Start())
	require.NoError(t, lc.Complete(nil))
	assert.Equal(t, sequencer.StateCompleted, lc.State())
}

// Dos widgets en el slot 0 arrancan juntos; el widget del slot 2 espera a que
// ambos terminen (0 → 1 → 2).
func TestLifecycle_SlotCompartidoActuaComoBarrera(t *testing.T) {
	s := sequencer.New()
	a := s.Register(0)
	b := s.Register(0)
	c := s.Register(2)
	ctx := context.Background()

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) {
		mu.Lock()
		order = append(order, name)
		mu.Unlock()
	}

	releaseB := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		require.NoError(t, a.Await(ctx))
		require.NoError(t, a.Start())
		record("a")
		require.NoError(t, a.Complete(nil))
	}()
	go func() {
		defer wg.Done()
		require.NoError(t, b.Await(ctx))
		require.NoError(t, b.Start())
		record("b")
		<-releaseB
		require.NoError(t, b.Complete(errors.New("falla")))
	}()
	go func() {
		defer wg.Done()
		require.NoError(t, c.Await(ctx))
		require.NoError(t, c.Start())
		record("c")
		require.NoError(t, c.Complete(nil))
	}()

	require.Eventually(t, func() bool { return s.CurrentSlot() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, sequencer.StatePending, c.State(), "c no arranca con el contador en 1")

	close(releaseB)
	wg.Wait()

	assert.Equal(t, 3, s.CurrentSlot())
	require.Len(t, order, 3)
	assert.Equal(t, "c", order[2])
}
