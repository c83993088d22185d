package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/jobs"
)

var errBackend = errors.New("backend fora do ar")

type fakeRefresher struct {
	mu      sync.Mutex
	kinds   []entity.ReferenceKind
	failing map[entity.ReferenceKind]bool
}

func (f *fakeRefresher) Refresh(_ context.Context, kind entity.ReferenceKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
	if f.failing[kind] {
		return errBackend
	}
	return nil
}

func TestRunOnce_RecargaTodosLosCatalogos(t *testing.T) {
	r := &fakeRefresher{}
	w := jobs.NewReferenceWarmer(r, "*/10 * * * *", time.Second, zerolog.Nop())

	require.NoError(t, w.RunOnce(context.Background()))
	assert.Equal(t, entity.ReferenceKinds, r.kinds)
}

func TestRunOnce_FalloNoDetieneLosDemas(t *testing.T) {
	r := &fakeRefresher{failing: map[entity.ReferenceKind]bool{entity.ReferenceChannels: true}}
	w := jobs.NewReferenceWarmer(r, "*/10 * * * *", time.Second, zerolog.Nop())

	err := w.RunOnce(context.Background())

	assert.ErrorIs(t, err, errBackend)
	assert.Contains(t, err.Error(), "channels")
	assert.Len(t, r.kinds, len(entity.ReferenceKinds))
}

func TestStart_ExpresionInvalida(t *testing.T) {
	w := jobs.NewReferenceWarmer(&fakeRefresher{}, "cada dez minutos", time.Second, zerolog.Nop())
	assert.Error(t, w.Start())
}

func TestStartStop(t *testing.T) {
	w := jobs.NewReferenceWarmer(&fakeRefresher{}, "@every 1h", time.Second, zerolog.Nop())
	require.NoError(t, w.Start())

	select {
	case <-w.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("el planificador no se detuvo")
	}
}
