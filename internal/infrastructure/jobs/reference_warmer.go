// Package jobs tareas programadas del servicio.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// Refresher recarga un catálogo de referencia (la caché Redis lo implementa).
type Refresher interface {
	Refresh(ctx context.Context, kind entity.ReferenceKind) error
}

// ReferenceWarmer recarga periódicamente todos los catálogos para que las
// peticiones del dashboard encuentren la caché caliente.
type ReferenceWarmer struct {
	cron      *cron.Cron
	refresher Refresher
	schedule  string
	timeout   time.Duration
	log       zerolog.Logger
}

// NewReferenceWarmer construye el job. schedule es una expresión cron estándar de
// cinco campos (p. ej. "*/10 * * * *"); timeout limita cada ejecución.
func NewReferenceWarmer(refresher Refresher, schedule string, timeout time.Duration, log zerolog.Logger) *ReferenceWarmer {
	return &ReferenceWarmer{
		cron:      cron.New(),
		refresher: refresher,
		schedule:  schedule,
		timeout:   timeout,
		log:       log,
	}
}

// Start registra el job y arranca el planificador.
func (w *ReferenceWarmer) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return fmt.Errorf("jobs: expresión cron %q: %w", w.schedule, err)
	}
	w.cron.Start()
	w.log.Info().Str("schedule", w.schedule).Msg("recarga de referencias programada")
	return nil
}

// Stop detiene el planificador; el contexto devuelto termina cuando acaba la
// ejecución en curso.
func (w *ReferenceWarmer) Stop() context.Context {
	return w.cron.Stop()
}

// RunOnce recarga todos los catálogos. Un fallo no detiene los demás.
func (w *ReferenceWarmer) RunOnce(ctx context.Context) error {
	var errs []error
	for _, kind := range entity.ReferenceKinds {
		if err := w.refresher.Refresh(ctx, kind); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
		}
	}
	return errors.Join(errs...)
}

func (w *ReferenceWarmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	started := time.Now()
	if err := w.RunOnce(ctx); err != nil {
		w.log.Warn().Err(err).Msg("recarga de referencias incompleta")
		return
	}
	w.log.Debug().Dur("took", time.Since(started)).Msg("referencias recargadas")
}
