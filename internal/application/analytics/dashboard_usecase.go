// Package analytics contiene el caso de uso del Dashboard de vendas: siete widgets
// que se cargan escalonados dentro de un mismo contexto de secuenciación.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/period"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/domain/sequencer"
	"github.com/jhoicas/painel-vendas/internal/domain/translate"
)

const msgCancelled = "Carregamento cancelado."

// DashboardUseCase carga los widgets del panel.
//
// Cada llamada a Load crea su propio Sequencer: los widgets secuenciados esperan
// su turno, consultan la API y, con éxito o con error, avanzan el contador una
// sola vez. El widget de faturamento no tiene turno y carga en cuanto empieza Load.
type DashboardUseCase struct {
	analytics     repository.AnalyticsRepository
	refs          repository.ReferenceRepository
	observer      ports.DashboardObserver
	log           zerolog.Logger
	loc           *time.Location
	widgetTimeout time.Duration
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. observer puede ser nil.
// widgetTimeout 0 deja la consulta de cada widget sin límite propio.
func NewDashboardUseCase(
	analytics repository.AnalyticsRepository,
	refs repository.ReferenceRepository,
	observer ports.DashboardObserver,
	log zerolog.Logger,
	loc *time.Location,
	widgetTimeout time.Duration,
) *DashboardUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUseCase{
		analytics:     analytics,
		refs:          refs,
		observer:      observer,
		log:           log,
		loc:           loc,
		widgetTimeout: widgetTimeout,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Widgets devuelve las definiciones en orden de presentación.
func (uc *DashboardUseCase) Widgets() []dto.WidgetDefinitionDTO {
	out := make([]dto.WidgetDefinitionDTO, 0, len(widgets))
	for _, w := range widgets {
		out = append(out, dto.WidgetDefinitionDTO{ID: w.id, Title: w.title, Slot: w.slotPtr()})
	}
	return out
}

// dashboardPeriods períodos que ofrece el widget de faturamento.
var dashboardPeriods = map[period.Key]bool{
	period.Hoje:       true,
	period.EstaSemana: true,
	period.EsteMes:    true,
	period.MesPassado: true,
}

// Load ejecuta una carga completa del dashboard. periodo sólo afecta al widget de
// faturamento; vacío equivale a este_mes.
//
// Los errores de los widgets no hacen fallar la carga: cada uno queda en su WidgetDTO.
func (uc *DashboardUseCase) Load(ctx context.Context, periodo string) (*dto.DashboardDTO, error) {
	key := period.Key(periodo)
	if key == "" {
		key = period.EsteMes
	}
	if !dashboardPeriods[key] {
		return nil, fmt.Errorf("dashboard: período %q: %w", periodo, domain.ErrInvalidInput)
	}

	now := uc.now().In(uc.loc)
	rng := period.Resolve(key, "", "", now)
	loadID := uuid.NewString()
	log := uc.log.With().Str("load_id", loadID).Logger()

	seq := sequencer.New(sequencer.WithAdvanceHook(func(slot int) {
		uc.observer.SlotAdvanced(slot)
		log.Debug().Int("slot", slot).Msg("turno liberado")
	}))

	results := make([]dto.WidgetDTO, len(widgets))
	var wg sync.WaitGroup
	for i := range widgets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = uc.run(ctx, seq, widgets[i], rng, log)
		}(i)
	}
	wg.Wait()

	return &dto.DashboardDTO{
		LoadID:      loadID,
		Periodo:     string(key),
		GeneratedAt: now,
		Widgets:     results,
	}, nil
}

// run recorre el ciclo de vida de un widget.
func (uc *DashboardUseCase) run(ctx context.Context, seq *sequencer.Sequencer, w widget, rng period.Range, log zerolog.Logger) dto.WidgetDTO {
	out := dto.WidgetDTO{ID: w.id, Title: w.title, Slot: w.slotPtr(), Points: []translate.Point{}}

	lc := sequencer.Unsequenced()
	if w.slot != noSlot {
		lc = seq.Register(w.slot)
	}

	// Si la carga termina antes del turno el widget queda en Pending y no avanza.
	if err := lc.Await(ctx); err != nil || ctx.Err() != nil {
		out.Status = dto.WidgetStatusCancelled
		out.Error = msgCancelled
		uc.observer.ObserveWidget(w.id, dto.WidgetStatusCancelled, 0)
		return out
	}
	if err := lc.Start(); err != nil {
		log.Error().Err(err).Str("widget", w.id).Msg("transición inválida")
		out.Status = dto.WidgetStatusFailed
		out.Error = w.errorMsg
		return out
	}

	fctx := ctx
	if uc.widgetTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, uc.widgetTimeout)
		defer cancel()
	}

	started := time.Now()
	points, err := w.fetch(fctx, uc, rng, log)
	took := time.Since(started)

	if cerr := lc.Complete(err); cerr != nil {
		log.Error().Err(cerr).Str("widget", w.id).Msg("transición inválida")
	}
	out.DurationMS = took.Milliseconds()

	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
		out.Status = dto.WidgetStatusFailed
		out.Error = w.errorMsg
	} else {
		out.Status = dto.WidgetStatusOK
		if points != nil {
			out.Points = points
		}
	}
	ev.Str("widget", w.id).
		Int("slot", w.slot).
		Str("outcome", lc.Outcome().String()).
		Dur("took", took).
		Msg("widget cargado")

	uc.observer.ObserveWidget(w.id, out.Status, took)
	return out
}

func (w widget) slotPtr() *int {
	if w.slot == noSlot {
		return nil
	}
	s := w.slot
	return &s
}

type nopObserver struct{}

func (nopObserver) ObserveWidget(string, string, time.Duration) {}
func (nopObserver) SlotAdvanced(int)                            {}
