package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/period"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/domain/translate"
)

// Mensajes visibles para el usuario.
const (
	msgFilterOptionsUnavailable = "Não foi possível carregar as opções de filtro."
	msgReferenceUnavailable     = "Nomes indisponíveis: exibindo IDs."
)

// ReportUseCase constructor de relatórios (Análise Detalhada): arma la consulta,
// la ejecuta, traduce las filas y exporta el resultado.
type ReportUseCase struct {
	analytics repository.AnalyticsRepository
	refs      *ReferenceUseCase
	exporters map[string]ports.ReportExporter
	validate  *validator.Validate
	log       zerolog.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. loc es la zona usada para resolver
// los períodos; exporters registra los formatos disponibles en Export.
func NewReportUseCase(
	analytics repository.AnalyticsRepository,
	refs *ReferenceUseCase,
	log zerolog.Logger,
	loc *time.Location,
	exporters ...ports.ReportExporter,
) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	byFormat := make(map[string]ports.ReportExporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &ReportUseCase{
		analytics: analytics,
		refs:      refs,
		exporters: byFormat,
		validate:  validator.New(),
		log:       log,
		loc:       loc,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// Options devuelve los catálogos del formulario y las listas de filtros.
// Si las listas fallan se devuelven vacías con un aviso.
func (uc *ReportUseCase) Options(ctx context.Context) *dto.ReportOptionsDTO {
	out := &dto.ReportOptionsDTO{Formats: uc.Formats()}
	for _, m := range metricOptions {
		out.Metrics = append(out.Metrics, dto.OptionDTO{Key: m.Key, Label: m.Label})
	}
	for _, g := range groupByOptions {
		out.GroupBys = append(out.GroupBys, dto.GroupByOptionDTO{Key: g.Key, Label: g.Label, CSVHeader: g.CSVHeader})
	}
	for _, p := range periodOptions {
		out.Periodos = append(out.Periodos, dto.OptionDTO{Key: string(p.Key), Label: p.Label})
	}
	for _, p := range periodoDiaOptions {
		out.PeriodosDia = append(out.PeriodosDia, dto.PeriodoDiaOptionDTO{Key: p.Key, Label: p.Label, Hours: p.Hours})
	}

	lists, err := uc.refs.FilterLists(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("opciones de filtro no disponibles")
		out.Warning = msgFilterOptionsUnavailable
		lists = &dto.FilterListsDTO{
			Channels:  []entity.ReferenceEntity{},
			Stores:    []entity.ReferenceEntity{},
			Products:  []entity.ReferenceEntity{},
			Customers: []entity.ReferenceEntity{},
		}
	}
	out.Filters = *lists
	return out
}

// Generate ejecuta el relatório.
//
// La consulta y, si la agrupación lo necesita, el catálogo de referencia se piden
// en paralelo. Un fallo del catálogo no es fatal: las filas quedan con etiquetas
// "<Entidad> ID <id>" y el DTO lleva un aviso.
func (uc *ReportUseCase) Generate(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error) {
	built, err := uc.build(req)
	if err != nil {
		return nil, err
	}

	var (
		rows   []entity.ResultRow
		ref    translate.ReferenceData
		refErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		rows, err = uc.analytics.Query(ctx, built.Query)
		if err != nil {
			return fmt.Errorf("relatório: consulta: %w", err)
		}
		return nil
	})
	if kind, ok := referenceFor(built.GroupBy.Strategy); ok {
		g.Go(func() error {
			res, err := uc.refs.List(ctx, kind)
			if err != nil {
				refErr = err
				return nil
			}
			switch kind {
			case entity.ReferenceChannels:
				ref.Channels = res.Data
			case entity.ReferenceStores:
				ref.Stores = res.Data
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.log.Error().Err(err).
			Str("metric", built.Metric.Key).
			Str("group_by", built.GroupBy.Key).
			Msg("error al generar relatório")
		return nil, err
	}

	out := &dto.ReportDTO{
		MetricKey:   built.Metric.Key,
		GroupByKey:  built.GroupBy.Key,
		MetricLabel: built.Metric.Label,
		GroupHeader: built.GroupBy.CSVHeader,
		Query:       built.Query,
		Rows:        []translate.Point{},
		Empty:       len(rows) == 0,
	}
	if refErr != nil {
		uc.log.Warn().Err(refErr).Str("group_by", built.GroupBy.Key).Msg("referência indisponível, usando IDs")
		out.Warning = msgReferenceUnavailable
	}
	if len(rows) > 0 {
		translated := built.GroupBy.Strategy.Translate(rows, ref)
		out.Rows = translate.ToPoints(translated, built.Metric.Metric.Func)
	}
	return out, nil
}

// Export genera el relatório y lo serializa en el formato pedido.
// Nombre del archivo: relatorio_<metrica>_por_<agrupamento>.<ext>.
func (uc *ReportUseCase) Export(ctx context.Context, req dto.ReportRequest, format string) (*dto.ExportFile, error) {
	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("relatório: formato %q não suportado: %w", format, domain.ErrInvalidInput)
	}

	report, err := uc.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	content, err := exporter.Export(report)
	if err != nil {
		uc.log.Error().Err(err).Str("format", format).Msg("error al exportar relatório")
		return nil, fmt.Errorf("relatório: exportar %s: %w", format, err)
	}
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("relatorio_%s_por_%s.%s", report.MetricKey, report.GroupByKey, format),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}

// Formats devuelve los formatos de exportación registrados, ordenados.
func (uc *ReportUseCase) Formats() []string {
	out := make([]string, 0, len(uc.exporters))
	for f := range uc.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (uc *ReportUseCase) build(req dto.ReportRequest) (*BuiltQuery, error) {
	if err := uc.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("relatório: campo %s inválido (%s): %w", verrs[0].Field(), verrs[0].Tag(), domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("relatório: %v: %w", err, domain.ErrInvalidInput)
	}
	return BuildQuery(QuerySelection{
		MetricKey:  req.MetricKey,
		GroupByKey: req.GroupByKey,
		ChannelID:  req.ChannelID,
		StoreID:    req.StoreID,
		ProductID:  req.ProductID,
		CustomerID: req.CustomerID,
		Periodo:    period.Key(req.Periodo),
		PeriodoDia: req.PeriodoDia,
		DataInicio: req.DataInicio,
		DataFim:    req.DataFim,
	}, uc.now().In(uc.loc))
}

// referenceFor indica qué catálogo necesita la estrategia para resolver IDs.
func referenceFor(s translate.Strategy) (entity.ReferenceKind, bool) {
	switch s.Kind() {
	case translate.KindChannel:
		return entity.ReferenceChannels, true
	case translate.KindStore:
		return entity.ReferenceStores, true
	default:
		return "", false
	}
}
