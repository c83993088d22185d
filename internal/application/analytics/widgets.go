package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/period"
	"github.com/jhoicas/painel-vendas/internal/domain/translate"
)

const (
	revenueSeriesLimit = 100
	rankingLimit       = 10
	topProductsShown   = 5
)

// fetchFunc consulta los datos de un widget. log lleva el load_id de la carga.
type fetchFunc func(ctx context.Context, uc *DashboardUseCase, r period.Range, log zerolog.Logger) ([]translate.Point, error)

// noSlot marca un widget que carga sin esperar turno.
const noSlot = -1

// widget definición de un widget del dashboard: turno, textos y consulta.
type widget struct {
	id       string
	title    string
	slot     int
	errorMsg string
	fetch    fetchFunc
}

// widgets orden de presentación. Los slots 0, 0, 2, 3, 4, 5 reproducen el
// escalonamiento del panel: ticket_medio y vendas_por_canal arrancan juntos.
var widgets = []widget{
	{
		id:       "faturamento",
		title:    "Faturamento ao Longo do Tempo",
		slot:     noSlot,
		errorMsg: "Não foi possível carregar os dados do faturamento.",
		fetch:    fetchRevenueSeries,
	},
	{
		id:       "ticket_medio",
		title:    "Ticket Médio por Mês",
		slot:     0,
		errorMsg: "Não foi possível carregar o ticket médio.",
		fetch:    monthly(entity.Metric{Func: entity.MetricAvg, Column: "total_amount"}),
	},
	{
		id:       "vendas_por_canal",
		title:    "Vendas por Canal",
		slot:     0,
		errorMsg: "Não foi possível carregar os dados por canal.",
		fetch:    ranking(entity.Metric{Func: entity.MetricCount, Column: "id"}, translate.ByChannel{}, entity.ReferenceChannels),
	},
	{
		id:       "top_produtos",
		title:    "Top 5 Produtos Mais Vendidos",
		slot:     2,
		errorMsg: "Não foi possível carregar os top produtos.",
		fetch:    fetchTopProducts,
	},
	{
		id:       "vendas_mensais",
		title:    "Total de Vendas por Mês",
		slot:     3,
		errorMsg: "Não foi possível carregar o total de vendas.",
		fetch:    monthly(entity.Metric{Func: entity.MetricCount, Column: "id"}),
	},
	{
		id:       "tempo_entrega",
		title:    "Tempo Médio de Entrega (por Mês)",
		slot:     4,
		errorMsg: "Não foi possível carregar o tempo de entrega.",
		fetch: monthly(entity.Metric{Func: entity.MetricAvg, Column: "delivery_seconds"},
			entity.Filter{Column: "delivery_seconds", Op: entity.OpGt, Value: 0}),
	},
	{
		id:       "faturamento_por_loja",
		title:    "Faturamento por Loja (Top 10)",
		slot:     5,
		errorMsg: "Não foi possível carregar os dados por loja.",
		fetch:    ranking(entity.Metric{Func: entity.MetricSum, Column: "total_amount"}, translate.ByStore{}, entity.ReferenceStores),
	},
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// fetchRevenueSeries faturamento diario dentro del período elegido.
func fetchRevenueSeries(ctx context.Context, uc *DashboardUseCase, r period.Range, _ zerolog.Logger) ([]translate.Point, error) {
	q := entity.AnalyticsQuery{
		Metric:  entity.Metric{Func: entity.MetricSum, Column: "total_amount"},
		GroupBy: []entity.GroupBy{{Column: entity.ColumnCreatedAt, Granularity: entity.GranularityDay}},
		Filters: append([]entity.Filter{entity.StatusCompleted()}, r.Filters()...),
		OrderBy: entity.OrderByDateAsc,
		Limit:   revenueSeriesLimit,
	}
	rows, err := uc.analytics.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	rows = translate.Raw{Column: entity.ColumnDateGroupField}.Translate(rows, translate.ReferenceData{})
	return translate.ToPoints(rows, q.Metric.Func), nil
}

// monthly serie mensual de la métrica, sin filtro de período.
func monthly(metric entity.Metric, extra ...entity.Filter) fetchFunc {
	return func(ctx context.Context, uc *DashboardUseCase, _ period.Range, _ zerolog.Logger) ([]translate.Point, error) {
		q := entity.AnalyticsQuery{
			Metric:  metric,
			GroupBy: []entity.GroupBy{{Column: entity.ColumnCreatedAt, Granularity: entity.GranularityMonth}},
			Filters: append([]entity.Filter{entity.StatusCompleted()}, extra...),
			OrderBy: entity.OrderByDateAsc,
		}
		rows, err := uc.analytics.Query(ctx, q)
		if err != nil {
			return nil, err
		}
		rows = translate.Raw{Column: entity.ColumnDateGroupField}.Translate(rows, translate.ReferenceData{})
		return translate.ToPoints(rows, metric.Func), nil
	}
}

// ranking top 10 por entidad. La consulta y el catálogo se piden en paralelo;
// si el catálogo falla las etiquetas quedan como "<Entidad> ID <id>".
func ranking(metric entity.Metric, strategy translate.Strategy, kind entity.ReferenceKind) fetchFunc {
	return func(ctx context.Context, uc *DashboardUseCase, _ period.Range, log zerolog.Logger) ([]translate.Point, error) {
		q := entity.AnalyticsQuery{
			Metric:  metric,
			GroupBy: []entity.GroupBy{{Column: strategy.Field()}},
			Filters: []entity.Filter{entity.StatusCompleted()},
			OrderBy: entity.OrderByMetricDesc,
			Limit:   rankingLimit,
		}

		var (
			rows []entity.ResultRow
			list []entity.ReferenceEntity
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			rows, err = uc.analytics.Query(gctx, q)
			return err
		})
		g.Go(func() error {
			var err error
			list, err = uc.refs.List(gctx, kind)
			if err != nil {
				log.Warn().Err(err).Str("kind", string(kind)).Msg("referência indisponível, usando IDs")
				list = nil
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var ref translate.ReferenceData
		switch kind {
		case entity.ReferenceChannels:
			ref.Channels = list
		case entity.ReferenceStores:
			ref.Stores = list
		}
		return translate.ToPoints(strategy.Translate(rows, ref), metric.Func), nil
	}
}

// fetchTopProducts los cinco produtos más vendidos.
func fetchTopProducts(ctx context.Context, uc *DashboardUseCase, _ period.Range, _ zerolog.Logger) ([]translate.Point, error) {
	products, err := uc.analytics.TopProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("top produtos: %w", err)
	}
	if len(products) > topProductsShown {
		products = products[:topProductsShown]
	}
	points := make([]translate.Point, 0, len(products))
	for _, p := range products {
		points = append(points, translate.Point{Name: p.ProductName, Value: p.TotalQuantitySold})
	}
	return points, nil
}
