package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/period"
)

// QuerySelection selecciones del usuario ya separadas del transporte HTTP.
type QuerySelection struct {
	MetricKey  string
	GroupByKey string
	ChannelID  string
	StoreID    string
	ProductID  string
	CustomerID string
	Periodo    period.Key
	PeriodoDia string
	DataInicio string
	DataFim    string
}

// BuiltQuery consulta armada junto con las opciones que la originaron.
type BuiltQuery struct {
	Query   entity.AnalyticsQuery
	Metric  MetricOption
	GroupBy GroupByOption
	Range   period.Range
}

// BuildQuery arma la AnalyticsQuery a partir de la selección.
//
// Orden de filtros: estado COMPLETED, canal, loja, produto, cliente, PERIODO_DIA y
// el par de fechas. Si el período necesita fechas y faltan, se omite el filtro
// de fecha en lugar de fallar. Un ID no numérico devuelve ErrInvalidInput.
func BuildQuery(sel QuerySelection, now time.Time) (*BuiltQuery, error) {
	metric, ok := FindMetric(sel.MetricKey)
	if !ok {
		return nil, fmt.Errorf("query builder: métrica %q: %w", sel.MetricKey, domain.ErrInvalidInput)
	}
	groupBy, ok := FindGroupBy(sel.GroupByKey)
	if !ok {
		return nil, fmt.Errorf("query builder: agrupamento %q: %w", sel.GroupByKey, domain.ErrInvalidInput)
	}

	filters := []entity.Filter{entity.StatusCompleted()}

	entityFilters := []struct {
		column string
		raw    string
	}{
		{"channel_id", sel.ChannelID},
		{"store_id", sel.StoreID},
		{"product_id", sel.ProductID},
		{"customer_id", sel.CustomerID},
	}
	for _, ef := range entityFilters {
		raw := strings.TrimSpace(ef.raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("query builder: %s %q no es numérico: %w", ef.column, ef.raw, domain.ErrInvalidInput)
		}
		filters = append(filters, entity.Filter{Column: ef.column, Op: entity.OpEq, Value: id})
	}

	periodoDia := sel.PeriodoDia
	if periodoDia == "" {
		periodoDia = PeriodoDiaTodos
	}
	pd, ok := FindPeriodoDia(periodoDia)
	if !ok {
		return nil, fmt.Errorf("query builder: período do dia %q: %w", sel.PeriodoDia, domain.ErrInvalidInput)
	}
	if pd.Hours != nil {
		filters = append(filters, entity.Filter{
			Column: entity.ColumnCreatedAt,
			Op:     entity.OpPeriodoDia,
			Value:  append([]int(nil), pd.Hours...),
		})
	}

	key := sel.Periodo
	if key == "" {
		key = period.EsteMes
	}
	r := period.Resolve(key, sel.DataInicio, sel.DataFim, now)
	if !r.IsZero() && r.Start.After(r.End) {
		return nil, fmt.Errorf("query builder: data_inicio posterior a data_fim: %w", domain.ErrInvalidInput)
	}
	filters = append(filters, r.Filters()...)

	orderBy := entity.OrderByMetricDesc
	if groupBy.IsTime() {
		orderBy = entity.OrderByDateAsc
	}
	limit := defaultReportLimit
	if groupBy.Key == groupByHour {
		limit = hourReportLimit
	}

	return &BuiltQuery{
		Query: entity.AnalyticsQuery{
			Metric:  metric.Metric,
			GroupBy: []entity.GroupBy{groupBy.GroupBy},
			Filters: filters,
			OrderBy: orderBy,
			Limit:   limit,
		},
		Metric:  metric,
		GroupBy: groupBy,
		Range:   r,
	}, nil
}
