package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/application/usecase"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/period"
)

var fixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func TestBuildQuery_TicketMedioPorLojaEsteMes(t *testing.T) {
	built, err := usecase.BuildQuery(usecase.QuerySelection{
		MetricKey:  "ticket_medio",
		GroupByKey: "store_id",
		Periodo:    period.EsteMes,
	}, fixedNow)
	require.NoError(t, err)

	q := built.Query
	assert.Equal(t, entity.Metric{Func: entity.MetricAvg, Column: "total_amount"}, q.Metric)
	require.Len(t, q.GroupBy, 1)
	assert.Equal(t, entity.GroupBy{Column: "store_id"}, q.GroupBy[0])
	require.Len(t, q.Filters, 3, "estado + par de fechas")
	assert.Equal(t, entity.StatusCompleted(), q.Filters[0])
	assert.Equal(t, entity.Filter{Column: "created_at", Op: entity.OpGte, Value: "2024-03-01T00:00:00.000Z"}, q.Filters[1])
	assert.Equal(t, entity.Filter{Column: "created_at", Op: entity.OpLte, Value: "2024-03-31T23:59:59.000Z"}, q.Filters[2])
	assert.Equal(t, "metric_result DESC", q.OrderBy)
	assert.Equal(t, 50, q.Limit)
}

func TestBuildQuery_AgrupacionPorHora(t *testing.T) {
	built, err := usecase.BuildQuery(usecase.QuerySelection{
		MetricKey:  "vendas",
		GroupByKey: "hour",
		Periodo:    period.Hoje,
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "date_group_field ASC", built.Query.OrderBy)
	assert.Equal(t, 300, built.Query.Limit)
	assert.Equal(t, entity.GroupBy{Column: "created_at", Granularity: entity.GranularityHour}, built.Query.GroupBy[0])
}

func TestBuildQuery_DiaDaSemanaOrdenaPorFecha(t *testing.T) {
	built, err := usecase.BuildQuery(usecase.QuerySelection{MetricKey: "faturamento", GroupByKey: "day_of_week"}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "date_group_field ASC", built.Query.OrderBy)
	assert.Equal(t, 50, built.Query.Limit)
}

func TestBuildQuery_FiltrosDeEntidadYPeriodoDia(t *testing.T) {
	built, err := usecase.BuildQuery(usecase.QuerySelection{
		MetricKey:  "faturamento",
		GroupByKey: "channel_id",
		ChannelID:  "3",
		StoreID:    "12",
		ProductID:  "40",
		CustomerID: "7",
		PeriodoDia: "almoco",
		Periodo:    period.Intervalo, // sin fechas: no hay filtro de fecha
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, []entity.Filter{
		entity.StatusCompleted(),
		{Column: "channel_id", Op: entity.OpEq, Value: int64(3)},
		{Column: "store_id", Op: entity.OpEq, Value: int64(12)},
		{Column: "product_id", Op: entity.OpEq, Value: int64(40)},
		{Column: "customer_id", Op: entity.OpEq, Value: int64(7)},
		{Column: "created_at", Op: entity.OpPeriodoDia, Value: []int{12, 14}},
	}, built.Query.Filters)
	assert.True(t, built.Range.IsZero())
}

func TestBuildQuery_IDNoNumericoSeRechaza(t *testing.T) {
	_, err := usecase.BuildQuery(usecase.QuerySelection{
		MetricKey:  "faturamento",
		GroupByKey: "store_id",
		StoreID:    "abc",
	}, fixedNow)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildQuery_OpcionesDesconocidas(t *testing.T) {
	cases := []usecase.QuerySelection{
		{MetricKey: "lucro", GroupByKey: "store_id"},
		{MetricKey: "vendas", GroupByKey: "status"},
		{MetricKey: "vendas", GroupByKey: "store_id", PeriodoDia: "ceia"},
	}
	for _, sel := range cases {
		_, err := usecase.BuildQuery(sel, fixedNow)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", sel)
	}
}

func TestBuildQuery_IntervaloInvertido(t *testing.T) {
	_, err := usecase.BuildQuery(usecase.QuerySelection{
		MetricKey:  "vendas",
		GroupByKey: "store_id",
		Periodo:    period.Intervalo,
		DataInicio: "2024-02-10",
		DataFim:    "2024-02-01",
	}, fixedNow)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildQuery_PeriodoVacioEsEsteMes(t *testing.T) {
	built, err := usecase.BuildQuery(usecase.QuerySelection{MetricKey: "vendas", GroupByKey: "store_id"}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), built.Range.Start)
}
