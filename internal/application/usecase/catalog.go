package usecase

import (
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/period"
	"github.com/jhoicas/painel-vendas/internal/domain/translate"
)

// ── Catálogos del constructor de relatórios ───────────────────────────────────

// MetricOption métrica seleccionable ("O que medir?").
type MetricOption struct {
	Key    string
	Label  string
	Metric entity.Metric
}

// GroupByOption dimensión de agrupación ("Como agrupar?").
//
// APIDataKey es la columna de la respuesta que contiene la clave de agrupación;
// vale date_group_field para las agrupaciones temporales. Strategy traduce esa
// clave a un nombre legible.
type GroupByOption struct {
	Key        string
	Label      string
	GroupBy    entity.GroupBy
	APIDataKey string
	CSVHeader  string
	Strategy   translate.Strategy
}

// IsTime indica si la agrupación devuelve buckets temporales.
func (o GroupByOption) IsTime() bool {
	return o.APIDataKey == entity.ColumnDateGroupField
}

// PeriodOption período seleccionable.
type PeriodOption struct {
	Key   period.Key
	Label string
}

// PeriodoDiaOption franja horaria; Hours es nil para el día entero.
type PeriodoDiaOption struct {
	Key   string
	Label string
	Hours []int
}

// PeriodoDiaTodos franja por defecto (sin filtro PERIODO_DIA).
const PeriodoDiaTodos = "todos"

// groupByHour tiene un espacio de claves denso: se amplía el límite de filas.
const groupByHour = "hour"

const (
	defaultReportLimit = 50
	hourReportLimit    = 300
)

var metricOptions = []MetricOption{
	{Key: "faturamento", Label: "Faturamento (Soma)", Metric: entity.Metric{Func: entity.MetricSum, Column: "total_amount"}},
	{Key: "vendas", Label: "Vendas (Contagem)", Metric: entity.Metric{Func: entity.MetricCount, Column: "id"}},
	{Key: "ticket_medio", Label: "Ticket Médio (Média)", Metric: entity.Metric{Func: entity.MetricAvg, Column: "total_amount"}},
	{Key: "tempo_entrega", Label: "Tempo de Entrega (Média)", Metric: entity.Metric{Func: entity.MetricAvg, Column: "delivery_seconds"}},
	{Key: "desconto", Label: "Valor Desconto (Média)", Metric: entity.Metric{Func: entity.MetricAvg, Column: "total_discount"}},
	{Key: "taxa", Label: "Valor Taxa (Média)", Metric: entity.Metric{Func: entity.MetricAvg, Column: "service_tax_fee"}},
}

var groupByOptions = []GroupByOption{
	{
		Key: "channel_id", Label: "por Canal",
		GroupBy:    entity.GroupBy{Column: "channel_id"},
		APIDataKey: "channel_id", CSVHeader: "Canal",
		Strategy: translate.ByChannel{},
	},
	{
		Key: "store_id", Label: "por Loja",
		GroupBy:    entity.GroupBy{Column: "store_id"},
		APIDataKey: "store_id", CSVHeader: "Loja",
		Strategy: translate.ByStore{},
	},
	{
		Key: "product_name", Label: "por Produto",
		GroupBy:    entity.GroupBy{Column: "name"},
		APIDataKey: "name", CSVHeader: "Produto",
		Strategy: translate.ByProductName{},
	},
	{
		Key: "customer_name", Label: "por Cliente",
		GroupBy:    entity.GroupBy{Column: "customer_name"},
		APIDataKey: "customer_name", CSVHeader: "Cliente",
		Strategy: translate.ByCustomerName{},
	},
	{
		Key: "day_of_week", Label: "por Dia da Semana",
		GroupBy:    entity.GroupBy{Column: entity.ColumnCreatedAt, Granularity: entity.GranularityDayOfWeek},
		APIDataKey: entity.ColumnDateGroupField, CSVHeader: "Dia da Semana",
		Strategy: translate.ByDayOfWeek{},
	},
	{
		Key: groupByHour, Label: "por Hora do Dia",
		GroupBy:    entity.GroupBy{Column: entity.ColumnCreatedAt, Granularity: entity.GranularityHour},
		APIDataKey: entity.ColumnDateGroupField, CSVHeader: "Hora",
		Strategy: translate.ByHour{},
	},
}

var periodOptions = []PeriodOption{
	{Key: period.EsteMes, Label: "Este Mês"},
	{Key: period.MesPassado, Label: "Mês Passado"},
	{Key: period.EstaSemana, Label: "Esta Semana"},
	{Key: period.SemanaPassada, Label: "Semana Passada"},
	{Key: period.Hoje, Label: "Hoje"},
	{Key: period.DiaEspecifico, Label: "Um dia específico..."},
	{Key: period.Intervalo, Label: "Intervalo customizado..."},
}

var periodoDiaOptions = []PeriodoDiaOption{
	{Key: PeriodoDiaTodos, Label: "Dia Inteiro"},
	{Key: "madrugada", Label: "Madrugada (00h-06h)", Hours: []int{0, 6}},
	{Key: "manha", Label: "Manhã (07h-11h)", Hours: []int{7, 11}},
	{Key: "almoco", Label: "Almoço (12h-14h)", Hours: []int{12, 14}},
	{Key: "tarde", Label: "Tarde (15h-17h)", Hours: []int{15, 17}},
	{Key: "noite", Label: "Noite (18h-23h)", Hours: []int{18, 23}},
}

// MetricOptions devuelve el catálogo de métricas.
func MetricOptions() []MetricOption { return append([]MetricOption(nil), metricOptions...) }

// GroupByOptions devuelve el catálogo de agrupaciones.
func GroupByOptions() []GroupByOption { return append([]GroupByOption(nil), groupByOptions...) }

// PeriodOptions devuelve el catálogo de períodos.
func PeriodOptions() []PeriodOption { return append([]PeriodOption(nil), periodOptions...) }

// PeriodoDiaOptions devuelve el catálogo de franjas horarias.
func PeriodoDiaOptions() []PeriodoDiaOption {
	return append([]PeriodoDiaOption(nil), periodoDiaOptions...)
}

// FindMetric busca una métrica por clave.
func FindMetric(key string) (MetricOption, bool) {
	for _, o := range metricOptions {
		if o.Key == key {
			return o, true
		}
	}
	return MetricOption{}, false
}

// FindGroupBy busca una agrupación por clave.
func FindGroupBy(key string) (GroupByOption, bool) {
	for _, o := range groupByOptions {
		if o.Key == key {
			return o, true
		}
	}
	return GroupByOption{}, false
}

// FindPeriodoDia busca una franja horaria por clave.
func FindPeriodoDia(key string) (PeriodoDiaOption, bool) {
	for _, o := range periodoDiaOptions {
		if o.Key == key {
			return o, true
		}
	}
	return PeriodoDiaOption{}, false
}
