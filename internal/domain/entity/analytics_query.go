package entity

// MetricFunc función de agregación soportada por la API de analítica.
type MetricFunc string

const (
	MetricSum   MetricFunc = "SUM"
	MetricCount MetricFunc = "COUNT"
	MetricAvg   MetricFunc = "AVG"
)

// Granularity ancho del bucket temporal aplicado a una columna de fecha.
type Granularity string

const (
	GranularityDay       Granularity = "day"
	GranularityMonth     Granularity = "month"
	GranularityHour      Granularity = "hour"
	GranularityDayOfWeek Granularity = "day_of_week"
)

// FilterOp operador de un predicado de filtro.
type FilterOp string

const (
	OpEq         FilterOp = "="
	OpGte        FilterOp = ">="
	OpLte        FilterOp = "<="
	OpGt         FilterOp = ">"
	OpPeriodoDia FilterOp = "PERIODO_DIA" // valor: [horaInicio, horaFin]
)

// Columnas y expresiones con significado fijo en las respuestas de la API.
const (
	ColumnMetricResult   = "metric_result"
	ColumnDateGroupField = "date_group_field"
	ColumnSaleStatus     = "sale_status_desc"
	ColumnCreatedAt      = "created_at"

	SaleStatusCompleted = "COMPLETED"

	OrderByMetricDesc = "metric_result DESC"
	OrderByDateAsc    = "date_group_field ASC"
)

// Metric agregación a calcular.
type Metric struct {
	Func   MetricFunc `json:"func"`
	Column string     `json:"column"`
}

// GroupBy dimensión de agrupación; Granularity sólo aplica a columnas de fecha.
type GroupBy struct {
	Column      string      `json:"column"`
	Granularity Granularity `json:"granularity,omitempty"`
}

// IsTime indica si la agrupación es un bucket temporal.
func (g GroupBy) IsTime() bool {
	return g.Granularity != ""
}

// Filter predicado sobre una columna. Value es escalar o, para PERIODO_DIA, un par de horas.
type Filter struct {
	Column string      `json:"column"`
	Op     FilterOp    `json:"op"`
	Value  interface{} `json:"value"`
}

// AnalyticsQuery consulta declarativa enviada a POST /api/v1/analytics/query.
// Se construye por petición y no se persiste.
type AnalyticsQuery struct {
	Metric  Metric    `json:"metric"`
	GroupBy []GroupBy `json:"group_by"`
	Filters []Filter  `json:"filters"`
	OrderBy string    `json:"order_by,omitempty"`
	Limit   int       `json:"limit,omitempty"`
}

// StatusCompleted filtro base presente en todas las consultas.
func StatusCompleted() Filter {
	return Filter{Column: ColumnSaleStatus, Op: OpEq, Value: SaleStatusCompleted}
}
