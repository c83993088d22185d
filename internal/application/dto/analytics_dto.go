package dto

import (
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/translate"
)

// ── Constructor de relatórios (Análise Detalhada) ─────────────────────────────

// ReportRequest selección del usuario en el constructor de relatórios.
// Body de POST /api/reports y POST /api/reports/export.
//
// Los IDs llegan como string (valor del <select>); vacío = sin filtro.
// data_inicio / data_fim sólo aplican a los períodos dia_especifico e intervalo.
type ReportRequest struct {
	MetricKey  string `json:"metric_key" validate:"required,oneof=faturamento vendas ticket_medio tempo_entrega desconto taxa"`
	GroupByKey string `json:"group_by_key" validate:"required,oneof=channel_id store_id product_name customer_name day_of_week hour"`
	ChannelID  string `json:"channel_id" validate:"omitempty,number"`
	StoreID    string `json:"store_id" validate:"omitempty,number"`
	ProductID  string `json:"product_id" validate:"omitempty,number"`
	CustomerID string `json:"customer_id" validate:"omitempty,number"`
	Periodo    string `json:"periodo" validate:"omitempty,oneof=hoje esta_semana semana_passada este_mes mes_passado dia_especifico intervalo"`
	PeriodoDia string `json:"periodo_dia" validate:"omitempty,oneof=todos madrugada manha almoco tarde noite"`
	DataInicio string `json:"data_inicio" validate:"omitempty,datetime=2006-01-02"`
	DataFim    string `json:"data_fim" validate:"omitempty,datetime=2006-01-02"`
}

// ReportDTO resultado de un relatório: la consulta enviada y las filas traducidas.
// Empty = true cuando la API no devolvió filas ("Nenhum dado encontrado").
type ReportDTO struct {
	MetricKey   string                `json:"metric_key"`
	GroupByKey  string                `json:"group_by_key"`
	MetricLabel string                `json:"metric_label"`
	GroupHeader string                `json:"group_header"`
	Query       entity.AnalyticsQuery `json:"query"`
	Rows        []translate.Point     `json:"rows"`
	Empty       bool                  `json:"empty"`
	Warning     string                `json:"warning,omitempty"`
}

// OptionDTO opción simple clave/etiqueta.
type OptionDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// GroupByOptionDTO opción de agrupación con el encabezado usado en la exportación.
type GroupByOptionDTO struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	CSVHeader string `json:"csv_header"`
}

// PeriodoDiaOptionDTO franja horaria; Hours es nil para "todos".
type PeriodoDiaOptionDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Hours []int  `json:"hours,omitempty"`
}

// FilterListsDTO catálogos de referencia para los <select> de filtros.
type FilterListsDTO struct {
	Channels  []entity.ReferenceEntity `json:"channels"`
	Stores    []entity.ReferenceEntity `json:"stores"`
	Products  []entity.ReferenceEntity `json:"products"`
	Customers []entity.ReferenceEntity `json:"customers"`
}

// ReportOptionsDTO respuesta de GET /api/reports/options.
// Si los catálogos de referencia fallan, las listas van vacías y Warning explica por qué.
type ReportOptionsDTO struct {
	Metrics     []OptionDTO           `json:"metrics"`
	GroupBys    []GroupByOptionDTO    `json:"group_bys"`
	Periodos    []OptionDTO           `json:"periodos"`
	PeriodosDia []PeriodoDiaOptionDTO `json:"periodos_dia"`
	Filters     FilterListsDTO        `json:"filters"`
	Formats     []string              `json:"formats"`
	Warning     string                `json:"warning,omitempty"`
}

// ExportFile archivo generado por la exportación de un relatório.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
