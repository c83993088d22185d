// Package translate convierte las filas opacas de la API de analítica en filas con
// un campo "name" legible, cruzando IDs con los datos de referencia.
//
// Cada dimensión de agrupación tiene su estrategia; todas son funciones puras:
// devuelven filas nuevas y nunca modifican la entrada.
package translate

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// Kind etiqueta de la estrategia.
type Kind string

const (
	KindChannel      Kind = "channel"
	KindStore        Kind = "store"
	KindProductName  Kind = "product_name"
	KindCustomerName Kind = "customer_name"
	KindDayOfWeek    Kind = "day_of_week"
	KindHour         Kind = "hour"
	KindRaw          Kind = "raw"
)

// NameField campo añadido a cada fila traducida.
const NameField = "name"

// ReferenceData listas de referencia usadas para resolver IDs. Puede estar vacía:
// en ese caso los IDs se muestran con la etiqueta sintética "<Entidad> ID <id>".
type ReferenceData struct {
	Channels []entity.ReferenceEntity
	Stores   []entity.ReferenceEntity
}

// Strategy traducción de una dimensión de agrupación.
type Strategy interface {
	Kind() Kind
	// Field columna de la fila que contiene la clave de agrupación.
	Field() string
	Translate(rows []entity.ResultRow, ref ReferenceData) []entity.ResultRow
}

var (
	_ Strategy = ByChannel{}
	_ Strategy = ByStore{}
	_ Strategy = ByProductName{}
	_ Strategy = ByCustomerName{}
	_ Strategy = ByDayOfWeek{}
	_ Strategy = ByHour{}
	_ Strategy = Raw{}
)

// ── Canal / Loja ──────────────────────────────────────────────────────────────

// ByChannel resuelve channel_id contra la lista de canales.
type ByChannel struct{}

func (ByChannel) Kind() Kind    { return KindChannel }
func (ByChannel) Field() string { return "channel_id" }
func (s ByChannel) Translate(rows []entity.ResultRow, ref ReferenceData) []entity.ResultRow {
	return lookup(rows, s.Field(), ref.Channels, "Canal")
}

// ByStore resuelve store_id contra la lista de lojas.
type ByStore struct{}

func (ByStore) Kind() Kind    { return KindStore }
func (ByStore) Field() string { return "store_id" }
func (s ByStore) Translate(rows []entity.ResultRow, ref ReferenceData) []entity.ResultRow {
	return lookup(rows, s.Field(), ref.Stores, "Loja")
}

func lookup(rows []entity.ResultRow, field string, list []entity.ReferenceEntity, entityLabel string) []entity.ResultRow {
	names := make(map[int64]string, len(list))
	for _, e := range list {
		names[e.ID] = e.Label()
	}
	return mapNames(rows, field, func(v interface{}) string {
		if id, ok := asInt(v); ok {
			if name, found := names[id]; found && name != "" {
				return name
			}
		}
		return fmt.Sprintf("%s ID %s", entityLabel, display(v))
	})
}

// ── Produto / Cliente ─────────────────────────────────────────────────────────

// ByProductName la columna "name" ya es el nombre del produto.
type ByProductName struct{}

func (ByProductName) Kind() Kind    { return KindProductName }
func (ByProductName) Field() string { return "name" }
func (s ByProductName) Translate(rows []entity.ResultRow, _ ReferenceData) []entity.ResultRow {
	return mapNames(rows, s.Field(), display)
}

// ByCustomerName la columna customer_name ya es el nombre del cliente.
type ByCustomerName struct{}

func (ByCustomerName) Kind() Kind    { return KindCustomerName }
func (ByCustomerName) Field() string { return "customer_name" }
func (s ByCustomerName) Translate(rows []entity.ResultRow, _ ReferenceData) []entity.ResultRow {
	return mapNames(rows, s.Field(), display)
}

// ── Dia da semana / Hora ──────────────────────────────────────────────────────

// weekdayLabels índice 0 = domingo.
var weekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// ByDayOfWeek traduce el índice 0–6 del bucket; fuera de rango usa "Dia <n>".
type ByDayOfWeek struct{}

func (ByDayOfWeek) Kind() Kind    { return KindDayOfWeek }
func (ByDayOfWeek) Field() string { return entity.ColumnDateGroupField }
func (s ByDayOfWeek) Translate(rows []entity.ResultRow, _ ReferenceData) []entity.ResultRow {
	return mapNames(rows, s.Field(), func(v interface{}) string {
		if n, ok := asInt(v); ok && n >= 0 && n < int64(len(weekdayLabels)) {
			return weekdayLabels[n]
		}
		return "Dia " + display(v)
	})
}

// hourLayouts formatos de timestamp aceptados; los que no tienen zona se leen como UTC.
var hourLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05-07",
}

// ByHour muestra la hora UTC del bucket como "H:00". Un timestamp ilegible se
// devuelve tal cual.
type ByHour struct{}

func (ByHour) Kind() Kind    { return KindHour }
func (ByHour) Field() string { return entity.ColumnDateGroupField }
func (s ByHour) Translate(rows []entity.ResultRow, _ ReferenceData) []entity.ResultRow {
	return mapNames(rows, s.Field(), func(v interface{}) string {
		raw := display(v)
		for _, layout := range hourLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
				return fmt.Sprintf("%d:00", t.UTC().Hour())
			}
		}
		return raw
	})
}

// ── Sin traducción ────────────────────────────────────────────────────────────

// Raw copia el valor de la columna indicada como nombre (p. ej. date_group_field
// en las series mensuales).
type Raw struct {
	Column string
}

func (Raw) Kind() Kind      { return KindRaw }
func (r Raw) Field() string { return r.Column }
func (r Raw) Translate(rows []entity.ResultRow, _ ReferenceData) []entity.ResultRow {
	return mapNames(rows, r.Column, display)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func mapNames(rows []entity.ResultRow, field string, name func(v interface{}) string) []entity.ResultRow {
	out := make([]entity.ResultRow, len(rows))
	for i, row := range rows {
		c := row.Clone()
		c[NameField] = name(row[field])
		out[i] = c
	}
	return out
}

func display(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
