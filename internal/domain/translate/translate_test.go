package translate_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/translate"
)

func names(rows []entity.ResultRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name()
	}
	return out
}

func TestByStore_SinReferenciaUsaEtiquetaSintetica(t *testing.T) {
	rows := []entity.ResultRow{{"store_id": 7, "metric_result": "120"}}

	out := translate.ByStore{}.Translate(rows, translate.ReferenceData{})

	require.Len(t, out, 1)
	assert.Equal(t, "Loja ID 7", out[0]["name"])
	assert.Equal(t, "120", out[0]["metric_result"], "el resto de la fila se conserva")
}

func TestByStore_ResuelveNombres(t *testing.T) {
	ref := translate.ReferenceData{Stores: []entity.ReferenceEntity{
		{ID: 1, Name: "Centro"},
		{ID: 2, Name: "Shopping Norte"},
	}}
	rows := []entity.ResultRow{
		{"store_id": json.Number("2")},
		{"store_id": float64(1)},
		{"store_id": json.Number("99")},
	}

	out := translate.ByStore{}.Translate(rows, ref)

	assert.Equal(t, []string{"Shopping Norte", "Centro", "Loja ID 99"}, names(out))
}

func TestByChannel_FallbackCanal(t *testing.T) {
	ref := translate.ReferenceData{Channels: []entity.ReferenceEntity{{ID: 3, Name: "iFood"}}}
	rows := []entity.ResultRow{{"channel_id": json.Number("3")}, {"channel_id": json.Number("4")}}

	out := translate.ByChannel{}.Translate(rows, ref)

	assert.Equal(t, []string{"iFood", "Canal ID 4"}, names(out))
}

func TestByDayOfWeek(t *testing.T) {
	rows := []entity.ResultRow{
		{"date_group_field": json.Number("0")},
		{"date_group_field": json.Number("6")},
		{"date_group_field": json.Number("9")},
		{"date_group_field": "3"},
	}

	out := translate.ByDayOfWeek{}.Translate(rows, translate.ReferenceData{})

	assert.Equal(t, []string{"Dom", "Sáb", "Dia 9", "Qua"}, names(out))
}

func TestByHour(t *testing.T) {
	rows := []entity.ResultRow{
		{"date_group_field": "2024-03-15T14:00:00Z"},
		{"date_group_field": "2024-03-15T09:00:00-03:00"},
		{"date_group_field": "2024-03-15 00:00:00"},
		{"date_group_field": "não é data"},
	}

	out := translate.ByHour{}.Translate(rows, translate.ReferenceData{})

	assert.Equal(t, []string{"14:00", "12:00", "0:00", "não é data"}, names(out))
}

func TestByProductYCustomer_Passthrough(t *testing.T) {
	products := translate.ByProductName{}.Translate([]entity.ResultRow{{"name": "X-Burger"}}, translate.ReferenceData{})
	customers := translate.ByCustomerName{}.Translate([]entity.ResultRow{{"customer_name": "Ana"}}, translate.ReferenceData{})

	assert.Equal(t, []string{"X-Burger"}, names(products))
	assert.Equal(t, []string{"Ana"}, names(customers))
}

func TestRaw_UsaLaColumnaIndicada(t *testing.T) {
	out := translate.Raw{Column: "date_group_field"}.Translate(
		[]entity.ResultRow{{"date_group_field": "2024-03-01T00:00:00Z"}}, translate.ReferenceData{})

	assert.Equal(t, []string{"2024-03-01T00:00:00Z"}, names(out))
}

func TestTranslate_EsPuro(t *testing.T) {
	rows := []entity.ResultRow{{"store_id": json.Number("7"), "metric_result": json.Number("10")}}
	ref := translate.ReferenceData{Stores: []entity.ReferenceEntity{{ID: 7, Name: "Centro"}}}

	first := translate.ByStore{}.Translate(rows, ref)
	second := translate.ByStore{}.Translate(rows, ref)

	assert.Equal(t, first, second)
	_, mutated := rows[0]["name"]
	assert.False(t, mutated, "la entrada no se modifica")
}

// ──────────────────────────────────────────────────────────────────────────────
// Limpieza numérica
// ──────────────────────────────────────────────────────────────────────────────

func TestCleanNumber(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
	}{
		{"1.234", 1234},
		{"abc", 0},
		{"", 0},
		{nil, 0},
		{json.Number("42"), 42},
		{"1,234,567", 1234567},
	}
	for _, tc := range cases {
		got := translate.CleanNumber(tc.in)
		assert.True(t, decimal.NewFromInt(tc.want).Equal(got), "CleanNumber(%v) = %s", tc.in, got)
	}
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, "1234.56", translate.ParseNumber(json.Number("1234.56")).String())
	assert.Equal(t, "87.5", translate.ParseNumber("87.5").String())
	assert.True(t, translate.ParseNumber("abc").IsZero())
	assert.True(t, translate.ParseNumber(nil).IsZero())
	assert.Equal(t, "3", translate.ParseNumber(3).String())
}

func TestToPoints_SegunFuncion(t *testing.T) {
	rows := []entity.ResultRow{{"name": "iFood", "metric_result": "1.234"}}

	count := translate.ToPoints(rows, entity.MetricCount)
	avg := translate.ToPoints(rows, entity.MetricAvg)

	require.Len(t, count, 1)
	assert.Equal(t, "iFood", count[0].Name)
	assert.Equal(t, "1234", count[0].Value.String(), "COUNT se limpia de separadores")
	assert.Equal(t, "1.234", avg[0].Value.String(), "AVG conserva los decimales")
}
