package translate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// Point par etiqueta/valor listo para graficar o exportar.
type Point struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// CleanNumber descarta todo lo que no sea dígito antes de interpretar el valor
// ("1.234" → 1234). Se usa para conteos, que algunas respuestas traen formateados.
// Un valor sin dígitos vale 0.
func CleanNumber(v interface{}) decimal.Decimal {
	var b strings.Builder
	for _, r := range display(v) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseNumber interpreta sumas y promedios conservando los decimales.
// Valores no numéricos, NaN o infinitos valen 0.
func ParseNumber(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case json.Number:
		return parseString(n.String())
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(n)
	case float32:
		return ParseNumber(float64(n))
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case int32:
		return decimal.NewFromInt(int64(n))
	case string:
		return parseString(n)
	default:
		return decimal.Zero
	}
}

func parseString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MetricValue lee metric_result según la función de agregación: los COUNT pasan
// por CleanNumber, SUM y AVG por ParseNumber.
func MetricValue(row entity.ResultRow, fn entity.MetricFunc) decimal.Decimal {
	v := row[entity.ColumnMetricResult]
	if fn == entity.MetricCount {
		return CleanNumber(v)
	}
	return ParseNumber(v)
}

// ToPoints proyecta filas ya traducidas a pares nombre/valor.
func ToPoints(rows []entity.ResultRow, fn entity.MetricFunc) []Point {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, Point{Name: row.Name(), Value: MetricValue(row, fn)})
	}
	return points
}

// asInt interpreta claves numéricas que pueden llegar como json.Number, float o string.
func asInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case string:
		s := strings.TrimFunc(n, unicode.IsSpace)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
