// Package period resuelve períodos simbólicos ("hoje", "este_mes", ...) a rangos
// de fechas inclusivos en hora local.
package period

import (
	"time"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// Key período simbólico seleccionado en el dashboard o en el constructor de relatórios.
type Key string

const (
	Hoje          Key = "hoje"
	EstaSemana    Key = "esta_semana"
	SemanaPassada Key = "semana_passada"
	EsteMes       Key = "este_mes"
	MesPassado    Key = "mes_passado"
	DiaEspecifico Key = "dia_especifico" // requiere fecha de inicio
	Intervalo     Key = "intervalo"      // requiere fecha de inicio y de fin
)

// Keys períodos en el orden en que se ofrecen al usuario.
var Keys = []Key{EsteMes, MesPassado, EstaSemana, SemanaPassada, Hoje, DiaEspecifico, Intervalo}

// DateLayout formato de las fechas explícitas (sin zona horaria).
const DateLayout = "2006-01-02"

// isoLayout equivale a Date.toISOString: UTC con milisegundos.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Valid indica si la clave es un período conocido.
func (k Key) Valid() bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

// RequiresDates indica si el período necesita fechas explícitas.
func (k Key) RequiresDates() bool {
	return k == DiaEspecifico || k == Intervalo
}

// Range rango [Start, End] con End inclusivo a las 23:59:59.
// El valor cero representa "sin filtro de fecha".
type Range struct {
	Start time.Time
	End   time.Time
}

// IsZero indica un rango vacío.
func (r Range) IsZero() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

// Filters devuelve el par created_at >= / <= en formato ISO UTC, o nil si el rango está vacío.
func (r Range) Filters() []entity.Filter {
	if r.IsZero() {
		return nil
	}
	return []entity.Filter{
		{Column: entity.ColumnCreatedAt, Op: entity.OpGte, Value: r.Start.UTC().Format(isoLayout)},
		{Column: entity.ColumnCreatedAt, Op: entity.OpLte, Value: r.End.UTC().Format(isoLayout)},
	}
}

// Resolve convierte un período en un rango concreto relativo a now (y a su zona horaria).
// start/end sólo se usan para dia_especifico e intervalo; si faltan o no se pueden
// interpretar el resultado es un rango vacío, nunca un error. Claves desconocidas
// se tratan como este_mes.
func Resolve(key Key, start, end string, now time.Time) Range {
	loc := now.Location()
	y, m, d := now.Date()

	switch key {
	case Hoje:
		return Range{Start: startOfDay(y, m, d, loc), End: endOfDay(y, m, d, loc)}

	case EstaSemana:
		first := d - int(now.Weekday()) // semana empieza el domingo
		return Range{Start: startOfDay(y, m, first, loc), End: endOfDay(y, m, first+6, loc)}

	case SemanaPassada:
		first := d - int(now.Weekday()) - 7
		return Range{Start: startOfDay(y, m, first, loc), End: endOfDay(y, m, first+6, loc)}

	case MesPassado:
		return Range{Start: startOfDay(y, m-1, 1, loc), End: endOfDay(y, m, 0, loc)}

	case DiaEspecifico:
		day, ok := parseDate(start, loc)
		if !ok {
			return Range{}
		}
		dy, dm, dd := day.Date()
		return Range{Start: day, End: endOfDay(dy, dm, dd, loc)}

	case Intervalo:
		from, ok := parseDate(start, loc)
		if !ok {
			return Range{}
		}
		to, ok := parseDate(end, loc)
		if !ok {
			return Range{}
		}
		ty, tm, td := to.Date()
		return Range{Start: from, End: endOfDay(ty, tm, td, loc)}

	default: // este_mes
		return Range{Start: startOfDay(y, m, 1, loc), End: endOfDay(y, m+1, 0, loc)}
	}
}

// parseDate interpreta "YYYY-MM-DD" como medianoche local.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// time.Date normaliza días y meses fuera de rango (día 0 = último día del mes anterior).
func startOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}
