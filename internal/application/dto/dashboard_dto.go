package dto

import (
	"time"

	"github.com/jhoicas/painel-vendas/internal/domain/translate"
)

// Estados de un widget en la respuesta del dashboard.
const (
	WidgetStatusOK        = "ok"
	WidgetStatusFailed    = "failed"
	WidgetStatusCancelled = "cancelled" // la carga terminó antes de llegar su turno
)

// DashboardDTO respuesta de GET /api/dashboard.
// Todos los widgets se devuelven aunque alguno falle: el error es por widget.
type DashboardDTO struct {
	LoadID      string      `json:"load_id"`
	Periodo     string      `json:"periodo"`
	GeneratedAt time.Time   `json:"generated_at"`
	Widgets     []WidgetDTO `json:"widgets"`
}

// WidgetDTO resultado de un widget. Slot es nil para widgets no secuenciados.
type WidgetDTO struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Slot       *int              `json:"slot"`
	Status     string            `json:"status"`
	Error      string            `json:"error,omitempty"`
	Points     []translate.Point `json:"points"`
	DurationMS int64             `json:"duration_ms"`
}

// WidgetDefinitionDTO elemento de GET /api/dashboard/widgets.
type WidgetDefinitionDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slot  *int   `json:"slot"`
}
