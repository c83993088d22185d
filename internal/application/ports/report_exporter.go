package ports

import (
	"time"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
)

// ReportExporter puerto de salida para serializar un relatório (csv, xlsx, pdf).
// Cada adaptador declara el formato que atiende; el caso de uso elige por Format().
type ReportExporter interface {
	Format() string
	ContentType() string
	Export(report *dto.ReportDTO) ([]byte, error)
}

// DashboardObserver recibe eventos de la carga secuenciada (métricas).
// Una implementación nil-safe puede pasarse como nil.
type DashboardObserver interface {
	ObserveWidget(widgetID, outcome string, took time.Duration)
	SlotAdvanced(slot int)
}
