// Package export serializa relatórios en los formatos descargables (csv, xlsx).
// El PDF vive en el paquete pdf.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
)

var _ ports.ReportExporter = (*CSVExporter)(nil)

// utf8BOM permite que Excel abra el archivo con acentos correctos.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter separador ';', cabecera [agrupamento, métrica], una línea por fila.
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (e *CSVExporter) Format() string      { return "csv" }
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export devuelve el relatório como CSV.
func (e *CSVExporter) Export(report *dto.ReportDTO) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'
	w.UseCRLF = true

	if err := w.Write([]string{report.GroupHeader, report.MetricLabel}); err != nil {
		return nil, fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, p := range report.Rows {
		if err := w.Write([]string{p.Name, p.Value.String()}); err != nil {
			return nil, fmt.Errorf("csv: fila %q: %w", p.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
