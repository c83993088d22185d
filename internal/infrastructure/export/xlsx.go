package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
)

var _ ports.ReportExporter = (*XLSXExporter)(nil)

const sheetName = "Relatório"

// XLSXExporter hoja única con título, cabecera fija y valores numéricos.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) Format() string { return "xlsx" }
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export devuelve el relatório como libro XLSX.
//
// Fila 1: título "<métrica> por <agrupamento>". Fila 3: cabecera. Desde la fila 4: datos.
func (e *XLSXExporter) Export(report *dto.ReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo título: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	numberStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo número: %w", err)
	}

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s por %s", report.MetricLabel, report.GroupHeader))
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	_ = f.SetCellValue(sheetName, "A3", report.GroupHeader)
	_ = f.SetCellValue(sheetName, "B3", report.MetricLabel)
	_ = f.SetCellStyle(sheetName, "A3", "B3", headerStyle)

	for i, p := range report.Rows {
		r := i + 4
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), p.Name)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), p.Value.InexactFloat64())
	}
	if n := len(report.Rows); n > 0 {
		_ = f.SetCellStyle(sheetName, "B4", fmt.Sprintf("B%d", n+3), numberStyle)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 32)
	_ = f.SetColWidth(sheetName, "B", "B", 20)
	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      3,
		TopLeftCell: "A4",
		ActivePane:  "bottomLeft",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
