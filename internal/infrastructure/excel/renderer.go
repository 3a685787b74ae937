package excel

import (
	"fmt"
	"strconv"

	"github.com/jhoicas/bulkledger-api/internal/application/extract"
	"github.com/xuri/excelize/v2"
)

var _ extract.SheetRenderer = (*Renderer)(nil)

// Renderer vuelca una grilla de valores en un libro xlsx nuevo de una sola
// hoja; los textos que parsean como número se escriben como número.
type Renderer struct{}

// NewRenderer construye el adaptador.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render escribe las filas en la hoja por defecto y serializa el libro.
func (Renderer) Render(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, val := range row {
			if val == "" {
				continue
			}
			cell := cellName(c+1, r+1)
			var v any = val
			if num, err := strconv.ParseFloat(val, 64); err == nil {
				v = num
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel: escribir celda %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar hoja exportada: %w", err)
	}
	return buf.Bytes(), nil
}
