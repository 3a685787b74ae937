package excel

import (
	"bytes"
	"fmt"

	"github.com/jhoicas/bulkledger-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Ledger handle en memoria de un libro de gestión abierto. Envuelve excelize,
// que conserva las macros VBA del xlsm en el round-trip de lectura/escritura.
type Ledger struct {
	f *excelize.File
}

// OpenLedger abre el libro desde los bytes subidos.
func OpenLedger(data []byte) (*Ledger, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWorkbookInvalid, err)
	}
	return &Ledger{f: f}, nil
}

// Close libera los recursos del libro.
func (l *Ledger) Close() error {
	return l.f.Close()
}

// Bytes serializa el libro mutado (macros incluidas) a memoria.
func (l *Ledger) Bytes() ([]byte, error) {
	buf, err := l.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// HasSheet indica si el libro contiene la hoja.
func (l *Ledger) HasSheet(name string) bool {
	idx, err := l.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// SheetRows filas de la hoja con valores formateados.
func (l *Ledger) SheetRows(sheet string) ([][]string, error) {
	rows, err := l.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %s: %w", sheet, err)
	}
	return rows, nil
}

// SheetRowsRaw filas de la hoja con valores crudos (fechas como serial numérico).
func (l *Ledger) SheetRowsRaw(sheet string) ([][]string, error) {
	rows, err := l.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("excel: leer hoja %s: %w", sheet, err)
	}
	return rows, nil
}

// lastRow índice 1-based de la última fila con contenido; 0 si la hoja está vacía.
func (l *Ledger) lastRow(sheet string) (int, error) {
	rows, err := l.f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("excel: leer hoja %s: %w", sheet, err)
	}
	return len(rows), nil
}

// maxCol número de columnas con contenido en la hoja.
func (l *Ledger) maxCol(sheet string) (int, error) {
	cols, err := l.f.GetCols(sheet)
	if err != nil {
		return 0, fmt.Errorf("excel: leer columnas de %s: %w", sheet, err)
	}
	return len(cols), nil
}

// copyRowStyle copia el estilo celda a celda de srcRow a dstRow en las columnas 1..maxCol.
func (l *Ledger) copyRowStyle(sheet string, srcRow, dstRow, maxCol int) error {
	for c := 1; c <= maxCol; c++ {
		styleID, err := l.f.GetCellStyle(sheet, cellName(c, srcRow))
		if err != nil {
			return fmt.Errorf("excel: leer estilo: %w", err)
		}
		dst := cellName(c, dstRow)
		if err := l.f.SetCellStyle(sheet, dst, dst, styleID); err != nil {
			return fmt.Errorf("excel: copiar estilo: %w", err)
		}
	}
	return nil
}

// at valor de la columna 1-based dentro de una fila de GetRows; cadena vacía si
// la fila es más corta.
func at(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}

// cellName nombre A1 de una coordenada ya validada.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
