package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/jhoicas/bulkledger-api/pkg/exceltime"
	"github.com/xuri/excelize/v2"
)

// Watermark máxima marca de tiempo de la columna 시간 (A) de LOG en las filas
// de datos; tiempo cero si no hay ninguna parseable.
func (l *Ledger) Watermark() (time.Time, error) {
	rows, err := l.f.GetRows(ledger.SheetLog, excelize.Options{RawCellValue: true})
	if err != nil {
		return time.Time{}, fmt.Errorf("excel: leer hoja %s: %w", ledger.SheetLog, err)
	}
	var wm time.Time
	for r := ledger.LogDataStart; r <= len(rows); r++ {
		if t, ok := exceltime.ParseCell(at(rows[r-1], 1)); ok && t.After(wm) {
			wm = t
		}
	}
	return wm, nil
}

// AppendLogRow añade el registro al final de LOG. Las columnas se resuelven
// por nombre de cabecera de la fila 1, así el libro puede traer o no la
// columna ID y nombrar el código 품번 o 품목코드 indistintamente. El estilo se
// copia de la última fila existente.
func (l *Ledger) AppendLogRow(rec ledger.ChangeRecord) error {
	rows, err := l.f.GetRows(ledger.SheetLog)
	if err != nil {
		return fmt.Errorf("excel: leer hoja %s: %w", ledger.SheetLog, err)
	}

	header := map[string]int{}
	if len(rows) >= ledger.LogHeaderRow {
		for c, hv := range rows[ledger.LogHeaderRow-1] {
			if name := strings.TrimSpace(hv); name != "" {
				header[name] = c + 1
			}
		}
	}

	last := len(rows)
	if last < ledger.LogHeaderRow {
		last = ledger.LogHeaderRow
	}
	newRow := last + 1

	maxCol, err := l.maxCol(ledger.SheetLog)
	if err != nil {
		return err
	}
	if err := l.copyRowStyle(ledger.SheetLog, last, newRow, maxCol); err != nil {
		return err
	}

	var timeVal any = rec.Time
	if !rec.HasTime {
		timeVal = ""
	}
	values := []struct {
		header string
		val    any
	}{
		{ledger.HdrTime, timeVal},
		{ledger.HdrID, rec.ID},
		{ledger.HdrItemCodeAlt, rec.ItemCode}, // la macro del libro usa 품목코드
		{ledger.HdrItemCode, rec.ItemCode},
		{ledger.HdrName, rec.Name},
		{ledger.HdrLot, rec.Lot},
		{ledger.HdrDrumNo, rec.DrumNo},
		{ledger.HdrQtyBefore, numberOrText(rec.QtyBefore)},
		{ledger.HdrQtyAfter, numberOrText(rec.QtyAfter)},
		{ledger.HdrDelta, numberOrText(rec.Delta)},
		{ledger.HdrLocBefore, rec.LocBefore},
		{ledger.HdrLocAfter, rec.LocAfter},
	}
	for _, v := range values {
		col, ok := header[v.header]
		if !ok {
			continue
		}
		if err := l.f.SetCellValue(ledger.SheetLog, cellName(col, newRow), v.val); err != nil {
			return fmt.Errorf("excel: escribir fila de LOG: %w", err)
		}
	}
	return nil
}

// numberOrText número cuando el texto parsea como float; el texto tal cual si no.
func numberOrText(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		return f
	}
	return s
}
