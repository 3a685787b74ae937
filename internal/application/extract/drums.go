package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/bulkledger-api/internal/domain"
	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/jhoicas/bulkledger-api/pkg/exceltime"
)

// baseColumns posiciones 0-based de los campos base y de la primera ranura de
// tambor, resueltas por nombre sobre la fila de cabecera de la hoja 메인.
type baseColumns struct {
	item, name, lot, line, mfg, status int
	slotStart                          int
}

// resolveColumns localiza las columnas por su cabecera; cualquier campo
// ausente invalida el libro.
func resolveColumns(header []string) (baseColumns, error) {
	find := func(want string) (int, error) {
		for i, h := range header {
			if strings.TrimSpace(h) == want {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: la hoja %s no trae la columna '%s'",
			domain.ErrMissingColumn, ledger.SheetMain, want)
	}

	var (
		cols baseColumns
		err  error
	)
	if cols.item, err = find(ledger.HdrItemCodeAlt); err != nil {
		return cols, err
	}
	if cols.name, err = find(ledger.HdrName); err != nil {
		return cols, err
	}
	if cols.lot, err = find(ledger.HdrLot); err != nil {
		return cols, err
	}
	if cols.line, err = find(ledger.HdrLine); err != nil {
		return cols, err
	}
	if cols.mfg, err = find(ledger.HdrMfgDate); err != nil {
		return cols, err
	}
	if cols.status, err = find(ledger.HdrStatus); err != nil {
		return cols, err
	}
	if cols.slotStart, err = find(ledger.HdrFirstSlot); err != nil {
		return cols, err
	}
	return cols, nil
}

// DeriveDrumRows expande la hoja 메인 en la tabla extendida de tambores: una
// fila por tambor en stock, en el orden de ledger.ExtendedColumns. La entrada
// son las filas crudas de la hoja (fechas como serial).
//
// Cada ranura aporta tantas filas como indique su celda 보유통; para los
// estados 외주/폐기/소진 un valor no positivo cuenta como un tambor
// igualmente, para que el tambor salido de planta no desaparezca del export.
func DeriveDrumRows(rows [][]string) ([][]string, error) {
	if len(rows) < ledger.MainHeaderRow {
		return nil, fmt.Errorf("%w: la hoja %s no trae fila de cabecera",
			domain.ErrMissingColumn, ledger.SheetMain)
	}
	cols, err := resolveColumns(rows[ledger.MainHeaderRow-1])
	if err != nil {
		return nil, err
	}

	var out [][]string
	for _, row := range rows[ledger.MainDataStart-1:] {
		item := strings.TrimSpace(at(row, cols.item))
		name := strings.TrimSpace(at(row, cols.name))
		if item == "" && name == "" {
			continue
		}
		base := []string{
			item,
			name,
			strings.TrimSpace(at(row, cols.lot)),
			strings.TrimSpace(at(row, cols.line)),
			mfgDate(at(row, cols.mfg)),
			strings.TrimSpace(at(row, cols.status)),
		}
		for slot := 1; slot <= ledger.SlotCount; slot++ {
			capIdx := cols.slotStart + 3*(slot-1)
			capacity := strings.TrimSpace(at(row, capIdx))
			loc := ledger.ComposeLocation(at(row, capIdx+1), detailAt(row, slot))
			n := drumCount(at(row, capIdx+2), loc)
			for k := 0; k < n; k++ {
				rec := make([]string, 0, len(ledger.ExtendedColumns))
				rec = append(rec, base...)
				rec = append(rec, strconv.Itoa(slot), capacity, loc)
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

// drumCount convierte la celda 보유통 en número de tambores a emitir.
func drumCount(raw, loc string) int {
	n := 0
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		n = int(f)
	}
	if n <= 0 {
		switch loc {
		case ledger.StatusOutsourced, ledger.StatusDisposed, ledger.StatusExhausted:
			n = 1
		}
	}
	return n
}

// mfgDate normaliza la fecha de fabricación a AAAA-MM-DD; ilegible queda vacía.
func mfgDate(raw string) string {
	t, ok := exceltime.ParseCell(raw)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// detailAt celda de la banda oculta de ubicación detallada de la ranura.
func detailAt(row []string, slot int) string {
	col, ok := ledger.DetailColumn(slot)
	if !ok {
		return ""
	}
	return at(row, col-1)
}

// at celda 0-based tolerante a filas cortas.
func at(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
