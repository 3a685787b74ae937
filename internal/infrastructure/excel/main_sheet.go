package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/xuri/excelize/v2"
)

// FindMainRow primera fila de 메인 cuyo (품목코드, 로트번호) normalizado
// coincide; 0 si el lote no existe.
func (l *Ledger) FindMainRow(itemCode, lot string) (int, error) {
	want := ledger.NewLotKey(itemCode, lot)
	rows, err := l.f.GetRows(ledger.SheetMain)
	if err != nil {
		return 0, fmt.Errorf("excel: leer hoja %s: %w", ledger.SheetMain, err)
	}
	for r := ledger.MainDataStart; r <= len(rows); r++ {
		row := rows[r-1]
		if ledger.NewLotKey(at(row, ledger.ColItemCode), at(row, ledger.ColLot)) == want {
			return r, nil
		}
	}
	return 0, nil
}

// TemplateRow última fila de 메인 con 로트번호 no vacío, buscando de abajo
// hacia arriba; 0 si la hoja no tiene datos.
func (l *Ledger) TemplateRow() (int, error) {
	rows, err := l.f.GetRows(ledger.SheetMain)
	if err != nil {
		return 0, fmt.Errorf("excel: leer hoja %s: %w", ledger.SheetMain, err)
	}
	for r := len(rows); r >= ledger.MainDataStart; r-- {
		if strings.TrimSpace(at(rows[r-1], ledger.ColLot)) != "" {
			return r, nil
		}
	}
	return 0, nil
}

// extendTables alarga hasta newRow el rango de toda tabla de 메인 que contenga
// templateRow, conservando nombre y estilo. La fila nueva queda así dentro de
// la tabla y las referencias estructuradas ([@컬럼]) siguen resolviendo.
func (l *Ledger) extendTables(templateRow, newRow int) error {
	tables, err := l.f.GetTables(ledger.SheetMain)
	if err != nil {
		return fmt.Errorf("excel: leer tablas: %w", err)
	}
	for _, tbl := range tables {
		minCol, minRow, maxCol, maxRow, err := rangeBounds(tbl.Range)
		if err != nil {
			return err
		}
		if templateRow < minRow || templateRow > maxRow || newRow <= maxRow {
			continue
		}
		if err := l.f.DeleteTable(tbl.Name); err != nil {
			return fmt.Errorf("excel: quitar tabla %s: %w", tbl.Name, err)
		}
		extended := tbl
		extended.Range = fmt.Sprintf("%s:%s", cellName(minCol, minRow), cellName(maxCol, newRow))
		if err := l.f.AddTable(ledger.SheetMain, &extended); err != nil {
			return fmt.Errorf("excel: extender tabla %s: %w", tbl.Name, err)
		}
	}
	return nil
}

// rangeBounds límites 1-based de un rango A1 ("F3:U418", admite prefijo de
// hoja y anclas $).
func rangeBounds(ref string) (minCol, minRow, maxCol, maxRow int, err error) {
	area := ref
	if i := strings.IndexByte(area, '!'); i >= 0 {
		area = area[i+1:]
	}
	first, second, found := strings.Cut(area, ":")
	if !found {
		second = first
	}
	c1, r1, err := excelize.CellNameToCoordinates(strings.ReplaceAll(first, "$", ""))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("excel: rango de tabla %q: %w", ref, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(strings.ReplaceAll(second, "$", ""))
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("excel: rango de tabla %q: %w", ref, err)
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return c1, r1, c2, r2, nil
}

// CreateMainRow materializa una fila nueva al final de 메인: extiende las
// tablas que contienen la plantilla, copia el formato de la fila base, escribe
// los campos de identidad y metadatos, y replica las fórmulas de la plantilla
// reescribiendo su número de fila. Devuelve el índice de la fila creada.
func (l *Ledger) CreateMainRow(itemCode, lot, name string, meta *ledger.LotMeta, templateRow int) (int, error) {
	last, err := l.lastRow(ledger.SheetMain)
	if err != nil {
		return 0, err
	}
	newRow := last + 1

	if templateRow > 0 {
		if err := l.extendTables(templateRow, newRow); err != nil {
			return 0, err
		}
	}

	maxCol, err := l.maxCol(ledger.SheetMain)
	if err != nil {
		return 0, err
	}
	baseRow := templateRow
	if baseRow == 0 {
		baseRow = newRow - 1
	}
	if baseRow >= 1 {
		if err := l.copyRowStyle(ledger.SheetMain, baseRow, newRow, maxCol); err != nil {
			return 0, err
		}
	}

	if name == "" && meta != nil {
		name = meta.Name
	}
	line := ""
	if meta != nil {
		line = meta.Line
	}
	type cellWrite struct {
		col int
		val any
	}
	writes := []cellWrite{
		{ledger.ColItemCode, strings.TrimSpace(itemCode)},
		{ledger.ColName, name},
		{ledger.ColLot, strings.TrimSpace(lot)},
		{ledger.ColLine, line},
	}
	if meta != nil {
		if meta.HasMfgDate {
			writes = append(writes, cellWrite{ledger.ColMfgDate, meta.MfgDate})
		}
		writes = append(writes, cellWrite{ledger.ColDrumTotal, meta.DrumTotal})
	}
	for _, w := range writes {
		if err := l.f.SetCellValue(ledger.SheetMain, cellName(w.col, newRow), w.val); err != nil {
			return 0, fmt.Errorf("excel: escribir fila nueva: %w", err)
		}
	}

	if templateRow > 0 {
		if err := l.copyFormulaColumns(templateRow, newRow); err != nil {
			return 0, err
		}
	}
	return newRow, nil
}

// copyFormulaColumns replica las columnas de fórmula desde la fila plantilla,
// reescribiendo el número de fila en cada referencia. Un valor de texto con
// prefijo "=" (libros pasados por herramientas que escriben fórmulas como
// texto) también cuenta como fórmula; los demás valores se copian tal cual.
func (l *Ledger) copyFormulaColumns(templateRow, newRow int) error {
	for _, col := range ledger.FormulaColumns {
		src := cellName(col, templateRow)
		dst := cellName(col, newRow)

		formula, err := l.f.GetCellFormula(ledger.SheetMain, src)
		if err != nil {
			return fmt.Errorf("excel: leer fórmula %s: %w", src, err)
		}
		if formula != "" {
			rewritten := ledger.RewriteRowRefs(formula, templateRow, newRow)
			if err := l.f.SetCellFormula(ledger.SheetMain, dst, rewritten); err != nil {
				return fmt.Errorf("excel: escribir fórmula %s: %w", dst, err)
			}
			continue
		}

		raw, err := l.f.GetCellValue(ledger.SheetMain, src, excelize.Options{RawCellValue: true})
		if err != nil {
			return fmt.Errorf("excel: leer celda %s: %w", src, err)
		}
		if raw == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(raw), "=") {
			rewritten := ledger.AdjustFormulaRow(raw, templateRow, newRow)
			expr := strings.TrimPrefix(strings.TrimSpace(rewritten), "=")
			if err := l.f.SetCellFormula(ledger.SheetMain, dst, expr); err != nil {
				return fmt.Errorf("excel: escribir fórmula %s: %w", dst, err)
			}
			continue
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			if err := l.f.SetCellValue(ledger.SheetMain, dst, f); err != nil {
				return fmt.Errorf("excel: copiar celda %s: %w", dst, err)
			}
			continue
		}
		if err := l.f.SetCellValue(ledger.SheetMain, dst, raw); err != nil {
			return fmt.Errorf("excel: copiar celda %s: %w", dst, err)
		}
	}
	return nil
}

// ApplyDrumUpdate escribe el triple (용량, 위치, 보유통) de la ranura según la
// política de estado. Devuelve false sin tocar el libro cuando drumNo está
// fuera de 1..20; el llamador decide cómo reportarlo.
func (l *Ledger) ApplyDrumUpdate(row, drumNo int, newQty, newLoc string) (bool, error) {
	qtyCol, locCol, stockCol, ok := ledger.SlotColumns(drumNo)
	if !ok {
		return false, nil
	}
	upd := ledger.PlanSlotUpdate(newQty, newLoc)
	if err := l.f.SetCellValue(ledger.SheetMain, cellName(locCol, row), upd.Location); err != nil {
		return false, fmt.Errorf("excel: escribir ubicación de ranura: %w", err)
	}
	if err := l.f.SetCellValue(ledger.SheetMain, cellName(qtyCol, row), upd.Quantity); err != nil {
		return false, fmt.Errorf("excel: escribir cantidad de ranura: %w", err)
	}
	if err := l.f.SetCellValue(ledger.SheetMain, cellName(stockCol, row), upd.InStock); err != nil {
		return false, fmt.Errorf("excel: escribir bandera de stock: %w", err)
	}
	return true, nil
}
