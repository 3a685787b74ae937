package extract

import (
	"strings"

	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/jhoicas/bulkledger-api/pkg/csvio"
	"github.com/jhoicas/bulkledger-api/pkg/exceltime"
)

// ExportLog re-exporta la hoja LOG como CSV UTF-8 con BOM en el orden estándar
// de columnas. La entrada son las filas crudas de la hoja; las marcas de
// tiempo se normalizan a "AAAA-MM-DD HH:MM:SS" y las columnas ausentes (ID
// incluida) se rellenan vacías. 품목코드 sirve de sinónimo de 품번.
func ExportLog(rows [][]string) ([]byte, error) {
	if len(rows) < ledger.LogHeaderRow {
		return csvio.MarshalBOM(ledger.StandardLogColumns, nil)
	}

	index := make(map[string]int, len(rows[ledger.LogHeaderRow-1]))
	for i, h := range rows[ledger.LogHeaderRow-1] {
		h = strings.TrimSpace(h)
		if _, seen := index[h]; h != "" && !seen {
			index[h] = i
		}
	}
	if _, ok := index[ledger.HdrItemCode]; !ok {
		if alt, ok := index[ledger.HdrItemCodeAlt]; ok {
			index[ledger.HdrItemCode] = alt
		}
	}

	out := make([][]string, 0, len(rows)-ledger.LogHeaderRow)
	for _, row := range rows[ledger.LogHeaderRow:] {
		rec := make([]string, len(ledger.StandardLogColumns))
		for i, col := range ledger.StandardLogColumns {
			src, ok := index[col]
			if !ok {
				continue
			}
			val := at(row, src)
			if col == ledger.HdrTime {
				val = logTime(val)
			}
			rec[i] = val
		}
		out = append(out, rec)
	}
	return csvio.MarshalBOM(ledger.StandardLogColumns, out)
}

// logTime normaliza el valor crudo de la columna 시간; lo que no parsea como
// fecha se conserva tal cual.
func logTime(raw string) string {
	t, ok := exceltime.ParseCell(raw)
	if !ok {
		return raw
	}
	return t.Format("2006-01-02 15:04:05")
}
