package replay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/bulkledger-api/internal/domain"
	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/jhoicas/bulkledger-api/pkg/csvio"
	"github.com/jhoicas/bulkledger-api/pkg/exceltime"
)

type metaAccum struct {
	meta  ledger.LotMeta
	drums map[string]struct{}
}

// BuildMetaIndex agrega el CSV bulk_drums_extended por lote (품목코드, 로트번호):
// primer 제품라인/품명 no vacío, primera 제조일자 parseable y número de 통번호
// distintos. El índice alimenta los campos derivados al crear filas nuevas.
func BuildMetaIndex(table *csvio.Table) (ledger.MetaIndex, error) {
	for _, col := range ledger.RequiredMetaColumns {
		if _, ok := table.Column(col); !ok {
			return nil, fmt.Errorf("%w: bulk_drums_extended.csv no trae la columna '%s'", domain.ErrMissingColumn, col)
		}
	}

	itemIdx, _ := table.Column(ledger.HdrItemCodeAlt)
	lotIdx, _ := table.Column(ledger.HdrLot)
	nameIdx, _ := table.Column(ledger.HdrName)
	lineIdx, _ := table.Column(ledger.HdrLine)
	mfgIdx, _ := table.Column(ledger.HdrMfgDate)
	drumIdx, _ := table.Column(ledger.HdrDrumNo)

	accums := map[ledger.LotKey]*metaAccum{}
	for i := 0; i < table.Len(); i++ {
		key := ledger.NewLotKey(table.At(i, itemIdx), table.At(i, lotIdx))
		acc := accums[key]
		if acc == nil {
			acc = &metaAccum{drums: map[string]struct{}{}}
			accums[key] = acc
		}
		if acc.meta.Line == "" {
			if v := table.At(i, lineIdx); strings.TrimSpace(v) != "" {
				acc.meta.Line = v
			}
		}
		if acc.meta.Name == "" {
			if v := table.At(i, nameIdx); strings.TrimSpace(v) != "" {
				acc.meta.Name = v
			}
		}
		if !acc.meta.HasMfgDate {
			if tm, ok := exceltime.ParseText(table.At(i, mfgIdx)); ok {
				acc.meta.MfgDate, acc.meta.HasMfgDate = tm, true
			}
		}
		if d := strings.TrimSpace(table.At(i, drumIdx)); d != "" {
			acc.drums[drumKey(d)] = struct{}{}
		}
	}

	idx := make(ledger.MetaIndex, len(accums))
	for key, acc := range accums {
		acc.meta.DrumTotal = len(acc.drums)
		idx[key] = acc.meta
	}
	return idx, nil
}

// drumKey normaliza el número de tambor para contar distintos: "3" y "3.0"
// son el mismo tambor.
func drumKey(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return s
}
