package replay

import (
	"fmt"
	"strings"

	"github.com/jhoicas/bulkledger-api/internal/domain"
	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/jhoicas/bulkledger-api/pkg/csvio"
	"github.com/jhoicas/bulkledger-api/pkg/exceltime"
)

// ParseChangeLog convierte la tabla CSV bulk_move_log en registros de cambio.
// Exige las columnas obligatorias (ID es opcional) y nombra la primera ausente
// en el error. Las marcas de tiempo no parseables quedan con HasTime=false y
// el orquestador las descarta.
func ParseChangeLog(table *csvio.Table) ([]ledger.ChangeRecord, error) {
	for _, col := range ledger.RequiredLogColumns {
		if _, ok := table.Column(col); !ok {
			return nil, fmt.Errorf("%w: bulk_move_log.csv no trae la columna '%s'", domain.ErrMissingColumn, col)
		}
	}

	timeIdx, _ := table.Column(ledger.HdrTime)
	itemIdx, _ := table.Column(ledger.HdrItemCode)
	nameIdx, _ := table.Column(ledger.HdrName)
	lotIdx, _ := table.Column(ledger.HdrLot)
	drumIdx, _ := table.Column(ledger.HdrDrumNo)
	qtyBeforeIdx, _ := table.Column(ledger.HdrQtyBefore)
	qtyAfterIdx, _ := table.Column(ledger.HdrQtyAfter)
	deltaIdx, _ := table.Column(ledger.HdrDelta)
	locBeforeIdx, _ := table.Column(ledger.HdrLocBefore)
	locAfterIdx, _ := table.Column(ledger.HdrLocAfter)
	idIdx, hasID := table.Column(ledger.HdrID)

	records := make([]ledger.ChangeRecord, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		rec := ledger.ChangeRecord{
			ItemCode:  strings.TrimSpace(table.At(i, itemIdx)),
			Name:      strings.TrimSpace(table.At(i, nameIdx)),
			Lot:       strings.TrimSpace(table.At(i, lotIdx)),
			DrumNo:    ledger.ParseDrumNo(table.At(i, drumIdx)),
			QtyBefore: table.At(i, qtyBeforeIdx),
			QtyAfter:  table.At(i, qtyAfterIdx),
			Delta:     table.At(i, deltaIdx),
			LocBefore: table.At(i, locBeforeIdx),
			LocAfter:  table.At(i, locAfterIdx),
		}
		rec.Time, rec.HasTime = exceltime.ParseText(table.At(i, timeIdx))
		if hasID {
			rec.ID = strings.TrimSpace(table.At(i, idIdx))
		}
		records = append(records, rec)
	}
	return records, nil
}
