package replay

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bulkledger-api/internal/domain"
	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/jhoicas/bulkledger-api/pkg/csvio"
)

// ReplayUseCase reproduce los registros nuevos de bulk_move_log.csv sobre el
// libro de gestión: localiza o crea la fila del lote en 메인, aplica la
// política de ranura y deja el rastro en LOG. Solo se reproducen los registros
// posteriores a la marca de agua de LOG, en orden cronológico.
type ReplayUseCase struct {
	opener WorkbookOpener
}

// NewReplayUseCase construye el caso de uso.
func NewReplayUseCase(opener WorkbookOpener) *ReplayUseCase {
	return &ReplayUseCase{opener: opener}
}

// ReplayInputDTO los tres archivos subidos por el operario.
type ReplayInputDTO struct {
	Workbook []byte // 벌크 관리대장 (.xlsm/.xlsx)
	MoveLog  []byte // bulk_move_log.csv
	DrumMeta []byte // bulk_drums_extended.csv
}

// ReplayResult libro mutado, registros aplicados y advertencias no fatales.
type ReplayResult struct {
	Workbook []byte
	Applied  int
	Warnings []string
}

// Replay ejecuta la corrida completa. Errores fatales: CSV ilegible, columna
// obligatoria ausente, libro inválido u hoja 메인/LOG faltante. Un 통번호 fuera
// de 1..20 no es fatal: la ranura no se toca pero el registro sí queda en LOG
// y cuenta como aplicado.
func (uc *ReplayUseCase) Replay(ctx context.Context, in ReplayInputDTO) (*ReplayResult, error) {
	// Metadatos por lote del CSV extendido
	metaTable, err := csvio.ReadFlexible(in.DrumMeta)
	if err != nil {
		return nil, fmt.Errorf("%w: bulk_drums_extended.csv: %v", domain.ErrUnreadableCSV, err)
	}
	meta, err := BuildMetaIndex(metaTable)
	if err != nil {
		return nil, err
	}

	wb, err := uc.opener.Open(in.Workbook)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	for _, sheet := range []string{ledger.SheetMain, ledger.SheetLog} {
		if !wb.HasSheet(sheet) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSheetNotFound, sheet)
		}
	}

	templateRow, err := wb.TemplateRow()
	if err != nil {
		return nil, err
	}
	watermark, err := wb.Watermark()
	if err != nil {
		return nil, err
	}

	logTable, err := csvio.ReadFlexible(in.MoveLog)
	if err != nil {
		return nil, fmt.Errorf("%w: bulk_move_log.csv: %v", domain.ErrUnreadableCSV, err)
	}
	records, err := ParseChangeLog(logTable)
	if err != nil {
		return nil, err
	}

	// Solo registros estrictamente posteriores a la marca de agua, en orden
	// cronológico estable
	fresh := make([]ledger.ChangeRecord, 0, len(records))
	for _, rec := range records {
		if rec.HasTime && rec.Time.After(watermark) {
			fresh = append(fresh, rec)
		}
	}
	sort.SliceStable(fresh, func(i, j int) bool { return fresh[i].Time.Before(fresh[j].Time) })

	result := &ReplayResult{}
	if len(fresh) == 0 {
		out, err := wb.Bytes()
		if err != nil {
			return nil, err
		}
		result.Workbook = out
		return result, nil
	}

	for _, rec := range fresh {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := wb.FindMainRow(rec.ItemCode, rec.Lot)
		if err != nil {
			return nil, err
		}
		if row == 0 {
			var lotMeta *ledger.LotMeta
			if m, ok := meta.Lookup(rec.ItemCode, rec.Lot); ok {
				lotMeta = &m
			}
			row, err = wb.CreateMainRow(rec.ItemCode, rec.Lot, rec.Name, lotMeta, templateRow)
			if err != nil {
				return nil, err
			}
			// la fila recién creada pasa a ser la plantilla de las siguientes
			templateRow = row
		}

		applied, err := wb.ApplyDrumUpdate(row, rec.DrumNo, rec.QtyAfter, rec.LocAfter)
		if err != nil {
			return nil, err
		}
		if !applied {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("통번호 %d fuera de rango 1..20; la ranura del lote %s/%s no se actualizó",
					rec.DrumNo, rec.ItemCode, rec.Lot))
		}

		if err := wb.AppendLogRow(rec); err != nil {
			return nil, err
		}
		result.Applied++
	}

	out, err := wb.Bytes()
	if err != nil {
		return nil, err
	}
	result.Workbook = out
	return result, nil
}
