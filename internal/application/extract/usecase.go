package extract

import (
	"context"
	"fmt"

	"github.com/jhoicas/bulkledger-api/internal/domain"
	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/jhoicas/bulkledger-api/pkg/csvio"
)

// ExtractUseCase exporta el libro de gestión como paquete ZIP: la tabla
// extendida de tambores derivada de 메인, las hojas de reporte existentes
// como libros xlsx y la hoja LOG re-exportada en columnas estándar.
type ExtractUseCase struct {
	opener   LedgerOpener
	renderer SheetRenderer
	archiver Archiver
}

// NewExtractUseCase construye el caso de uso.
func NewExtractUseCase(opener LedgerOpener, renderer SheetRenderer, archiver Archiver) *ExtractUseCase {
	return &ExtractUseCase{opener: opener, renderer: renderer, archiver: archiver}
}

// ExtractInputDTO el libro subido por el operario.
type ExtractInputDTO struct {
	Workbook []byte // 벌크 관리대장 (.xlsm/.xlsx)
}

// ExtractResult paquete ZIP y nombres de las entradas en su orden.
type ExtractResult struct {
	Bundle  []byte
	Entries []string
}

// Extract genera el paquete completo. La hoja 메인 es obligatoria; las hojas
// de reporte ausentes se omiten y una hoja LOG ausente produce una entrada
// bulk_move_log.csv vacía, nunca un error.
func (uc *ExtractUseCase) Extract(ctx context.Context, in ExtractInputDTO) (*ExtractResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := uc.opener.OpenReader(in.Workbook)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if !r.HasSheet(ledger.SheetMain) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSheetNotFound, ledger.SheetMain)
	}
	mainRows, err := r.SheetRowsRaw(ledger.SheetMain)
	if err != nil {
		return nil, err
	}
	drumRows, err := DeriveDrumRows(mainRows)
	if err != nil {
		return nil, err
	}
	drumsCSV, err := csvio.MarshalBOM(ledger.ExtendedColumns, drumRows)
	if err != nil {
		return nil, err
	}
	entries := []Entry{{Name: "bulk_drums_extended.csv", Data: drumsCSV}}

	reports, err := renderReports(r, uc.renderer)
	if err != nil {
		return nil, err
	}
	entries = append(entries, reports...)

	var logCSV []byte
	if r.HasSheet(ledger.SheetLog) {
		logRows, err := r.SheetRowsRaw(ledger.SheetLog)
		if err != nil {
			return nil, err
		}
		if logCSV, err = ExportLog(logRows); err != nil {
			return nil, err
		}
	}
	entries = append(entries, Entry{Name: "bulk_move_log.csv", Data: logCSV})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bundle, err := uc.archiver.Bundle(entries)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return &ExtractResult{Bundle: bundle, Entries: names}, nil
}
