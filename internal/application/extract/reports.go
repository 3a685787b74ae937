package extract

import "github.com/jhoicas/bulkledger-api/internal/domain/ledger"

// reportSheets hojas de reporte del libro y el nombre del archivo que genera
// cada una dentro del paquete. Las hojas ausentes se omiten en silencio.
var reportSheets = []struct {
	sheet string
	file  string
}{
	{ledger.SheetProduction, "production.xlsx"},
	{ledger.SheetStock, "stock.xlsx"},
	{ledger.SheetReceive, "receive.xlsx"},
}

// renderReports vuelca cada hoja de reporte existente en un libro xlsx propio.
func renderReports(r LedgerReader, renderer SheetRenderer) ([]Entry, error) {
	var entries []Entry
	for _, rep := range reportSheets {
		if !r.HasSheet(rep.sheet) {
			continue
		}
		rows, err := r.SheetRows(rep.sheet)
		if err != nil {
			return nil, err
		}
		book, err := renderer.Render(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: rep.file, Data: book})
	}
	return entries, nil
}
