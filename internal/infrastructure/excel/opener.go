package excel

import (
	"github.com/jhoicas/bulkledger-api/internal/application/extract"
	"github.com/jhoicas/bulkledger-api/internal/application/replay"
)

var (
	_ replay.Workbook       = (*Ledger)(nil)
	_ replay.WorkbookOpener = (*Opener)(nil)
	_ extract.LedgerReader  = (*Ledger)(nil)
	_ extract.LedgerOpener  = (*Opener)(nil)
)

// Opener fabrica handles de libro para los casos de uso.
type Opener struct{}

// NewOpener construye el adaptador.
func NewOpener() *Opener {
	return &Opener{}
}

// Open abre un libro en modo reproducción (lectura y escritura).
func (o *Opener) Open(data []byte) (replay.Workbook, error) {
	return OpenLedger(data)
}

// OpenReader abre un libro en modo lectura para la extracción.
func (o *Opener) OpenReader(data []byte) (extract.LedgerReader, error) {
	return OpenLedger(data)
}
