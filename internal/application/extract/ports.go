package extract

// LedgerReader acceso de solo lectura a las hojas del libro de gestión.
type LedgerReader interface {
	HasSheet(name string) bool
	// SheetRows filas con valores formateados (como los muestra la hoja).
	SheetRows(sheet string) ([][]string, error)
	// SheetRowsRaw filas con valores crudos (fechas como serial numérico).
	SheetRowsRaw(sheet string) ([][]string, error)
	Close() error
}

// LedgerOpener abre un libro en modo lectura desde los bytes subidos.
type LedgerOpener interface {
	OpenReader(data []byte) (LedgerReader, error)
}

// SheetRenderer vuelca una grilla de valores en un libro xlsx de una hoja.
type SheetRenderer interface {
	Render(rows [][]string) ([]byte, error)
}

// Entry un archivo dentro del paquete exportado.
type Entry struct {
	Name string
	Data []byte
}

// Archiver empaqueta las entradas en un único archivo comprimido.
type Archiver interface {
	Bundle(entries []Entry) ([]byte, error)
}
