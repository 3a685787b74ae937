package replay

import (
	"time"

	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
)

// Workbook handle mutable del libro de gestión durante una corrida. El
// orquestador es su único dueño: lo abre, lo muta y lo serializa dentro de la
// misma llamada, sin retenerlo después.
type Workbook interface {
	// HasSheet indica si el libro contiene la hoja.
	HasSheet(name string) bool
	// TemplateRow fila plantilla de 메인: la última con 로트번호 no vacío; 0 si no hay.
	TemplateRow() (int, error)
	// FindMainRow primera fila de 메인 cuyo (품목코드, 로트번호) normalizado
	// coincide; 0 si no existe.
	FindMainRow(itemCode, lot string) (int, error)
	// CreateMainRow materializa una fila nueva al final de 메인 copiando formato
	// y fórmulas de la plantilla; devuelve el índice de la fila creada.
	// meta nil deja vacíos los campos derivados de metadatos. templateRow 0
	// indica que no hay plantilla (solo se copia formato de la fila anterior).
	CreateMainRow(itemCode, lot, name string, meta *ledger.LotMeta, templateRow int) (int, error)
	// ApplyDrumUpdate escribe el triple de la ranura según la política de
	// estado; devuelve false sin tocar nada si drumNo está fuera de 1..20.
	ApplyDrumUpdate(row, drumNo int, newQty, newLoc string) (bool, error)
	// Watermark máxima marca de tiempo parseable de la columna A de LOG
	// (filas 2..fin); tiempo cero si no hay ninguna.
	Watermark() (time.Time, error)
	// AppendLogRow añade el registro al final de LOG copiando el estilo de la
	// última fila y mapeando campos por nombre de cabecera.
	AppendLogRow(rec ledger.ChangeRecord) error
	// Bytes serializa el libro mutado.
	Bytes() ([]byte, error)
	Close() error
}

// WorkbookOpener abre un libro de gestión desde los bytes subidos.
type WorkbookOpener interface {
	Open(data []byte) (Workbook, error)
}
