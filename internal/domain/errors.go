package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrSheetNotFound   = errors.New("hoja requerida no encontrada en el libro")
	ErrMissingColumn   = errors.New("columna requerida ausente")
	ErrUnreadableCSV   = errors.New("no se puede leer el archivo CSV (codificación o separador)")
	ErrWorkbookInvalid = errors.New("libro de Excel inválido")
)
