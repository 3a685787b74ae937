// Package exceltime interpreta marcas de tiempo tal como viajan en el libro
// de gestión: seriales de Excel en celdas leídas en crudo y fechas textuales
// en los formatos que usan los CSV del registro.
package exceltime

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// textLayouts formatos textuales aceptados, del más al menos específico.
var textLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006.01.02 15:04:05",
	"2006.01.02",
}

// ParseText interpreta una marca de tiempo textual; ok=false si ningún
// formato conocido aplica. Las fechas sin zona se tratan como UTC para que
// las comparaciones con la marca de agua sean consistentes.
func ParseText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCell interpreta el valor crudo de una celda como marca de tiempo:
// primero como serial de Excel (celdas de fecha leídas en crudo), luego como
// texto con ParseText.
func ParseCell(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return ParseText(raw)
}
