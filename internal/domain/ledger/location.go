package ledger

import (
	"regexp"
	"strings"
)

var (
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	floorToken   = regexp.MustCompile(`\d+` + FloorSuffix)
	dupKeepWords = regexp.MustCompile(KeepWord + `(\s+` + KeepWord + `)+`)
)

// FloorLabel canoniza el texto de la celda de ubicación por piso:
//
//	"4"        => "4층"
//	"4층 보관"  => "4층"
//	"창고 보관" => "창고"
//
// Los estados especiales se conservan aunque lleven texto adicional tras
// espacio, "_" o "-". Sin piso reconocible devuelve cadena vacía.
func FloorLabel(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, sp := range SpecialLocations {
		if s == sp || strings.HasPrefix(s, sp+" ") || strings.HasPrefix(s, sp+"_") || strings.HasPrefix(s, sp+"-") {
			return sp
		}
	}
	if digitsOnly.MatchString(s) {
		return s + FloorSuffix
	}
	return floorToken.FindString(s)
}

// CleanDetail recorta la ubicación detallada y colapsa "보관 보관 ..." en un solo "보관".
func CleanDetail(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(dupKeepWords.ReplaceAllString(s, KeepWord))
}

// ComposeLocation decide la ubicación actual de un tambor a partir de la celda
// de piso y la celda oculta de detalle:
//
//  1. estados especiales (외주/폐기/소진/창고) mandan y se devuelven solos,
//  2. sin piso: el detalle (posiblemente vacío) es la ubicación,
//  3. con piso: se quita del detalle el prefijo de piso repetido, se rellena
//     con "보관" si queda vacío y se devuelve "<piso> <detalle>".
//
// Un detalle igual a "", "보관" o "<piso> 보관" cuenta como ausente.
func ComposeLocation(floorRaw, detailRaw string) string {
	floor := FloorLabel(floorRaw)
	detail := CleanDetail(detailRaw)

	if detail == KeepWord || detail == floor+" "+KeepWord {
		detail = ""
	}

	for _, sp := range SpecialLocations {
		if floor == sp {
			return floor
		}
	}

	if floor == "" {
		return detail
	}
	if strings.HasPrefix(detail, floor) {
		detail = strings.TrimSpace(detail[len(floor):])
	}
	if detail == "" {
		detail = KeepWord
	}
	return floor + " " + detail
}
