package ledger

import (
	"strconv"
	"strings"
)

// SlotUpdate valores calculados para escribir un triple de ranura de tambor.
type SlotUpdate struct {
	Quantity float64 // columna 용량
	Location string  // columna 위치, siempre el texto recibido sin modificar
	InStock  int     // columna 보유통 (0/1)
}

// PlanSlotUpdate aplica la política de estado a una actualización de tambor.
// La ubicación se compara recortada y en mayúsculas; el texto original se
// escribe tal cual llegó.
//
//	소진/폐기: cantidad 0, bandera 0.
//	외주:      cantidad recibida, bandera 0.
//	resto:     cantidad recibida, bandera 0 si la cantidad es 0, si no 1.
func PlanSlotUpdate(newQty, newLoc string) SlotUpdate {
	qty := CoerceQuantity(newQty)
	switch NormalizeLocation(newLoc) {
	case StatusExhausted, StatusDisposed:
		return SlotUpdate{Quantity: 0, Location: newLoc, InStock: 0}
	case StatusOutsourced:
		return SlotUpdate{Quantity: qty, Location: newLoc, InStock: 0}
	default:
		inStock := 0
		if qty != 0 {
			inStock = 1
		}
		return SlotUpdate{Quantity: qty, Location: newLoc, InStock: inStock}
	}
}

// CoerceQuantity convierte el texto a float64; vacío o no numérico vale 0.
func CoerceQuantity(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// NormalizeLocation normaliza una ubicación para comparar: recorta espacios y
// pasa a mayúsculas (sin efecto en hangul, relevante para texto latino).
func NormalizeLocation(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
