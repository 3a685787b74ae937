package ledger_test

import (
	"fmt"
	"testing"

	"github.com/jhoicas/bulkledger-api/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Política de actualización de ranura: la tabla de abajo es el contrato completo
// del trío (용량, 위치, 보유통) por estado de ubicación.
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanSlotUpdate_TablaDePolitica(t *testing.T) {
	casos := []struct {
		nombre   string
		qty      string
		loc      string
		wantQty  float64
		wantFlag int
	}{
		{"agotado fuerza cero", "7.5", "소진", 0, 0},
		{"desechado fuerza cero", "3", "폐기", 0, 0},
		{"externalizado conserva cantidad sin stock", "5", "외주", 5, 0},
		{"piso con cantidad cero", "0", "4층", 0, 0},
		{"piso con cantidad positiva", "3", "4층", 3, 1},
		{"piso con cantidad decimal", "2.5", "5층", 2.5, 1},
		{"cantidad vacía vale cero", "", "4층", 0, 0},
		{"cantidad no numérica vale cero", "abc", "4층", 0, 0},
		{"agotado con espacios alrededor", "9", "  소진  ", 0, 0},
		{"bodega es ubicación normal", "2", "창고", 2, 1},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := ledger.PlanSlotUpdate(c.qty, c.loc)
			assert.Equal(t, c.wantQty, got.Quantity)
			assert.Equal(t, c.wantFlag, got.InStock)
			assert.Equal(t, c.loc, got.Location,
				"La ubicación se escribe siempre tal cual llegó")
		})
	}
}

// TestSlotColumns_VeinteRanuras verifica el triple generado contra el mapeo
// fijo de la macro VBA: 1번=(X,Y,Z), 2번=(AA,AB,AC), ..., 20번=(CC,CD,CE).
func TestSlotColumns_VeinteRanuras(t *testing.T) {
	wantQty := []string{
		"X", "AA", "AD", "AG", "AJ", "AM", "AP", "AS", "AV", "AY",
		"BB", "BE", "BH", "BK", "BN", "BQ", "BT", "BW", "BZ", "CC",
	}
	wantLoc := []string{
		"Y", "AB", "AE", "AH", "AK", "AN", "AQ", "AT", "AW", "AZ",
		"BC", "BF", "BI", "BL", "BO", "BR", "BU", "BX", "CA", "CD",
	}
	wantStock := []string{
		"Z", "AC", "AF", "AI", "AL", "AO", "AR", "AU", "AX", "BA",
		"BD", "BG", "BJ", "BM", "BP", "BS", "BV", "BY", "CB", "CE",
	}

	for n := 1; n <= ledger.SlotCount; n++ {
		q, l, s, ok := ledger.SlotColumns(n)
		assert.True(t, ok, "ranura %d debe ser válida", n)
		assert.Equal(t, colNum(wantQty[n-1]), q, "columna de cantidad de la ranura %d", n)
		assert.Equal(t, colNum(wantLoc[n-1]), l, "columna de ubicación de la ranura %d", n)
		assert.Equal(t, colNum(wantStock[n-1]), s, "columna de bandera de la ranura %d", n)
	}
}

func TestSlotColumns_FueraDeRango(t *testing.T) {
	for _, n := range []int{0, -1, 21, 100} {
		_, _, _, ok := ledger.SlotColumns(n)
		assert.False(t, ok, "ranura %d debe rechazarse", n)
	}
}

func TestDetailColumn_Banda(t *testing.T) {
	first, ok := ledger.DetailColumn(1)
	assert.True(t, ok)
	assert.Equal(t, colNum("CF"), first)

	last, ok := ledger.DetailColumn(20)
	assert.True(t, ok)
	assert.Equal(t, colNum("CY"), last)

	_, ok = ledger.DetailColumn(21)
	assert.False(t, ok)
}

func TestCoerceQuantity(t *testing.T) {
	assert.Equal(t, 0.0, ledger.CoerceQuantity(""))
	assert.Equal(t, 0.0, ledger.CoerceQuantity("  "))
	assert.Equal(t, 0.0, ledger.CoerceQuantity("n/a"))
	assert.Equal(t, 12.0, ledger.CoerceQuantity("12"))
	assert.Equal(t, -3.5, ledger.CoerceQuantity(" -3.5 "))
}

// ── helper ────────────────────────────────────────────────────────────────────

// colNum convierte letras de columna de Excel a índice 1-based.
func colNum(letters string) int {
	n := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			panic(fmt.Sprintf("letra de columna inválida: %q", letters))
		}
		n = n*26 + int(r-'A') + 1
	}
	return n
}
