package extract_test

import (
	"fmt"
	"testing"

	"github.com/jhoicas/bulkledger-api/internal/application/extract"
	"github.com/jhoicas/bulkledger-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDrumRows_ExpandePorConteo(t *testing.T) {
	rows := mainGrid(dataRow(map[int]string{
		colItem: "A100", colName: "크림베이스", colLot: "LOT001",
		colLine: "1라인", colMfg: "45413", colStatus: "생산 완료",
		colSlot1: "100", colSlot1 + 1: "4", colSlot1 + 2: "2",
		colSlot1 + 3: "80", colSlot1 + 4: "3층", colSlot1 + 5: "0",
	}))

	out, err := extract.DeriveDrumRows(rows)
	require.NoError(t, err)

	require.Len(t, out, 2, "la ranura 1 con 보유통=2 aporta dos filas; la 2 con 0, ninguna")
	assert.Equal(t, []string{"A100", "크림베이스", "LOT001", "1라인", "2024-05-01", "생산 완료", "1", "100", "4층 보관"}, out[0])
	assert.Equal(t, out[0], out[1], "las filas repetidas del mismo tambor son idénticas")
}

func TestDeriveDrumRows_EstadosEspeciales(t *testing.T) {
	rows := mainGrid(
		dataRow(map[int]string{
			colItem: "A100", colLot: "LOT001",
			colSlot1: "0", colSlot1 + 1: "소진", colSlot1 + 2: "0",
		}),
		dataRow(map[int]string{
			colItem: "B200", colLot: "LOT002",
			colSlot1: "50", colSlot1 + 1: "창고", colSlot1 + 2: "0",
		}),
	)

	out, err := extract.DeriveDrumRows(rows)
	require.NoError(t, err)

	require.Len(t, out, 1, "소진 fuerza una fila aunque 보유통 sea 0; 창고 no")
	assert.Equal(t, "A100", out[0][0])
	assert.Equal(t, "소진", out[0][8])
}

func TestDeriveDrumRows_SaltaFilasSinIdentidad(t *testing.T) {
	rows := mainGrid(
		dataRow(map[int]string{colLot: "LOT009", colSlot1 + 2: "3"}),
		dataRow(map[int]string{colName: "크림베이스", colSlot1 + 2: "1"}),
	)

	out, err := extract.DeriveDrumRows(rows)
	require.NoError(t, err)

	require.Len(t, out, 1, "solo se salta la fila sin 품목코드 ni 품명")
	assert.Equal(t, "크림베이스", out[0][1])
	assert.Empty(t, out[0][8], "sin piso ni detalle la ubicación queda vacía")
}

func TestDeriveDrumRows_DetalleDeUbicacion(t *testing.T) {
	rows := mainGrid(dataRow(map[int]string{
		colItem: "A100", colLot: "LOT001", colMfg: "sin fecha",
		colSlot1: "100", colSlot1 + 1: "4층", colSlot1 + 2: "1",
		colDetail: "4층 보관 보관 3번 선반",
	}))

	out, err := extract.DeriveDrumRows(rows)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Empty(t, out[0][4], "fecha ilegible queda vacía")
	assert.Equal(t, "4층 보관 3번 선반", out[0][8], "colapsa 보관 duplicado y no repite el piso")
}

func TestDeriveDrumRows_CabeceraSinPrimeraRanura(t *testing.T) {
	header := headerRow()
	header[colSlot1] = ""
	rows := [][]string{make([]string, gridWidth), header}

	_, err := extract.DeriveDrumRows(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Contains(t, err.Error(), "1번")
}

func TestDeriveDrumRows_SinColumnaBase(t *testing.T) {
	header := headerRow()
	header[colMfg] = ""
	rows := [][]string{make([]string, gridWidth), header}

	_, err := extract.DeriveDrumRows(rows)
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Contains(t, err.Error(), "제조일자")
}

func TestDeriveDrumRows_HojaSinCabecera(t *testing.T) {
	_, err := extract.DeriveDrumRows([][]string{{"벌크 관리대장"}})
	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}

// ── helpers: grilla cruda de la hoja 메인 ─────────────────────────────────────

// Posiciones 0-based dentro de la fila, como las devuelve el lector de hojas.
const (
	colItem   = 1  // B 품목코드
	colName   = 2  // C 품명
	colLot    = 3  // D 로트번호
	colLine   = 4  // E 제품라인
	colStatus = 5  // F 상태
	colMfg    = 6  // G 제조일자
	colSlot1  = 23 // X primera ranura (용량, 위치, 보유통)
	colDetail = 83 // CF detalle oculto de la ranura 1

	gridWidth = 110
)

func headerRow() []string {
	row := make([]string, gridWidth)
	row[colItem] = "품목코드"
	row[colName] = "품명"
	row[colLot] = "로트번호"
	row[colLine] = "제품라인"
	row[colStatus] = "상태"
	row[colMfg] = "제조일자"
	for n := 0; n < 20; n++ {
		row[colSlot1+3*n] = fmt.Sprintf("%d번", n+1)
	}
	return row
}

func dataRow(cells map[int]string) []string {
	row := make([]string, gridWidth)
	for idx, v := range cells {
		row[idx] = v
	}
	return row
}

// mainGrid fila de título, fila de cabecera y las filas de datos dadas.
func mainGrid(dataRows ...[]string) [][]string {
	rows := [][]string{make([]string, gridWidth), headerRow()}
	return append(rows, dataRows...)
}
