// Package ledger: reglas puras del libro "벌크 관리대장" (libro mayor de bulk de fábrica).
// Define el esquema fijo de la hoja principal (메인) y de la hoja de auditoría (LOG),
// la política de actualización por estado y la reescritura de fórmulas al duplicar filas.
package ledger

// Hojas requeridas del libro.
const (
	SheetMain = "메인"
	SheetLog  = "LOG"
)

// Hojas de reporte exportables (pueden no existir; se omiten en silencio).
const (
	SheetProduction = "제조작업실적현황"
	SheetStock      = "일자별통합재고현황"
	SheetReceive    = "입하현황"
)

// Estructura de filas: la hoja 메인 tiene fila 1 de título, fila 2 de cabecera
// y datos desde la fila 3. La hoja LOG tiene cabecera en la fila 1.
const (
	MainHeaderRow = 2
	MainDataStart = 3
	LogHeaderRow  = 1
	LogDataStart  = 2
)

// Columnas de identidad de la hoja 메인 (índice 1-based).
const (
	ColItemCode  = 2  // B 품목코드
	ColName      = 3  // C 품명
	ColLot       = 4  // D 로트번호
	ColLine      = 5  // E 제품라인
	ColStatus    = 6  // F 상태
	ColMfgDate   = 7  // G 제조일자
	ColDrumTotal = 23 // W 전체통수
)

// FormulaColumns columnas de la hoja 메인 que portan fórmulas; al crear una fila
// nueva se copian desde la fila plantilla reescribiendo el número de fila.
// F, H, I, N, O, P, R, S, T, U, V.
var FormulaColumns = []int{6, 8, 9, 14, 15, 16, 18, 19, 20, 21, 22}

// Banda de 20 ranuras de tambor: triples (용량, 위치, 보유통) consecutivos desde
// la columna X; banda oculta de ubicación detallada desde CF.
const (
	SlotCount       = 20
	slotBandStart   = 24 // X
	detailBandStart = 84 // CF
)

// SlotColumns devuelve las columnas (cantidad, ubicación, bandera de stock) de la
// ranura n. n fuera de 1..20 devuelve ok=false.
func SlotColumns(n int) (qty, loc, stock int, ok bool) {
	if n < 1 || n > SlotCount {
		return 0, 0, 0, false
	}
	qty = slotBandStart + 3*(n-1)
	return qty, qty + 1, qty + 2, true
}

// DetailColumn devuelve la columna oculta de ubicación detallada de la ranura n (CF..CY).
func DetailColumn(n int) (int, bool) {
	if n < 1 || n > SlotCount {
		return 0, false
	}
	return detailBandStart + (n - 1), true
}

// Estados especiales de ubicación. Las demás ubicaciones son pisos de almacén ("4층" etc.).
const (
	StatusExhausted  = "소진" // agotado
	StatusDisposed   = "폐기" // desechado
	StatusOutsourced = "외주" // externalizado
	StatusWarehouse  = "창고" // bodega externa
)

// SpecialLocations en el orden en que se evalúan.
var SpecialLocations = []string{StatusOutsourced, StatusDisposed, StatusExhausted, StatusWarehouse}

// Sufijo de piso y palabra de relleno de ubicaciones ("4층 보관").
const (
	FloorSuffix = "층"
	KeepWord    = "보관"
)

// Cabeceras del CSV bulk_move_log y de la hoja LOG.
const (
	HdrTime        = "시간"
	HdrID          = "ID"
	HdrItemCode    = "품번"
	HdrItemCodeAlt = "품목코드" // sinónimo usado por la macro del libro
	HdrName        = "품명"
	HdrLot         = "로트번호"
	HdrDrumNo      = "통번호"
	HdrQtyBefore   = "변경 전 용량"
	HdrQtyAfter    = "변경 후 용량"
	HdrDelta       = "변화량"
	HdrLocBefore   = "변경 전 위치"
	HdrLocAfter    = "변경 후 위치"
)

// Cabeceras adicionales del CSV bulk_drums_extended.
const (
	HdrLine     = "제품라인"
	HdrMfgDate  = "제조일자"
	HdrStatus   = "상태"
	HdrCapacity = "통용량"
	HdrLocation = "현재위치"
)

// HdrFirstSlot cabecera de la fila 2 de 메인 que marca la primera ranura de tambor.
const HdrFirstSlot = "1번"

// RequiredLogColumns columnas obligatorias del CSV bulk_move_log (ID es opcional).
var RequiredLogColumns = []string{
	HdrTime, HdrItemCode, HdrName, HdrLot, HdrDrumNo,
	HdrQtyBefore, HdrQtyAfter, HdrDelta,
	HdrLocBefore, HdrLocAfter,
}

// RequiredMetaColumns columnas obligatorias del CSV bulk_drums_extended para
// construir el índice de metadatos por lote.
var RequiredMetaColumns = []string{
	HdrItemCodeAlt, HdrLot, HdrName, HdrLine, HdrMfgDate, HdrDrumNo,
}

// StandardLogColumns orden estándar de columnas al re-exportar la hoja LOG a CSV.
var StandardLogColumns = []string{
	HdrTime, HdrID, HdrItemCode, HdrName, HdrLot, HdrDrumNo,
	HdrQtyBefore, HdrQtyAfter, HdrDelta,
	HdrLocBefore, HdrLocAfter,
}

// ExtendedColumns orden de columnas del CSV bulk_drums_extended generado por la extracción.
var ExtendedColumns = []string{
	HdrItemCodeAlt, HdrName, HdrLot, HdrLine, HdrMfgDate, HdrStatus,
	HdrDrumNo, HdrCapacity, HdrLocation,
}
