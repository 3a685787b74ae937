package ledger

import (
	"strconv"
	"strings"
	"time"
)

// ChangeRecord una fila del CSV bulk_move_log lista para reproducir.
// Las cantidades se conservan como texto crudo: la hoja LOG las recibe tal
// cual (numéricas cuando parsean) y la política de tambor las coacciona.
type ChangeRecord struct {
	Time      time.Time
	HasTime   bool // false = marca de tiempo ausente o no parseable
	ID        string
	ItemCode  string // 품번, recortado
	Name      string // 품명, recortado
	Lot       string // 로트번호, recortado
	DrumNo    int    // 통번호; valores no numéricos quedan en 0 (fuera de rango)
	QtyBefore string
	QtyAfter  string
	Delta     string
	LocBefore string
	LocAfter  string
}

// LotKey clave normalizada (품목코드, 로트번호) de un lote.
type LotKey struct {
	ItemCode string
	Lot      string
}

// NewLotKey normaliza ambos componentes recortando espacios.
func NewLotKey(itemCode, lot string) LotKey {
	return LotKey{ItemCode: strings.TrimSpace(itemCode), Lot: strings.TrimSpace(lot)}
}

// LotMeta metadatos agregados de un lote, derivados del CSV bulk_drums_extended.
type LotMeta struct {
	Line       string    // 제품라인
	MfgDate    time.Time // 제조일자
	HasMfgDate bool
	DrumTotal  int    // 전체통수 = número de 통번호 distintos
	Name       string // 품명
}

// MetaIndex índice de metadatos por lote; solo lectura durante una corrida.
type MetaIndex map[LotKey]LotMeta

// Lookup busca los metadatos del lote; ok=false si el lote no aparece en el CSV.
func (m MetaIndex) Lookup(itemCode, lot string) (LotMeta, bool) {
	meta, ok := m[NewLotKey(itemCode, lot)]
	return meta, ok
}

// ParseDrumNo interpreta el número de tambor del CSV ("3", "3.0"); un valor no
// numérico vale 0, que la actualización descarta por estar fuera de 1..20.
func ParseDrumNo(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
