package ledger

import (
	"regexp"
	"strconv"
	"strings"
)

// AdjustFormulaRow reescribe en una fórmula los números de fila de las referencias
// de celda oldRow -> newRow. Solo procesa cadenas que (tras recortar espacios)
// empiezan con "="; cualquier otro valor se devuelve sin tocar.
//
//	AdjustFormulaRow("=($R418+[@외주수량])-$T418", 418, 419) => "=($R419+[@외주수량])-$T419"
//
// Las referencias estructuradas ([@외주수량], 표1[@외주수량]) no se modifican.
func AdjustFormulaRow(formula string, oldRow, newRow int) string {
	trimmed := strings.TrimSpace(formula)
	if !strings.HasPrefix(trimmed, "=") {
		return formula
	}
	out := RewriteRowRefs(trimmed, oldRow, newRow)
	if out == trimmed {
		return formula
	}
	return out
}

// RewriteRowRefs reemplaza toda referencia de celda `$?[A-Z]{1,3}oldRow` seguida
// de límite de palabra por la misma columna con newRow. Las coincidencias dentro
// de corchetes (referencias estructuradas de tabla) se dejan intactas.
func RewriteRowRefs(expr string, oldRow, newRow int) string {
	re := regexp.MustCompile(`(\$?[A-Z]{1,3})` + strconv.Itoa(oldRow) + `\b`)
	matches := re.FindAllStringSubmatchIndex(expr, -1)
	if len(matches) == 0 {
		return expr
	}

	dst := strconv.Itoa(newRow)
	var b strings.Builder
	last := 0
	depth := 0
	pos := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		colStart, colEnd := m[2], m[3]
		// profundidad de corchetes hasta el inicio de la coincidencia
		for ; pos < start; pos++ {
			switch expr[pos] {
			case '[':
				depth++
			case ']':
				if depth > 0 {
					depth--
				}
			}
		}
		if depth > 0 {
			continue
		}
		b.WriteString(expr[last:colStart])
		b.WriteString(expr[colStart:colEnd])
		b.WriteString(dst)
		last = end
	}
	b.WriteString(expr[last:])
	return b.String()
}
