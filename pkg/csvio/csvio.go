// Package csvio: lectura y escritura de CSV con detección automática de
// codificación (cp949/EUC-KR, UTF-8 con o sin BOM, UTF-16) y de separador,
// como los CSV que exporta Excel en equipos coreanos.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoColumns el archivo no produce ninguna columna utilizable bajo ninguna
// combinación de codificación y separador.
var ErrNoColumns = errors.New("csvio: el archivo no produce ninguna columna utilizable")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table resultado tabular de un CSV: cabecera recortada más filas crudas.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column devuelve el índice de la columna con ese nombre (primera coincidencia).
func (t *Table) Column(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// Len número de filas de datos.
func (t *Table) Len() int { return len(t.Rows) }

// At devuelve la celda (fila, columna); fuera de rango devuelve cadena vacía,
// para tolerar filas cortas sin comprobaciones en cada consulta.
func (t *Table) At(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ReadFlexible decodifica y parsea un CSV subido: primero resuelve la
// codificación (BOM UTF-16, BOM UTF-8, UTF-8 válido, si no cp949), luego
// adivina el separador sobre la línea de cabecera (",", ";" o tabulador).
func ReadFlexible(data []byte) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrNoColumns
	}
	text := string(decode(data))

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoColumns, err)
	}
	if len(records) == 0 {
		return nil, ErrNoColumns
	}

	header := make([]string, len(records[0]))
	usable := false
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
		if header[i] != "" {
			usable = true
		}
	}
	if !usable {
		return nil, ErrNoColumns
	}
	return &Table{Header: header, Rows: records[1:]}, nil
}

// MarshalBOM serializa cabecera y filas como CSV UTF-8 con BOM, el formato que
// Excel abre con hangul intacto.
func MarshalBOM(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csvio: escribir cabecera: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csvio: escribir fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csvio: volcar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}), bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, _, err := transform.Bytes(dec, data); err == nil {
			return out
		}
		return data
	case bytes.HasPrefix(data, utf8BOM):
		return data[3:]
	case utf8.Valid(data):
		return data
	default:
		if out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data); err == nil {
			return out
		}
		return data
	}
}

// sniffDelimiter cuenta candidatos sobre la línea de cabecera, sin contar los
// que caen dentro de comillas; empate o cero ocurrencias dejan la coma.
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		line = text[:i]
	}
	best, bestCount := ',', 0
	for _, c := range []rune{',', ';', '\t'} {
		if n := countUnquoted(line, c); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// countUnquoted apariciones de sep fuera de tramos entre comillas dobles.
func countUnquoted(line string, sep rune) int {
	n, quoted := 0, false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == sep && !quoted:
			n++
		}
	}
	return n
}
