// Package archive empaqueta los archivos de exportación en un ZIP en memoria.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/jhoicas/bulkledger-api/internal/application/extract"
)

var _ extract.Archiver = (*ZipBundler)(nil)

// ZipBundler empaquetador ZIP del paquete de exportación.
type ZipBundler struct{}

// NewZipBundler crea el empaquetador.
func NewZipBundler() *ZipBundler { return &ZipBundler{} }

// Bundle escribe las entradas en un ZIP, en el orden recibido. Una entrada
// sin contenido queda como archivo vacío dentro del paquete.
func (b *ZipBundler) Bundle(entries []extract.Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		fw, err := zw.Create(e.Name)
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return nil, fmt.Errorf("zip: escribir entrada %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}
