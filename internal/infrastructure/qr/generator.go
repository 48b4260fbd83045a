// Package qr renderiza códigos QR como imágenes PNG embebibles (data URI).
package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const defaultSize = 256 // px, lado del PNG cuadrado

// Generator implementa usecase.QRGenerator con boombuler/barcode.
type Generator struct {
	size int
}

// NewGenerator construye el generador con el tamaño por defecto.
func NewGenerator() *Generator {
	return &Generator{size: defaultSize}
}

// GenerateDataURI codifica la URL en un QR de corrección M, lo renderiza como
// PNG y lo devuelve como data URI base64, listo para un <img src=...>.
func (g *Generator) GenerateDataURI(url string) (string, error) {
	code, err := qr.Encode(url, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("codificar qr: %w", err)
	}
	code, err = barcode.Scale(code, g.size, g.size)
	if err != nil {
		return "", fmt.Errorf("escalar qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return "", fmt.Errorf("renderizar png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
