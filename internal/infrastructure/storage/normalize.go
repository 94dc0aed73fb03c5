package storage

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/jhoicas/gestor-notas-api/internal/application/ports"
)

const (
	DefaultMaxWidth = 1600
	JPEGQuality     = 85
	MinImageSide    = 50
)

var (
	ErrInvalidImage  = errors.New("imagen inválida o formato no soportado")
	ErrImageTooSmall = errors.New("imagen demasiado pequeña")
)

var _ ports.ImageNormalizer = (*Normalizer)(nil)

// Normalizer corrige la orientación EXIF, reduce el ancho y recodifica a JPEG.
// Las fotos de móvil llegan de varios MB; el modelo de visión no necesita más de 1600px.
type Normalizer struct {
	maxWidth int
}

func NewNormalizer(maxWidth int) *Normalizer {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &Normalizer{maxWidth: maxWidth}
}

func (n *Normalizer) Normalize(data []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	b := img.Bounds()
	if b.Dx() < MinImageSide || b.Dy() < MinImageSide {
		return nil, "", ErrImageTooSmall
	}
	if b.Dx() > n.maxWidth {
		img = imaging.Resize(img, n.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
