package ports

import "context"

// ImageStorage almacenamiento de las fotos de las notas (S3 o compatible).
type ImageStorage interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	// PresignGet URL temporal de lectura; es lo que se envía al modelo de visión.
	PresignGet(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageNormalizer reescala y recodifica la foto antes de subirla.
type ImageNormalizer interface {
	// Normalize devuelve la imagen en JPEG y su content-type.
	Normalize(data []byte) ([]byte, string, error)
}
