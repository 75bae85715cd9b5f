package imaging

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Decode turns compressed image bytes into a canonical RGB pixel buffer.
//
// Supported containers are JPEG, PNG, GIF, and WebP. Bytes that are not a
// recognized container, or that are structurally corrupt, fail with a
// *DecodeError; a garbage or empty buffer is never returned.
func Decode(data []byte) (*Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return bufferFromImage(img), nil
}

// DecodeResized decodes and downsamples so the resulting width is at most
// maxWidth, preserving aspect ratio. Images already narrower than maxWidth
// are not upscaled. Used for preview generation.
func DecodeResized(data []byte, maxWidth int) (*Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	return bufferFromImage(img), nil
}
