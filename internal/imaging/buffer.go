package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// channels is the canonical channel count. Every Buffer is interleaved
// 8-bit RGB; alpha and higher bit depths are stripped at decode time so
// downstream stages never branch on channel layout.
const channels = 3

// Buffer is a decoded image: row-major, interleaved 8-bit RGB pixel data.
//
// The invariant len(Pix) == Width*Height*3 holds for every Buffer produced
// by this package. Buffers are never shared between requests and are safe
// to mutate by their owner.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// PixelCount returns the number of pixels in the buffer.
func (b *Buffer) PixelCount() int {
	return b.Width * b.Height
}

// bufferFromImage canonicalizes any image.Image into a 3-channel 8-bit
// RGB buffer. 16-bit sources are reduced to 8 bits and the alpha channel,
// if present, is dropped.
func bufferFromImage(img image.Image) *Buffer {
	src := imaging.Clone(img)
	w := src.Rect.Dx()
	h := src.Rect.Dy()

	buf := &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*channels),
	}
	j := 0
	for i := 0; i < len(src.Pix); i += 4 {
		buf.Pix[j] = src.Pix[i]
		buf.Pix[j+1] = src.Pix[i+1]
		buf.Pix[j+2] = src.Pix[i+2]
		j += channels
	}
	return buf
}

// toNRGBA expands the buffer back into an image.NRGBA with full opacity,
// the representation the adjustment and encoding libraries operate on.
func (b *Buffer) toNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	j := 0
	for i := 0; i < len(b.Pix); i += channels {
		img.Pix[j] = b.Pix[i]
		img.Pix[j+1] = b.Pix[i+1]
		img.Pix[j+2] = b.Pix[i+2]
		img.Pix[j+3] = 255
		j += 4
	}
	return img
}
