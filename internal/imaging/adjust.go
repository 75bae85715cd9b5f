package imaging

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Parameters control the adjustment chain. The three factors are
// multiplicative with 1.0 meaning "no change"; Rotation is in degrees,
// clockwise for positive values, and may be any real number.
type Parameters struct {
	Brightness float64 `json:"brightness"`
	Saturation float64 `json:"saturation"`
	Contrast   float64 `json:"contrast"`
	Rotation   float64 `json:"rotation"`
}

// NeutralParameters returns the identity parameter set.
func NeutralParameters() Parameters {
	return Parameters{Brightness: 1, Saturation: 1, Contrast: 1, Rotation: 0}
}

// ParseParameters builds Parameters from loosely typed string values, as
// supplied by form fields or JSON payloads. A value that fails to parse as
// a number falls back to the neutral value for that parameter; parsing
// never fails.
func ParseParameters(brightness, saturation, contrast, rotation string) Parameters {
	return Parameters{
		Brightness: parseFactor(brightness, 1),
		Saturation: parseFactor(saturation, 1),
		Contrast:   parseFactor(contrast, 1),
		Rotation:   parseFactor(rotation, 0),
	}
}

func parseFactor(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

// Apply runs the fixed three-step adjustment chain over a buffer and
// returns a new buffer; the input is never modified. Steps always execute
// in this order:
//
//  1. Modulation: brightness and saturation scaled in HSL space.
//  2. Contrast: linear remap output = input*factor + (0.5 - 0.5*factor).
//  3. Rotation: arbitrary-angle rotate with canvas expansion, exposed
//     corners filled black.
//
// Neutral parameters reproduce the input exactly.
func Apply(buf *Buffer, p Parameters) *Buffer {
	var img image.Image = buf.toNRGBA()

	if p.Brightness != 1.0 || p.Saturation != 1.0 {
		img = modulate(img, p.Brightness, p.Saturation)
	}
	if contrastEnabled(p.Contrast) {
		img = adjust.Contrast(img, p.Contrast-1)
	}
	if p.Rotation != 0 {
		// imaging rotates counterclockwise for positive angles; negate so
		// positive degrees mean clockwise.
		img = imaging.Rotate(img, -p.Rotation, color.NRGBA{A: 255})
	}

	return bufferFromImage(img)
}

// contrastEnabled gates the contrast step. The contract is "skip iff the
// factor is bit-for-bit the neutral value", so this is an exact comparison,
// not a tolerance-based one.
func contrastEnabled(factor float64) bool {
	return factor != 1.0
}

// modulate scales lightness and saturation per pixel within HSL space.
func modulate(src image.Image, brightness, saturation float64) *image.NRGBA {
	img := imaging.Clone(src)
	for i := 0; i < len(img.Pix); i += 4 {
		c := colorful.Color{
			R: float64(img.Pix[i]) / 255,
			G: float64(img.Pix[i+1]) / 255,
			B: float64(img.Pix[i+2]) / 255,
		}
		h, s, l := c.Hsl()
		out := colorful.Hsl(h, clamp01(s*saturation), clamp01(l*brightness)).Clamped()
		img.Pix[i] = uint8(out.R*255 + 0.5)
		img.Pix[i+1] = uint8(out.G*255 + 0.5)
		img.Pix[i+2] = uint8(out.B*255 + 0.5)
	}
	return img
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
