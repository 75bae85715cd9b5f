package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/gen2brain/jpegli"
)

// Format identifies a supported output codec. The set is closed: jpeg,
// png, and webp.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// Encoding quality for the lossy codecs. WebP runs a few points lower
// than JPEG for roughly equivalent perceived quality.
const (
	jpegQuality = 90
	webpQuality = 85
)

// ParseFormat resolves a caller-supplied format name. An omitted or empty
// name defaults to JPEG; any other name outside the supported set is
// rejected with *UnsupportedFormatError.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", &UnsupportedFormatError{Format: name}
	}
}

// MIMEType returns the media type for the format, e.g. "image/jpeg".
func (f Format) MIMEType() string {
	return "image/" + string(f)
}

// Encoded is a compressed image payload tagged with its format. It is
// transient: returned to the caller or rendered as a data URI, never
// retained.
type Encoded struct {
	Format Format
	Data   []byte
}

// Encode serializes a buffer into the target compressed format. A codec
// failure surfaces as *EncodeError.
func Encode(buf *Buffer, format Format) (*Encoded, error) {
	img := buf.toNRGBA()

	var out bytes.Buffer
	var err error
	switch format {
	case FormatJPEG:
		err = jpegli.Encode(&out, img, &jpegli.EncodingOptions{
			Quality:           jpegQuality,
			ChromaSubsampling: image.YCbCrSubsampleRatio420,
		})
	case FormatPNG:
		err = png.Encode(&out, img)
	case FormatWebP:
		err = webp.Encode(&out, img, &webp.Options{Quality: webpQuality})
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	if err != nil {
		return nil, &EncodeError{Format: format, Err: err}
	}

	return &Encoded{Format: format, Data: out.Bytes()}, nil
}

// DataURI renders the payload as a base64 data URI usable directly as an
// image source: "data:image/<format>;base64,<payload>".
func (e *Encoded) DataURI() string {
	return "data:" + e.Format.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(e.Data)
}
