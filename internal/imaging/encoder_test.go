package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"empty defaults to jpeg", "", FormatJPEG, false},
		{"jpeg", "jpeg", FormatJPEG, false},
		{"jpg alias", "jpg", FormatJPEG, false},
		{"uppercase", "JPEG", FormatJPEG, false},
		{"png", "png", FormatPNG, false},
		{"webp", "webp", FormatWebP, false},
		{"mixed case webp", "WebP", FormatWebP, false},
		{"surrounding whitespace", " png ", FormatPNG, false},
		{"bmp rejected", "bmp", "", true},
		{"gif rejected", "gif", "", true},
		{"nonsense rejected", "not-a-format", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				var unsupportedErr *UnsupportedFormatError
				if !errors.As(err, &unsupportedErr) {
					t.Fatalf("expected *UnsupportedFormatError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncode_PNGRoundTrip(t *testing.T) {
	src := patternBuffer(9, 5)

	encoded, err := Encode(src, FormatPNG)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(encoded.Data)
	if err != nil {
		t.Fatalf("Decode of encoded output failed: %v", err)
	}
	if decoded.Width != src.Width || decoded.Height != src.Height {
		t.Errorf("dimensions: got %dx%d, want %dx%d",
			decoded.Width, decoded.Height, src.Width, src.Height)
	}
	// PNG is lossless: the buffer round-trips byte for byte.
	if !bytes.Equal(decoded.Pix, src.Pix) {
		t.Error("PNG round trip should preserve pixel data exactly")
	}
}

func TestEncode_JPEG(t *testing.T) {
	encoded, err := Encode(uniformBuffer(16, 16, 180, 90, 45), FormatJPEG)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if encoded.Format != FormatJPEG {
		t.Errorf("format tag: got %q, want %q", encoded.Format, FormatJPEG)
	}
	if len(encoded.Data) < 4 || encoded.Data[0] != 0xFF || encoded.Data[1] != 0xD8 {
		t.Error("output does not start with the JPEG SOI marker")
	}

	decoded, err := Decode(encoded.Data)
	if err != nil {
		t.Fatalf("Decode of JPEG output failed: %v", err)
	}
	if decoded.Width != 16 || decoded.Height != 16 {
		t.Errorf("dimensions: got %dx%d, want 16x16", decoded.Width, decoded.Height)
	}
}

func TestEncode_WebP(t *testing.T) {
	encoded, err := Encode(uniformBuffer(20, 10, 0, 200, 100), FormatWebP)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(encoded.Data) < 12 ||
		string(encoded.Data[0:4]) != "RIFF" ||
		string(encoded.Data[8:12]) != "WEBP" {
		t.Error("output is not a RIFF/WEBP container")
	}

	decoded, err := Decode(encoded.Data)
	if err != nil {
		t.Fatalf("Decode of WebP output failed: %v", err)
	}
	if decoded.Width != 20 || decoded.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", decoded.Width, decoded.Height)
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(uniformBuffer(2, 2, 0, 0, 0), Format("bmp"))
	var unsupportedErr *UnsupportedFormatError
	if !errors.As(err, &unsupportedErr) {
		t.Errorf("expected *UnsupportedFormatError, got %v", err)
	}
}

func TestDataURI(t *testing.T) {
	encoded, err := Encode(uniformBuffer(3, 3, 10, 20, 30), FormatPNG)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	uri := encoded.DataURI()
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("data URI prefix: got %q", uri[:min(len(uri), 30)])
	}

	payload, err := base64.StdEncoding.DecodeString(uri[len(prefix):])
	if err != nil {
		t.Fatalf("data URI payload is not valid base64: %v", err)
	}
	if !bytes.Equal(payload, encoded.Data) {
		t.Error("data URI payload does not match encoded bytes")
	}
}

func TestFormatMIMEType(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJPEG, "image/jpeg"},
		{FormatPNG, "image/png"},
		{FormatWebP, "image/webp"},
	}
	for _, tt := range tests {
		if got := tt.format.MIMEType(); got != tt.want {
			t.Errorf("MIMEType(%q): got %q, want %q", tt.format, got, tt.want)
		}
	}
}
