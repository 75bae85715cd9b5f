package imaging

import "fmt"

// DecodeError indicates the input bytes are not a valid or supported
// compressed image container.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidImageError indicates a decoded buffer that cannot be analyzed,
// such as one with a zero pixel count.
type InvalidImageError struct {
	Reason string
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image: %s", e.Reason)
}

// UnsupportedFormatError indicates a requested output format outside the
// supported set (jpeg, png, webp).
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format: %q", e.Format)
}

// EncodeError indicates a codec failure while serializing a buffer.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
