package imaging

// GeneratePreview decodes at reduced resolution and re-encodes, producing
// a small payload for fast feedback. It is a pure composition of
// DecodeResized and Encode with no independent state.
func GeneratePreview(data []byte, format Format, maxWidth int) (*Encoded, error) {
	buf, err := DecodeResized(data, maxWidth)
	if err != nil {
		return nil, err
	}
	return Encode(buf, format)
}
