// Package imaging implements the pixel-analysis and adjustment pipeline at
// the core of the image editor backend.
//
// The package covers the full path from compressed bytes to compressed
// bytes: decoding into a canonical buffer, reducing that buffer to summary
// metrics, applying a reproducible adjustment chain, and re-encoding to a
// requested format.
//
// # Canonical Buffer Format
//
// Every decoded image is canonicalized to a Buffer: row-major, interleaved
// 8-bit RGB with exactly three channels. Alpha channels are stripped and
// 16-bit sources reduced at the decode boundary, so metrics and adjustment
// code never branch on channel layout. The invariant
// len(Pix) == Width*Height*3 holds for every Buffer.
//
// # Adjustment Chain
//
// Apply executes a fixed three-step chain, always in the same order:
// HSL modulation of brightness and saturation, a linear contrast remap,
// and an arbitrary-angle rotation with canvas expansion. All factors
// default to their neutral values, and neutral parameters reproduce the
// input buffer byte for byte.
//
// The contrast step is gated on an exact floating-point comparison against
// 1.0. This is deliberate: the observable contract is "skip iff the factor
// is bit-for-bit neutral", not "skip iff approximately neutral".
//
// # Error Handling
//
// All failures are typed and matchable with errors.As:
//   - *DecodeError: bytes are not a valid or supported compressed image
//   - *InvalidImageError: decoded buffer has a zero pixel count
//   - *UnsupportedFormatError: requested format outside jpeg/png/webp
//   - *EncodeError: codec failure during serialization
//
// # Concurrency
//
// Operations are stateless and buffers are never shared, so any number of
// pipelines may run concurrently. All work is CPU-bound and runs to
// completion; there is no cancellation support.
package imaging
