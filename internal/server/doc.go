// Package server exposes the imaging pipeline over HTTP.
//
// Three endpoints form the request/response boundary:
//
//   - POST /upload: accepts a multipart image plus a desired output
//     format; responds with a data-URI preview, the three summary metrics,
//     and an opaque handle to the stored original.
//   - POST /process: accepts a handle plus loosely typed adjustment
//     parameters; responds with the processed image as a data URI
//     (duplicated under the preview and processed keys), the resolved
//     numeric factors, and the same handle.
//   - POST /download: same input as /process; responds with the raw
//     encoded payload, a matching Content-Type, and a Content-Disposition
//     requesting download as processed.<format>.
//
// Parameters may arrive as form fields or a JSON body. Numeric values
// that fail to parse default to their neutral values and never reject a
// request; an unknown output format is rejected, while an omitted one
// defaults to jpeg.
//
// # Concurrency
//
// Pipeline invocations are stateless and independent. A fixed pool of
// worker slots bounds how many decode/adjust/encode pipelines run at
// once; requests beyond the limit queue on slot acquisition. No ordering
// is guaranteed between distinct requests. Once started, a pipeline runs
// to completion; client disconnects do not abort it.
//
// # Error Mapping
//
// Core failures keep their identity at the boundary: decode failures and
// unsupported formats map to 400, a zero-pixel image to 422, an unknown
// storage handle to 404, and codec failures to 500. Every error body
// carries a machine-readable kind plus the underlying detail.
package server
