package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ADIKDL/ImageEditor-backend/internal/imaging"
	"github.com/ADIKDL/ImageEditor-backend/internal/storage"
)

// uploadResponse is returned by POST /upload.
type uploadResponse struct {
	Message    string  `json:"message"`
	Preview    string  `json:"preview"`
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Handle     string  `json:"handle"`
}

// processResponse is returned by POST /process. The processed data URI is
// duplicated under two keys so clients can treat it as both the new
// preview and the full result. The handle is echoed back to allow repeated
// non-destructive experimentation against the same original.
type processResponse struct {
	Preview    string  `json:"preview"`
	Processed  string  `json:"processed"`
	Brightness float64 `json:"brightness"`
	Saturation float64 `json:"saturation"`
	Contrast   float64 `json:"contrast"`
	Rotation   float64 `json:"rotation"`
	Handle     string  `json:"handle"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	s.acquire()
	defer s.release()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, fmt.Errorf("missing image file: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, fmt.Errorf("read upload: %w", err), http.StatusBadRequest)
		return
	}

	format, err := imaging.ParseFormat(r.FormValue("format"))
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	start := time.Now()
	buf, err := imaging.Decode(data)
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	metrics, err := imaging.ComputeMetrics(buf)
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	preview, err := imaging.GeneratePreview(data, format, s.cfg.PreviewWidth)
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	handle, err := s.store.Put(data)
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	s.log.Info().
		Str("step", "upload").
		Str("handle", handle).
		Int("width", buf.Width).
		Int("height", buf.Height).
		Str("format", string(format)).
		Dur("duration", time.Since(start)).
		Msg("image analyzed")

	s.respondJSON(w, http.StatusOK, uploadResponse{
		Message:    "Image uploaded successfully",
		Preview:    preview.DataURI(),
		Brightness: metrics.Brightness,
		Contrast:   metrics.Contrast,
		Saturation: metrics.Saturation,
		Handle:     handle,
	})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	s.acquire()
	defer s.release()

	handle, params, format, err := decodeProcessRequest(r)
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	encoded, err := s.runPipeline(handle, params, format)
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	uri := encoded.DataURI()
	s.respondJSON(w, http.StatusOK, processResponse{
		Preview:    uri,
		Processed:  uri,
		Brightness: params.Brightness,
		Saturation: params.Saturation,
		Contrast:   params.Contrast,
		Rotation:   params.Rotation,
		Handle:     handle,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.acquire()
	defer s.release()

	handle, params, format, err := decodeProcessRequest(r)
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	encoded, err := s.runPipeline(handle, params, format)
	if err != nil {
		s.writeError(w, err, 0)
		return
	}

	w.Header().Set("Content-Type", encoded.Format.MIMEType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=processed.%s", encoded.Format))
	w.Write(encoded.Data)
}

// runPipeline resolves a stored original and runs decode, adjust, and
// encode to completion. Each step is attempted exactly once.
func (s *Server) runPipeline(handle string, params imaging.Parameters, format imaging.Format) (*imaging.Encoded, error) {
	data, err := s.store.Get(handle)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	buf, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}

	adjusted := imaging.Apply(buf, params)

	encoded, err := imaging.Encode(adjusted, format)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("step", "process").
		Str("handle", handle).
		Float64("brightness", params.Brightness).
		Float64("saturation", params.Saturation).
		Float64("contrast", params.Contrast).
		Float64("rotation", params.Rotation).
		Str("format", string(format)).
		Int("size", len(encoded.Data)).
		Dur("duration", time.Since(start)).
		Msg("image processed")

	return encoded, nil
}

// processPayload mirrors the loosely typed JSON body accepted by
// /process and /download. Numeric fields may arrive as JSON numbers or
// strings; anything unparseable falls back to the neutral value.
type processPayload struct {
	Handle     string `json:"handle"`
	Brightness any    `json:"brightness"`
	Saturation any    `json:"saturation"`
	Contrast   any    `json:"contrast"`
	Rotation   any    `json:"rotation"`
	Format     string `json:"format"`
}

// decodeProcessRequest extracts the stored-original handle, adjustment
// parameters, and output format from either a JSON body or form fields.
func decodeProcessRequest(r *http.Request) (string, imaging.Parameters, imaging.Format, error) {
	var handle, brightness, saturation, contrast, rotation, formatName string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var p processPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return "", imaging.Parameters{}, "", fmt.Errorf("parse request body: %w", err)
		}
		handle = p.Handle
		brightness = looseString(p.Brightness)
		saturation = looseString(p.Saturation)
		contrast = looseString(p.Contrast)
		rotation = looseString(p.Rotation)
		formatName = p.Format
	} else {
		handle = r.FormValue("handle")
		brightness = r.FormValue("brightness")
		saturation = r.FormValue("saturation")
		contrast = r.FormValue("contrast")
		rotation = r.FormValue("rotation")
		formatName = r.FormValue("format")
	}

	params := imaging.ParseParameters(brightness, saturation, contrast, rotation)
	format, err := imaging.ParseFormat(formatName)
	if err != nil {
		return "", imaging.Parameters{}, "", err
	}
	return handle, params, format, nil
}

func looseString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// errorResponse is the JSON body for every failure, carrying the error
// kind so clients can distinguish failure modes.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// writeError maps core error kinds to distinct HTTP statuses instead of
// collapsing them into a generic server error. A non-zero status overrides
// the mapping.
func (s *Server) writeError(w http.ResponseWriter, err error, status int) {
	kind := "internal"

	var (
		decodeErr      *imaging.DecodeError
		invalidErr     *imaging.InvalidImageError
		unsupportedErr *imaging.UnsupportedFormatError
		encodeErr      *imaging.EncodeError
	)
	switch {
	case errors.As(err, &unsupportedErr):
		kind = "unsupported_format"
		if status == 0 {
			status = http.StatusBadRequest
		}
	case errors.As(err, &decodeErr):
		kind = "decode_failed"
		if status == 0 {
			status = http.StatusBadRequest
		}
	case errors.As(err, &invalidErr):
		kind = "invalid_image"
		if status == 0 {
			status = http.StatusUnprocessableEntity
		}
	case errors.Is(err, storage.ErrNotFound):
		kind = "unknown_handle"
		if status == 0 {
			status = http.StatusNotFound
		}
	case errors.As(err, &encodeErr):
		kind = "encode_failed"
		if status == 0 {
			status = http.StatusInternalServerError
		}
	default:
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if status < http.StatusInternalServerError {
			kind = "bad_request"
		}
	}

	if status >= http.StatusInternalServerError {
		s.log.Error().Err(err).Str("kind", kind).Msg("request failed")
	} else {
		s.log.Warn().Err(err).Str("kind", kind).Msg("request rejected")
	}

	s.respondJSON(w, status, errorResponse{Error: kind, Detail: err.Error()})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}
