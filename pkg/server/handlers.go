package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gander-tools/playground/pkg/sheet"
)

// CellValue is the body of GET /cells/{name}.
type CellValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Kind  string  `json:"kind"`
}

// WriteRequest is the body of PUT /cells/{name}.
type WriteRequest struct {
	Value *float64 `json:"value"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Debug("health response not written", "error", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	values, err := s.sheet.Snapshot()
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	kind, ok := s.sheet.Kind(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", sheet.ErrUnknownName, name))
		return
	}
	v, err := s.sheet.Get(name)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, CellValue{Name: name, Value: v, Kind: kind})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ctx, span := s.tracer.Start(r.Context(), "server.write")
	defer span.End()
	span.SetAttributes(attribute.String("playground.cell", name))

	var req WriteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		span.SetStatus(codes.Error, "bad request")
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}
	if req.Value == nil {
		span.SetStatus(codes.Error, "bad request")
		s.writeError(w, http.StatusBadRequest, errors.New(`invalid body: missing "value"`))
		return
	}
	if math.IsNaN(*req.Value) || math.IsInf(*req.Value, 0) {
		span.SetStatus(codes.Error, "bad request")
		s.writeError(w, http.StatusBadRequest, errors.New("invalid body: value must be finite"))
		return
	}

	if err := s.sheet.Set(name, *req.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, statusFor(err), err)
		return
	}
	span.SetAttributes(attribute.Float64("playground.value", *req.Value))
	s.logger.DebugContext(ctx, "cell written", "cell", name, "value", *req.Value)
	w.WriteHeader(http.StatusNoContent)
}

// statusFor maps sheet errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sheet.ErrUnknownName):
		return http.StatusNotFound
	case errors.Is(err, sheet.ErrReadOnly):
		return http.StatusConflict
	case errors.Is(err, sheet.ErrBadValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}

// writeJSON encodes v before sending the status line, so an encoding
// failure still produces a 500 with a body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "error", err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorBody{Error: "response could not be encoded"})
	}
	data = append(data, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("response not written", "error", err)
	}
}
