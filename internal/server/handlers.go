package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stepviz/pkg/buildinfo"
	"github.com/matzehuels/stepviz/pkg/catalog"
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/render"
	"github.com/matzehuels/stepviz/pkg/trace"
)

type runRequest struct {
	Input  catalog.Input  `json:"input"`
	Params catalog.Params `json:"params,omitempty"`
}

type validateResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	descs := s.registry.List()
	if c := r.URL.Query().Get("category"); c != "" {
		cat, err := catalog.ParseCategory(c)
		if err != nil {
			s.writeError(w, err)
			return
		}
		descs = s.registry.ByCategory(cat)
	}
	out := make([]catalog.Summary, len(descs))
	for i, d := range descs {
		out[i] = d.Summary()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) info(w http.ResponseWriter, r *http.Request) {
	d, ok := s.descriptor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d.Info())
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	d, ok := s.descriptor(w, r)
	if !ok {
		return
	}
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := d.Check(req.Input, req.Params, s.runner.Limits); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validateResponse{Error: errors.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{OK: true})
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	tr, ok := s.record(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	contentType, known := render.ContentTypes[format]
	if !known {
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format))
		return
	}

	tr, ok := s.record(w, r)
	if !ok {
		return
	}
	n := tr.Len()
	if q := r.URL.Query().Get("step"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 0 || v > tr.Len() {
			s.writeError(w, errors.New(errors.ErrCodeInvalidParam, "step must be between 0 and %d", tr.Len()))
			return
		}
		n = v
	}

	data, _, err := s.runner.Artifact(r.Context(), tr, n, format, func() ([]byte, error) {
		return render.Draw(r.Context(), trace.StateAt(tr, n), format)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// record decodes the body and returns the (possibly cached) trace.
func (s *Server) record(w http.ResponseWriter, r *http.Request) (*trace.Trace, bool) {
	d, ok := s.descriptor(w, r)
	if !ok {
		return nil, false
	}
	req, ok := s.decode(w, r)
	if !ok {
		return nil, false
	}
	tr, hit, err := s.runner.Run(r.Context(), d, req.Input, req.Params)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	return tr, true
}

func (s *Server) descriptor(w http.ResponseWriter, r *http.Request) (*catalog.Descriptor, bool) {
	d, err := s.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return d, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (runRequest, bool) {
	var req runRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body"))
		return req, false
	}
	return req, true
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeAlgorithmNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidParam:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
