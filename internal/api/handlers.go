package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/bisect/pkg/buildinfo"
	bierrors "github.com/matzehuels/bisect/pkg/errors"
	"github.com/matzehuels/bisect/pkg/pipeline"
	"github.com/matzehuels/bisect/pkg/render"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    bierrors.Code `json:"code"`
	Message string        `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// partition handles POST /v1/partition?max_passes=N&refresh=true.
func (s *Server) partition(w http.ResponseWriter, r *http.Request) {
	out, err := s.execute(w, r)
	if err != nil {
		respondError(w, err)
		return
	}
	setCacheHeader(w, out.CacheHit)
	respondJSON(w, http.StatusOK, out.Result)
}

// render handles POST /v1/render?format=svg&weights=true. The graph is
// optimized first and the diagram shows the final assignment.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := render.FormatSVG
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			respondError(w, bierrors.Wrap(bierrors.ErrCodeInvalidInput, err, "format"))
			return
		}
		format = f
	}
	weights, err := boolParam(r, "weights")
	if err != nil {
		respondError(w, err)
		return
	}

	out, err := s.execute(w, r)
	if err != nil {
		respondError(w, err)
		return
	}
	data, err := s.runner.Render(r.Context(), out.Bisection, pipeline.RenderOptions{
		Format:  format,
		Weights: weights,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	setCacheHeader(w, out.CacheHit)
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request) (*pipeline.Output, error) {
	opts := pipeline.Options{MaxPasses: s.cfg.MaxPasses}
	if v := r.URL.Query().Get("max_passes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, bierrors.New(bierrors.ErrCodeInvalidInput, "max_passes must be an integer, got %q", v)
		}
		opts.MaxPasses = n
	}
	refresh, err := boolParam(r, "refresh")
	if err != nil {
		return nil, err
	}
	opts.Refresh = refresh

	g, err := pipeline.DecodeGraph(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, err
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}
	return s.runner.Execute(ctx, g, opts)
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, bierrors.New(bierrors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}

func contentType(f render.Format) string {
	switch f {
	case render.FormatPNG:
		return "image/png"
	case render.FormatSVG:
		return "image/svg+xml"
	default:
		return "text/vnd.graphviz"
	}
}

func notFound(path string) error {
	return bierrors.New(bierrors.ErrCodeNotFound, "no route for %s", path)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	code := bierrors.GetCode(err)
	if code == "" {
		code = bierrors.ErrCodeInternal
	}
	respondJSON(w, bierrors.HTTPStatus(err), ErrorResponse{
		Code:    code,
		Message: bierrors.UserMessage(err),
	})
}
