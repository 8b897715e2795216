package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/funcstructs/pkg/buildinfo"
	fserrors "github.com/matzehuels/funcstructs/pkg/errors"
	"github.com/matzehuels/funcstructs/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// intParam parses a path parameter and enforces the server's size cap.
func (s *Server) intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fserrors.New(fserrors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, raw)
	}
	if err := fserrors.ValidateBound(name, v, s.opts.MaxSize); err != nil {
		return 0, err
	}
	return v, nil
}

// streamOptions reads ?limit= and ?format= for the streaming routes.
func streamOptions(r *http.Request, opts *pipeline.Options) error {
	q := r.URL.Query()
	opts.Limit = DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > MaxLimit {
			return fserrors.New(fserrors.ErrCodeInvalidInput, "limit must be in [1, %d], got %q", MaxLimit, raw)
		}
		opts.Limit = v
	}
	opts.Format = pipeline.FormatJSON
	if f := q.Get("format"); f != "" {
		if err := fserrors.ValidateChoice(fserrors.ErrCodeInvalidFormat, "format", f,
			pipeline.FormatJSON, pipeline.FormatText); err != nil {
			return err
		}
		opts.Format = f
	}
	return opts.ValidateAndSetDefaults()
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	if err := streamOptions(r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Format == pipeline.FormatJSON {
		w.Header().Set("Content-Type", "application/x-ndjson")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	stats, err := s.runner.Enumerate(r.Context(), opts, w)
	if err != nil {
		// Headers are already sent; the truncated body is all we can do.
		s.logger.Warn("stream aborted", "err", err, "items", stats.Items,
			"request_id", RequestID(r.Context()))
	}
}

func (s *Server) handleTrees(w http.ResponseWriter, r *http.Request) {
	n, err := s.intParam(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.stream(w, r, pipeline.Options{Kind: pipeline.KindTrees, N: n})
}

func (s *Server) handlePartitions(w http.ResponseWriter, r *http.Request) {
	n, err := s.intParam(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.intParam(r, "l")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.stream(w, r, pipeline.Options{Kind: pipeline.KindPartitions, N: n, L: l})
}

func (s *Server) count(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}
	verify, _ := strconv.ParseBool(r.URL.Query().Get("verify"))
	if !verify {
		formula, err := pipeline.Formula(opts.Kind, opts.N, opts.L)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pipeline.CountResult{
			Kind: opts.Kind, N: opts.N, L: opts.L, Count: formula, Formula: formula,
		})
		return
	}
	res, err := s.runner.Count(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCountTrees(w http.ResponseWriter, r *http.Request) {
	n, err := s.intParam(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.count(w, r, pipeline.Options{Kind: pipeline.KindTrees, N: n})
}

func (s *Server) handleCountPartitions(w http.ResponseWriter, r *http.Request) {
	n, err := s.intParam(r, "n")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.intParam(r, "l")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.count(w, r, pipeline.Options{Kind: pipeline.KindPartitions, N: n, L: l})
}

func (s *Server) handleCensus(w http.ResponseWriter, r *http.Request) {
	maxN, err := s.intParam(r, "max")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	census, err := s.runner.Census(r.Context(), chi.URLParam(r, "kind"), maxN, s.opts.CensusWorkers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, census)
}
