package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vladshablinsky/brew/pkg/buildinfo"
	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/pipeline"
	"github.com/vladshablinsky/brew/pkg/render"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type depsResponse struct {
	ID       string                   `json:"id"`
	Formulae []string                 `json:"formulae"`
	Union    bool                     `json:"union,omitempty"`
	Deps     []*dependency.Dependency `json:"deps"`
	CacheHit bool                     `json:"cache_hit"`
}

type upgradeResponse struct {
	Formula string                 `json:"formula"`
	Deps    []pipeline.UpgradeSpec `json:"deps"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleDeps(w http.ResponseWriter, r *http.Request) {
	s.deps(w, r, []string{formulaName(r)}, false)
}

func (s *Server) handleDepsMulti(w http.ResponseWriter, r *http.Request) {
	union, err := boolParam(r, "union")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.deps(w, r, r.URL.Query()["formula"], union)
}

func (s *Server) deps(w http.ResponseWriter, r *http.Request, formulae []string, union bool) {
	filter, err := filterParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	refresh, err := boolParam(r, "refresh")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Deps(r.Context(), pipeline.Request{Formulae: formulae, Filter: filter, Union: union, Refresh: refresh})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	deps := res.Deps
	if deps == nil {
		deps = []*dependency.Dependency{}
	}
	s.writeJSON(w, http.StatusOK, depsResponse{
		ID:       requestID(r),
		Formulae: res.Formulae,
		Union:    union,
		Deps:     deps,
		CacheHit: res.Stats.CacheHit,
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateTreeFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	filter, err := filterParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	refresh, err := boolParam(r, "refresh")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := s.runner.Tree(r.Context(), pipeline.TreeRequest{Formula: formulaName(r), Filter: filter, Refresh: refresh})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	contentType := "application/json"
	switch format {
	case pipeline.FormatDOT:
		contentType = "text/vnd.graphviz"
		buf.WriteString(render.ToDOT(g, render.Options{Tags: true}))
	case pipeline.FormatSVG:
		contentType = "image/svg+xml"
		svg, err := render.RenderSVG(r.Context(), render.ToDOT(g, render.Options{}))
		if err != nil {
			s.writeError(w, r, brewerrors.Wrap(brewerrors.ErrCodeInternal, err, "render svg"))
			return
		}
		buf.Write(svg)
	case pipeline.FormatText:
		contentType = "text/plain; charset=utf-8"
		err = render.WriteText(g, &buf, render.TextOptions{Tags: true})
	default:
		err = render.WriteJSON(g, &buf)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleUpgradeSpecs(w http.ResponseWriter, r *http.Request) {
	name := formulaName(r)
	refresh, err := boolParam(r, "refresh")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	specs, err := s.runner.UpgradeSpecs(r.Context(), pipeline.UpgradeRequest{Formula: name, Refresh: refresh})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, upgradeResponse{Formula: name, Deps: specs})
}

// formulaName returns the {name} path parameter, qualified with ?tap= when
// given.
func formulaName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if t := r.URL.Query().Get("tap"); t != "" {
		return t + "/" + name
	}
	return name
}

func filterParams(r *http.Request) (dependency.Filter, error) {
	var f dependency.Filter
	for _, p := range []struct {
		name string
		dst  *bool
	}{
		{"include_build", &f.IncludeBuild},
		{"include_optional", &f.IncludeOptional},
		{"skip_recommended", &f.SkipRecommended},
		{"direct", &f.OnlyDirect},
	} {
		v, err := boolParam(r, p.name)
		if err != nil {
			return dependency.Filter{}, err
		}
		*p.dst = v
	}
	return f, nil
}

func boolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, brewerrors.New(brewerrors.ErrCodeInvalidInput, "query parameter %s: %q is not a boolean", name, raw)
	}
	return v, nil
}

// requestID returns the ID the RequestID middleware assigned, minting one
// when the handler runs without it.
func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}
