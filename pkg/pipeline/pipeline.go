// Package pipeline runs dependency listings end to end for the CLI and the
// HTTP API.
//
// A [Runner] loads the requested formulae, expands them with the configured
// filter, merges repeats and caches the result:
//
//	runner := pipeline.NewRunner(formulary, cellarDir, c, nil, logger)
//	res, err := runner.Deps(ctx, pipeline.Request{
//	    Formulae: []string{"wget", "curl"},
//	    Filter:   dependency.Filter{IncludeBuild: true},
//	})
//
// Several roots are expanded in parallel, each with its own expansion stack,
// and combined by intersection (the dependencies all roots share) or, with
// [Request.Union], by union.
//
// Results are cached only when both the loader and the cellar can
// fingerprint their contents (see [Fingerprinter]); in-memory registries
// are never cached.
package pipeline

import (
	"time"

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
)

// Fingerprinter is implemented by loaders and cellars whose contents can be
// summarized for cache keys.
type Fingerprinter interface {
	Fingerprint() (string, error)
}

// Request describes one dependency listing.
type Request struct {
	Formulae []string          `json:"formulae"`
	Filter   dependency.Filter `json:"filter"`
	Union    bool              `json:"union,omitempty"`

	// Refresh bypasses the cache lookup; the fresh result is still stored.
	Refresh bool `json:"-"`
}

// Validate checks that at least one well-formed formula name is given.
func (r Request) Validate() error {
	if len(r.Formulae) == 0 {
		return brewerrors.New(brewerrors.ErrCodeInvalidInput, "at least one formula is required")
	}
	for _, name := range r.Formulae {
		if err := brewerrors.ValidateFormulaName(name); err != nil {
			return err
		}
	}
	return nil
}

// TreeRequest describes one dependency tree.
type TreeRequest struct {
	Formula string
	Filter  dependency.Filter
	Refresh bool // Bypass the cache lookup
}

// UpgradeRequest asks for the upgrade specs of one formula's declarations.
type UpgradeRequest struct {
	Formula string
	Refresh bool // Bypass the cache lookup
}

// Result is a merged dependency listing.
type Result struct {
	Formulae []string                 `json:"formulae"`
	Deps     []*dependency.Dependency `json:"deps"`
	Stats    Stats                    `json:"-"`
}

// Names returns the dependency names in order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Deps))
	for i, d := range r.Deps {
		names[i] = d.Name()
	}
	return names
}

// Stats describes how a result was produced.
type Stats struct {
	CacheHit bool
	Duration time.Duration
}

// UpgradeSpec is the spec a declared dependency would be upgraded with.
type UpgradeSpec struct {
	Name string          `json:"name"`
	Tags []string        `json:"tags,omitempty"`
	Spec dependency.Spec `json:"spec"`
}

// Tree formats accepted by the CLI and the API.
const (
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidTreeFormats is the set of supported tree output formats.
var ValidTreeFormats = map[string]bool{
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidateTreeFormat checks that format is a supported tree format.
func ValidateTreeFormat(format string) error {
	if !ValidTreeFormats[format] {
		return brewerrors.New(brewerrors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: text, dot, svg, json)", format)
	}
	return nil
}
