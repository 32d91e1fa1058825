// Package pkg provides the core libraries for brewdeps.
//
// # Overview
//
// brewdeps computes the effective dependency set of Homebrew formulae: it
// walks the dependency declarations of tap definition files, prunes them the
// way "brew deps" does, resolves which lineage (stable or devel) each
// dependency is upgraded from given the installed cellar, and reconciles
// repeated mentions of the same dependency into one entry. The pkg directory
// is organized into four main areas:
//
//  1. [dependency] - The dependency model and the expansion engine
//  2. [formula], [tap], [cellar], [tab], [version] - Where definitions and installs come from
//  3. [pipeline], [cache] - Orchestration and result caching
//  4. [dag], [render] - Dependency trees and their renderings
//
// # Architecture
//
// The typical data flow through brewdeps:
//
//	Tap definition files + Cellar
//	         ↓
//	    [formula] / [cellar] packages (load definitions and installs)
//	         ↓
//	    [dependency] package (expand, prune, resolve specs, merge)
//	         ↓
//	    [pipeline] package (parallel roots, intersection/union, caching)
//	         ↓
//	    Name list, [dag] tree, DOT/SVG/JSON/text output
//
// # Quick Start
//
// Expand the dependencies of a formula:
//
//	import (
//	    "context"
//	    "github.com/vladshablinsky/brew/pkg/cellar"
//	    "github.com/vladshablinsky/brew/pkg/dependency"
//	    "github.com/vladshablinsky/brew/pkg/formula"
//	)
//
//	loader := formula.NewFormulary("/usr/local/Homebrew/Library/Taps")
//	c := cellar.NewDir("/usr/local/Cellar", loader)
//
//	wget, _ := loader.Load("wget", dependency.SpecStable, nil)
//	exp := dependency.NewExpander(loader, c, dependency.Options{
//	    Policy: dependency.Filter{IncludeBuild: true}.Policy(),
//	})
//	deps, _ := exp.Expand(context.Background(), wget)
//
// # Main Packages
//
// ## Dependency Model
//
// [dependency] - Dependency entities identified by name and tags, the
// expansion engine with its pruning actions and cycle guard, the spec
// resolver and the merge of repeated mentions.
//
// ## Sources
//
// [formula] - TOML definition files grouped in taps, the Formulary that
// resolves bare and qualified names, and an in-memory Registry for tests.
//
// [tap] - Tap names and the qualified "user/repo/name" form.
//
// [cellar] - Installed kegs and their receipts, read from a cellar
// directory or kept in memory.
//
// [tab] - INSTALL_RECEIPT.json files.
//
// [version] - Version parsing and ordering.
//
// ## Orchestration
//
// [pipeline] - The Runner used by the CLI and the HTTP API: expands several
// roots concurrently, combines them and caches the results.
//
// [cache] - Cache backends (null, memory, file, Redis) and cache keys that
// include the fingerprints of the taps and the cellar.
//
// ## Trees
//
// [dag] - Directed graph of formulae. Cycles are allowed and reported.
//
// [render] - DOT, SVG, JSON and text renderings of a tree.
//
// ## Support
//
// [errors] - Structured error codes. [observability] - Expansion, cache and
// HTTP hooks. [buildinfo] - Version information injected at build time.
package pkg
