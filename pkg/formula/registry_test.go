package formula

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
)

func stable(name string) *Definition {
	return &Definition{Name: name, Stable: &SpecBlock{Version: "1.0"}}
}

func TestRegistryResolution(t *testing.T) {
	userRepo := tap.MustParse("user/repo")
	other := tap.MustParse("other/repo")

	r := NewRegistry()
	r.MustAdd(tap.Core, stable("git"))
	r.MustAdd(userRepo, stable("git"))
	r.MustAdd(userRepo, stable("tool"))
	r.MustAdd(userRepo, stable("dup"))
	r.MustAdd(other, stable("dup"))

	tests := []struct {
		name     string
		query    string
		wantFull string
		wantCode brewerrors.Code
	}{
		{"core preferred", "git", "git", ""},
		{"qualified", "user/repo/git", "user/repo/git", ""},
		{"qualified core", "homebrew/core/git", "git", ""},
		{"unique tap", "tool", "user/repo/tool", ""},
		{"ambiguous", "dup", "", brewerrors.ErrCodeAmbiguousFormula},
		{"missing", "ghost", "", brewerrors.ErrCodeFormulaUnavailable},
		{"missing in tap", "user/repo/ghost", "", brewerrors.ErrCodeFormulaUnavailable},
		{"invalid", "../etc", "", brewerrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := r.LoadFormula(tt.query, dependency.SpecStable, nil)
			if tt.wantCode != "" {
				if !brewerrors.Is(err, tt.wantCode) {
					t.Fatalf("LoadFormula() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if f.FullName() != tt.wantFull {
				t.Errorf("FullName() = %q, want %q", f.FullName(), tt.wantFull)
			}
		})
	}
}

func TestRegistryAmbiguousCandidates(t *testing.T) {
	r := NewRegistry()
	r.MustAdd(tap.MustParse("b/repo"), stable("dup"))
	r.MustAdd(tap.MustParse("a/repo"), stable("dup"))

	_, err := r.Load("dup", dependency.SpecStable, nil)
	var amb *brewerrors.AmbiguousFormulaError
	if !errors.As(err, &amb) {
		t.Fatalf("Load() error = %v, want AmbiguousFormulaError", err)
	}
	if diff := cmp.Diff([]string{"a/repo/dup", "b/repo/dup"}, amb.Candidates); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	r.MustAdd(tap.Core, stable("b"))
	r.MustAdd(tap.Core, stable("a"))
	r.MustAdd(tap.MustParse("user/repo"), stable("c"))
	if diff := cmp.Diff([]string{"a", "b", "user/repo/c"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryAddRejectsInvalidName(t *testing.T) {
	if err := NewRegistry().Add(tap.Core, stable("Bad Name")); !brewerrors.Is(err, brewerrors.ErrCodeInvalidFormula) {
		t.Errorf("Add() error = %v, want INVALID_FORMULA", err)
	}
}
