package formula

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
)

const wgetTOML = `
name = "wget"
desc = "Internet file retriever"
version_scheme = 1

[stable]
version = "1.24.5"

[devel]
version = "1.25.0-rc1"
[[devel.depends_on]]
name = "gettext"

[[depends_on]]
name = "pkg-config"
tags = ["build"]

[[depends_on]]
name = "libidn2"
tags = ["optional"]

[[depends_on]]
name = "openssl@3"
tags = ["recommended"]
env = { OPENSSL_PREFIX = "/opt/openssl" }

[[option]]
name = "with-debug"
description = "Build with debug symbols"
`

func mustDecode(t *testing.T, s string) *Definition {
	t.Helper()
	def, err := Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return def
}

func depNames(deps []*dependency.Dependency) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.Name()
	}
	return out
}

func TestNewStable(t *testing.T) {
	f, err := New(mustDecode(t, wgetTOML), tap.Core, dependency.SpecStable, nil)
	if err != nil {
		t.Fatal(err)
	}

	if f.FullName() != "wget" || f.VersionScheme() != 1 || f.Desc() != "Internet file retriever" {
		t.Errorf("formula = %s scheme=%d desc=%q", f.FullName(), f.VersionScheme(), f.Desc())
	}
	if diff := cmp.Diff([]string{"pkg-config", "libidn2", "openssl@3"}, depNames(f.Deps())); diff != "" {
		t.Errorf("Deps() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"with-debug", "with-libidn2", "without-openssl@3"}, f.Options()); diff != "" {
		t.Errorf("Options() mismatch (-want +got):\n%s", diff)
	}
	v, ok := f.Version(dependency.SpecStable)
	if !ok || v.String() != "1.24.5" {
		t.Errorf("Version(stable) = %v, %v", v, ok)
	}
	if _, ok := f.Version(dependency.SpecHead); ok {
		t.Error("Version(head) should be undefined")
	}
}

func TestNewDevelAddsSpecDeps(t *testing.T) {
	f, err := New(mustDecode(t, wgetTOML), tap.Core, dependency.SpecDevel, nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.ActiveSpec() != dependency.SpecDevel {
		t.Errorf("ActiveSpec() = %v", f.ActiveSpec())
	}
	if diff := cmp.Diff([]string{"pkg-config", "libidn2", "openssl@3", "gettext"}, depNames(f.Deps())); diff != "" {
		t.Errorf("Deps() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewMissingSpecFallsBackToStable(t *testing.T) {
	f, err := New(mustDecode(t, wgetTOML), tap.Core, dependency.SpecHead, nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.ActiveSpec() != dependency.SpecStable {
		t.Errorf("ActiveSpec() = %v, want stable", f.ActiveSpec())
	}
}

func TestNewHeadOnly(t *testing.T) {
	f, err := New(mustDecode(t, "name = \"edge\"\n[head]\n"), tap.Core, dependency.SpecStable, nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.ActiveSpec() != dependency.SpecHead {
		t.Errorf("ActiveSpec() = %v, want head", f.ActiveSpec())
	}
	if v, ok := f.Version(dependency.SpecHead); !ok || !v.IsHead() {
		t.Errorf("Version(head) = %v, %v", v, ok)
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"no versions", `name = "x"`},
		{"bad name", "name = \"../x\"\n[stable]\nversion = \"1\""},
		{"conflicting tags", "name = \"x\"\n[stable]\nversion = \"1\"\n[[depends_on]]\nname = \"y\"\ntags = [\"recommended\", \"optional\"]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(mustDecode(t, tt.toml), tap.Core, dependency.SpecStable, nil)
			if !brewerrors.Is(err, brewerrors.ErrCodeInvalidFormula) {
				t.Errorf("New() error = %v, want INVALID_FORMULA", err)
			}
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode([]byte("name = \"x\"\nversion = \"1\""))
	if !brewerrors.Is(err, brewerrors.ErrCodeInvalidFormula) {
		t.Errorf("Decode() error = %v, want INVALID_FORMULA", err)
	}
}

func TestDependencyEnvEffect(t *testing.T) {
	f, err := New(mustDecode(t, wgetTOML), tap.Core, dependency.SpecStable, nil)
	if err != nil {
		t.Fatal(err)
	}
	env := dependency.MapEnv{}
	for _, d := range f.Deps() {
		d.ModifyBuildEnvironment(env)
	}
	if env.Getenv("OPENSSL_PREFIX") != "/opt/openssl" {
		t.Errorf("env = %v", env)
	}
}

func TestDefaultExpansionHonorsBuildOptions(t *testing.T) {
	r := NewRegistry()
	r.MustAdd(tap.Core, mustDecode(t, wgetTOML))
	for _, name := range []string{"pkg-config", "libidn2", "openssl@3", "gettext"} {
		r.MustAdd(tap.Core, &Definition{Name: name, Stable: &SpecBlock{Version: "1.0"}})
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"defaults", nil, []string{"pkg-config", "openssl@3"}},
		{"with optional", []string{"--with-libidn2"}, []string{"pkg-config", "libidn2", "openssl@3"}},
		{"without recommended", []string{"without-openssl@3"}, []string{"pkg-config"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wget, err := r.LoadFormula("wget", dependency.SpecStable, tt.args)
			if err != nil {
				t.Fatal(err)
			}
			got, err := dependency.NewExpander(r, nil, dependency.Options{}).Expand(context.Background(), wget)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, depNames(got)); diff != "" {
				t.Errorf("Expand() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
