package formula

import (
	"slices"
	"strings"

	"github.com/vladshablinsky/brew/pkg/dependency"
)

// BuildOptions is the build configuration a formula was loaded with: the
// requested arguments checked against the options the formula defines.
type BuildOptions struct {
	args    []string
	defined []string
}

// NewBuildOptions creates build options. Leading dashes on args are ignored,
// so "--with-x" and "with-x" are the same request.
func NewBuildOptions(args, defined []string) BuildOptions {
	norm := make([]string, 0, len(args))
	for _, a := range args {
		a = strings.TrimLeft(a, "-")
		if a != "" && !slices.Contains(norm, a) {
			norm = append(norm, a)
		}
	}
	return BuildOptions{args: norm, defined: slices.Clone(defined)}
}

// Include reports whether option was requested.
func (b BuildOptions) Include(option string) bool {
	return slices.Contains(b.args, strings.TrimLeft(option, "-"))
}

// Defined reports whether the formula defines option.
func (b BuildOptions) Defined(option string) bool {
	return slices.Contains(b.defined, option)
}

// With reports whether d is enabled by this configuration. For each option
// name n of d: if "with-n" is defined it counts when requested; otherwise if
// "without-n" is defined it counts when not requested.
func (b BuildOptions) With(d dependency.Dependable) bool {
	return slices.ContainsFunc(d.OptionNames(), b.WithName)
}

// WithName is [BuildOptions.With] for a single option name.
func (b BuildOptions) WithName(name string) bool {
	switch {
	case b.Defined("with-" + name):
		return b.Include("with-" + name)
	case b.Defined("without-" + name):
		return !b.Include("without-" + name)
	}
	return false
}

// Without is the negation of [BuildOptions.With].
func (b BuildOptions) Without(d dependency.Dependable) bool { return !b.With(d) }

// Used returns the requested arguments the formula defines.
func (b BuildOptions) Used() []string {
	var out []string
	for _, a := range b.args {
		if b.Defined(a) {
			out = append(out, a)
		}
	}
	return out
}

// Unused returns the defined options that were not requested.
func (b BuildOptions) Unused() []string {
	var out []string
	for _, o := range b.defined {
		if !b.Include(o) {
			out = append(out, o)
		}
	}
	return out
}
