package formula

import (
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
)

// Definition is the decoded form of a formula file:
//
//	name = "wget"
//	desc = "Internet file retriever"
//	version_scheme = 1
//
//	[stable]
//	version = "1.24.5"
//
//	[devel]
//	version = "1.25.0-rc1"
//	[[devel.depends_on]]
//	name = "gettext"
//
//	[[depends_on]]
//	name = "pkg-config"
//	tags = ["build"]
//
//	[[depends_on]]
//	name = "libidn2"
//	tags = ["optional"]
//
//	[[option]]
//	name = "with-debug"
//	description = "Build with debug symbols"
type Definition struct {
	Name          string      `toml:"name"`
	Desc          string      `toml:"desc"`
	Homepage      string      `toml:"homepage"`
	VersionScheme int         `toml:"version_scheme"`
	Stable        *SpecBlock  `toml:"stable"`
	Devel         *SpecBlock  `toml:"devel"`
	Head          *SpecBlock  `toml:"head"`
	DependsOn     []DependsOn `toml:"depends_on"`
	Options       []Option    `toml:"option"`
}

// SpecBlock defines one lineage.
type SpecBlock struct {
	Version   string      `toml:"version"`
	DependsOn []DependsOn `toml:"depends_on"`
}

// DependsOn is one dependency declaration.
type DependsOn struct {
	Name        string            `toml:"name"`
	Tags        []string          `toml:"tags"`
	OptionNames []string          `toml:"option_names"`
	Env         map[string]string `toml:"env"`
}

// Option is a build option the formula accepts.
type Option struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Decode parses a definition. Unknown keys are rejected.
func Decode(data []byte) (*Definition, error) {
	var def Definition
	md, err := toml.Decode(string(data), &def)
	if err != nil {
		return nil, brewerrors.Wrap(brewerrors.ErrCodeInvalidFormula, err, "decode definition")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, brewerrors.New(brewerrors.ErrCodeInvalidFormula, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &def, nil
}

// Block returns the block of spec, or nil when the definition lacks it.
func (d *Definition) Block(spec dependency.Spec) *SpecBlock {
	switch spec {
	case dependency.SpecDevel:
		return d.Devel
	case dependency.SpecHead:
		return d.Head
	}
	return d.Stable
}

// Specs returns the lineages the definition provides.
func (d *Definition) Specs() []dependency.Spec {
	var out []dependency.Spec
	for _, s := range dependency.Specs {
		if d.Block(s) != nil {
			out = append(out, s)
		}
	}
	return out
}

// declare builds the dependency declarations of spec: common ones first,
// then the spec's own.
func (d *Definition) declare(spec dependency.Spec) ([]*dependency.Dependency, error) {
	decls := slices.Clone(d.DependsOn)
	if b := d.Block(spec); b != nil {
		decls = append(decls, b.DependsOn...)
	}

	out := make([]*dependency.Dependency, 0, len(decls))
	for _, decl := range decls {
		var opts []dependency.Option
		if len(decl.OptionNames) > 0 {
			opts = append(opts, dependency.WithOptionNames(decl.OptionNames...))
		}
		if len(decl.Env) > 0 {
			opts = append(opts, dependency.WithEnvVars(decl.Env))
		}
		dep, err := dependency.Declare(decl.Name, dependency.NewTags(decl.Tags...), opts...)
		if err != nil {
			return nil, brewerrors.Wrap(brewerrors.ErrCodeInvalidFormula, err, "%s: depends_on %q", d.Name, decl.Name)
		}
		out = append(out, dep)
	}
	return out, nil
}

