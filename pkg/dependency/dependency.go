package dependency

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
)

// Kind distinguishes the two dependency variants.
type Kind int

const (
	// KindCore is a dependency on a formula resolved against the core tap.
	KindCore Kind = iota
	// KindTap is a dependency on a tap-qualified formula ("user/repo/name").
	KindTap
)

// Env is the build environment a dependency may adjust when activated.
type Env interface {
	Getenv(key string) string
	Setenv(key, value string)
}

// EnvFunc mutates the build environment. It is never part of identity.
type EnvFunc func(env Env)

// MapEnv is an [Env] backed by a map.
type MapEnv map[string]string

// Getenv implements Env.
func (m MapEnv) Getenv(key string) string { return m[key] }

// Setenv implements Env.
func (m MapEnv) Setenv(key, value string) { m[key] = value }

// Dependable is the capability set shared by both dependency variants.
// Formula build options consult it to decide whether a dependency was
// requested.
type Dependable interface {
	Name() string
	Tags() Tags
	OptionNames() []string
	Tap() tap.Tap
	IsRequired() bool
	IsRecommended() bool
	IsOptional() bool
	IsBuild() bool
	IsRun() bool
}

// Dependency is a declared dependency on another formula.
//
// Identity is (name, tags): option names, the environment effect and the
// resolved spec are excluded from [Dependency.Equal] and [Dependency.Key].
// Name and tags never change after construction.
type Dependency struct {
	name        string
	tags        Tags
	optionNames []string
	env         EnvFunc
	envVars     map[string]string
	spec        Spec
	kind        Kind
	tap         tap.Tap
}

var _ Dependable = (*Dependency)(nil)

// Option customizes a Dependency at construction.
type Option func(*Dependency)

// WithOptionNames overrides the option names used to cross-reference the
// dependent's build options.
func WithOptionNames(names ...string) Option {
	return func(d *Dependency) {
		d.optionNames = uniqueStrings(names)
	}
}

// WithEnv attaches a build environment effect.
func WithEnv(fn EnvFunc) Option {
	return func(d *Dependency) {
		d.env = fn
		d.envVars = nil
	}
}

// WithEnvVars attaches an effect that sets each variable of vars, in key
// order. Unlike [WithEnv] the effect can be recovered with
// [Dependency.EnvVars].
func WithEnvVars(vars map[string]string) Option {
	return func(d *Dependency) {
		if len(vars) == 0 {
			d.env, d.envVars = nil, nil
			return
		}
		d.envVars = maps.Clone(vars)
		keys := slices.Sorted(maps.Keys(d.envVars))
		set := d.envVars
		d.env = func(env Env) {
			for _, k := range keys {
				env.Setenv(k, set[k])
			}
		}
	}
}

// New creates a core dependency. Option names default to [name].
//
// It fails with INVALID_DEPENDENCY when name is empty or when tags carry both
// recommended and optional.
func New(name string, tags Tags, opts ...Option) (*Dependency, error) {
	d, err := build(name, tags, KindCore, tap.Core, opts)
	if err != nil {
		return nil, err
	}
	if d.optionNames == nil {
		d.optionNames = []string{name}
	}
	return d, nil
}

// NewTap creates a tap-scoped dependency from a qualified "user/repo/name".
// The tap is everything before the final slash and option names default to
// the trailing component.
func NewTap(name string, tags Tags, opts ...Option) (*Dependency, error) {
	t, err := tap.FromQualified(name)
	if err != nil {
		return nil, brewerrors.Wrap(brewerrors.ErrCodeInvalidDependency, err, "tap dependency %q", name)
	}
	d, err := build(name, tags, KindTap, t, opts)
	if err != nil {
		return nil, err
	}
	if d.optionNames == nil {
		d.optionNames = []string{tap.BaseName(name)}
	}
	return d, nil
}

// Declare creates a tap-scoped dependency when name is qualified and a core
// dependency otherwise.
func Declare(name string, tags Tags, opts ...Option) (*Dependency, error) {
	if _, _, ok := tap.SplitQualified(name); ok {
		return NewTap(name, tags, opts...)
	}
	return New(name, tags, opts...)
}

// MustNew is like [Declare] but panics on error. Intended for tests and
// static declarations.
func MustNew(name string, tags ...Tag) *Dependency {
	d, err := Declare(name, Tags(tags))
	if err != nil {
		panic(err)
	}
	return d
}

func build(name string, tags Tags, kind Kind, t tap.Tap, opts []Option) (*Dependency, error) {
	if strings.TrimSpace(name) == "" {
		return nil, brewerrors.New(brewerrors.ErrCodeInvalidDependency, "dependency name cannot be empty")
	}
	normalized := Tags{}
	for _, tag := range tags {
		if tag != "" {
			normalized = normalized.add(tag)
		}
	}
	if normalized.Recommended() && normalized.Optional() {
		return nil, brewerrors.New(brewerrors.ErrCodeInvalidDependency,
			"dependency %q cannot be both recommended and optional", name)
	}
	d := &Dependency{name: name, tags: normalized, kind: kind, tap: t}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Name returns the dependency name as declared.
func (d *Dependency) Name() string { return d.name }

// Tags returns a copy of the dependency's tags.
func (d *Dependency) Tags() Tags { return slices.Clone(d.tags) }

// OptionNames returns a copy of the option names.
func (d *Dependency) OptionNames() []string { return slices.Clone(d.optionNames) }

// OptionTags returns the option-association tags.
func (d *Dependency) OptionTags() Tags { return d.tags.OptionTags() }

// Kind returns the dependency variant.
func (d *Dependency) Kind() Kind { return d.kind }

// Tap returns the tap the dependency resolves against: the core tap for core
// dependencies, the qualifying tap for tap-scoped ones.
func (d *Dependency) Tap() tap.Tap { return d.tap }

// Spec returns the resolved lineage (stable unless set).
func (d *Dependency) Spec() Spec { return d.spec }

// UseSpec sets the resolved lineage.
func (d *Dependency) UseSpec(s Spec) { d.spec = s }

// UseClosestUpgradeSpec resolves and stores the lineage to upgrade to.
func (d *Dependency) UseClosestUpgradeSpec(cellar Cellar) {
	d.spec = ResolveUpgradeSpec(d, cellar)
}

// IsRequired reports whether the dependency is neither recommended nor optional.
func (d *Dependency) IsRequired() bool { return d.tags.Required() }

// IsRecommended reports whether the dependency is recommended.
func (d *Dependency) IsRecommended() bool { return d.tags.Recommended() }

// IsOptional reports whether the dependency is optional.
func (d *Dependency) IsOptional() bool { return d.tags.Optional() }

// IsBuild reports whether the dependency is needed at build time only.
func (d *Dependency) IsBuild() bool { return d.tags.BuildOnly() }

// IsRun reports whether the dependency is needed at run time only.
func (d *Dependency) IsRun() bool { return d.tags.RunOnly() }

// ModifyBuildEnvironment runs the environment effect, if any.
func (d *Dependency) ModifyBuildEnvironment(env Env) {
	if d.env != nil {
		d.env(env)
	}
}

// EnvVars returns the variables the environment effect sets. ok is false
// when the effect was attached with [WithEnv] and cannot be described that
// way; a dependency without an effect returns nil and true.
func (d *Dependency) EnvVars() (vars map[string]string, ok bool) {
	switch {
	case d.env == nil:
		return nil, true
	case d.envVars != nil:
		return maps.Clone(d.envVars), true
	}
	return nil, false
}

// Equal reports whether d and o have the same name and the same tags.
func (d *Dependency) Equal(o *Dependency) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.name == o.name && d.tags.Equal(o.tags)
}

// Key returns a string that is equal for two dependencies exactly when
// [Dependency.Equal] holds, for use as a map key.
func (d *Dependency) Key() string {
	return d.name + "\x00" + strings.Join(d.tags.sorted().Strings(), "\x00")
}

// String returns the name.
func (d *Dependency) String() string { return d.name }

// GoString renders the dependency for debugging.
func (d *Dependency) GoString() string {
	class := "Dependency"
	if d.kind == KindTap {
		class = "TapDependency"
	}
	return fmt.Sprintf("#<%s: %q %v>", class, d.name, d.tags.Strings())
}

// canonicalName is the name used for self-reference and cycle checks. Core
// formulae are known by their bare name; a qualified reference to the core
// tap is folded back to it.
func (d *Dependency) canonicalName() string {
	if d.kind == KindTap && d.tap.IsCore() {
		return tap.BaseName(d.name)
	}
	return d.name
}

// clone returns a copy safe to mutate (spec) without touching d.
func (d *Dependency) clone() *Dependency {
	c := *d
	c.tags = slices.Clone(d.tags)
	c.optionNames = slices.Clone(d.optionNames)
	return &c
}

type wireDependency struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// MarshalJSON encodes only name and tags, matching the equality contract.
func (d *Dependency) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireDependency{Name: d.name, Tags: d.tags.Strings()})
}

// UnmarshalJSON rebuilds the dependency through [Declare], so qualified names
// decode as tap-scoped dependencies.
func (d *Dependency) UnmarshalJSON(b []byte) error {
	var w wireDependency
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	decoded, err := Declare(w.Name, NewTags(w.Tags...))
	if err != nil {
		return err
	}
	*d = *decoded
	return nil
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
