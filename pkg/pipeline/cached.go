package pipeline

import (
	"github.com/vladshablinsky/brew/pkg/dependency"
)

// cachedDep is the cache form of a dependency. Unlike the public JSON form
// it keeps everything expansion resolved, so a hit rebuilds the same entity.
type cachedDep struct {
	Name        string            `json:"name"`
	Tags        []string          `json:"tags"`
	OptionNames []string          `json:"option_names"`
	Spec        dependency.Spec   `json:"spec"`
	Env         map[string]string `json:"env,omitempty"`
}

type cachedResult struct {
	Formulae []string    `json:"formulae"`
	Deps     []cachedDep `json:"deps"`
}

// encodeResult converts res for the cache. ok is false when a dependency
// carries an environment effect that cannot be written down.
func encodeResult(res *Result) (cachedResult, bool) {
	out := cachedResult{Formulae: res.Formulae, Deps: make([]cachedDep, 0, len(res.Deps))}
	for _, d := range res.Deps {
		env, ok := d.EnvVars()
		if !ok {
			return cachedResult{}, false
		}
		out.Deps = append(out.Deps, cachedDep{
			Name:        d.Name(),
			Tags:        d.Tags().Strings(),
			OptionNames: d.OptionNames(),
			Spec:        d.Spec(),
			Env:         env,
		})
	}
	return out, true
}

func (c cachedResult) decode() (*Result, error) {
	res := &Result{Formulae: c.Formulae, Deps: make([]*dependency.Dependency, 0, len(c.Deps))}
	for _, cd := range c.Deps {
		d, err := dependency.Declare(cd.Name, dependency.NewTags(cd.Tags...),
			dependency.WithOptionNames(cd.OptionNames...),
			dependency.WithEnvVars(cd.Env))
		if err != nil {
			return nil, err
		}
		d.UseSpec(cd.Spec)
		res.Deps = append(res.Deps, d)
	}
	return res, nil
}
