package formula

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
)

// Extension is the file extension of definition files.
const Extension = ".toml"

// Formulary loads definitions from tap checkouts under a taps directory:
//
//	<taps>/<user>/homebrew-<repo>/Formula/<name>.toml
//
// Decoded definitions are memoized per file and reloaded when the file
// changes. A Formulary is safe for concurrent use.
type Formulary struct {
	root string

	mu   sync.Mutex
	defs map[string]cachedDefinition
}

type cachedDefinition struct {
	modTime time.Time
	size    int64
	def     *Definition
}

var _ dependency.Loader = (*Formulary)(nil)

// NewFormulary creates a Formulary rooted at the taps directory.
func NewFormulary(tapsDir string) *Formulary {
	return &Formulary{root: tapsDir, defs: make(map[string]cachedDefinition)}
}

// Root returns the taps directory.
func (f *Formulary) Root() string { return f.root }

// Path returns the definition file of name in t.
func (f *Formulary) Path(t tap.Tap, name string) string {
	return filepath.Join(f.root, filepath.FromSlash(t.RepoDir()), "Formula", name+Extension)
}

// Taps lists the taps present on disk, sorted by name.
func (f *Formulary) Taps() ([]tap.Tap, error) {
	users, err := os.ReadDir(f.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read taps: %w", err)
	}

	var out []tap.Tap
	for _, u := range users {
		if !u.IsDir() {
			continue
		}
		repos, err := os.ReadDir(filepath.Join(f.root, u.Name()))
		if err != nil {
			return nil, fmt.Errorf("read taps: %w", err)
		}
		for _, r := range repos {
			if !r.IsDir() || !strings.HasPrefix(r.Name(), "homebrew-") {
				continue
			}
			t, err := tap.New(u.Name(), r.Name())
			if err != nil {
				continue
			}
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b tap.Tap) int { return strings.Compare(a.Name(), b.Name()) })
	return out, nil
}

// Load implements dependency.Loader.
func (f *Formulary) Load(name string, spec dependency.Spec, options []string) (dependency.Formula, error) {
	return f.LoadFormula(name, spec, options)
}

// LoadFormula resolves name and loads its definition from disk.
func (f *Formulary) LoadFormula(name string, spec dependency.Spec, options []string) (*Formula, error) {
	t, base, err := resolve(name, f.providers)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(f.root, filepath.FromSlash(t.RepoDir()))); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, brewerrors.Wrap(brewerrors.ErrCodeFormulaUnavailable,
				brewerrors.New(brewerrors.ErrCodeTapUnavailable, "tap %s is not installed", t),
				"no available formula with the name %q", name)
		}
		return nil, fmt.Errorf("stat tap %s: %w", t, err)
	}

	path := f.Path(t, base)
	def, err := f.definition(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, brewerrors.FormulaUnavailable(name)
	}
	if err != nil {
		return nil, err
	}
	if def.Name != base {
		return nil, brewerrors.New(brewerrors.ErrCodeInvalidFormula, "%s: defines %q, want %q", path, def.Name, base)
	}

	loaded, err := New(def, t, spec, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	loaded.path = path
	return loaded, nil
}

// definition decodes path, reusing the previous decode while the file is
// unchanged. A definition without a name takes it from the file name.
func (f *Formulary) definition(path string) (*Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	c, ok := f.defs[path]
	f.mu.Unlock()
	if ok && c.modTime.Equal(info.ModTime()) && c.size == info.Size() {
		return c.def, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), Extension)
	}

	f.mu.Lock()
	f.defs[path] = cachedDefinition{modTime: info.ModTime(), size: info.Size(), def: def}
	f.mu.Unlock()
	return def, nil
}

// Names returns the full names of every definition on disk, sorted.
func (f *Formulary) Names() ([]string, error) {
	taps, err := f.Taps()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range taps {
		files, err := filepath.Glob(filepath.Join(f.root, filepath.FromSlash(t.RepoDir()), "Formula", "*"+Extension))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			name := strings.TrimSuffix(filepath.Base(file), Extension)
			if !t.IsCore() {
				name = t.Qualify(name)
			}
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Fingerprint summarizes every definition file (path, size, modification
// time). It changes whenever a definition is added, removed or edited.
func (f *Formulary) Fingerprint() (string, error) {
	taps, err := f.Taps()
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, t := range taps {
		dir := filepath.Join(f.root, filepath.FromSlash(t.RepoDir()), "Formula")
		files, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
		if err != nil {
			return "", err
		}
		slices.Sort(files)
		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil {
				return "", fmt.Errorf("fingerprint: %w", err)
			}
			fmt.Fprintf(h, "%s\x00%d\x00%d\n", file, info.Size(), info.ModTime().UnixNano())
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (f *Formulary) providers(base string) ([]tap.Tap, error) {
	taps, err := f.Taps()
	if err != nil {
		return nil, err
	}
	var out []tap.Tap
	for _, t := range taps {
		if _, err := os.Stat(f.Path(t, base)); err == nil {
			out = append(out, t)
		}
	}
	return out, nil
}
