// Package cellar looks up installed artifacts.
//
// On disk every formula has a rack, <cellar>/<name>, holding one keg
// directory per installed version. The newest keg is the installation; its
// INSTALL_RECEIPT.json supplies the recorded tap, lineage and versions.
// [Dir] reads that layout and [Memory] serves installations built in code.
// Both implement [dependency.Cellar].
package cellar

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

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tab"
	"github.com/vladshablinsky/brew/pkg/version"
)

// Dir is a cellar directory.
type Dir struct {
	root   string
	loader dependency.Loader
}

var _ dependency.Cellar = (*Dir)(nil)

// NewDir creates a cellar rooted at root. loader provides the definitions
// installed kegs resolve to.
func NewDir(root string, loader dependency.Loader) *Dir {
	return &Dir{root: root, loader: loader}
}

// Root returns the cellar directory.
func (c *Dir) Root() string { return c.root }

// Rack returns the rack directory of name.
func (c *Dir) Rack(name string) string { return filepath.Join(c.root, name) }

// Installation implements dependency.Cellar. It returns nil when the rack is
// missing or holds no keg.
//
// The keg's definition is loaded from the receipt's tap at the receipt's
// spec. When the definition can no longer be found the installation is
// returned without one.
func (c *Dir) Installation(name string) (*dependency.Installation, error) {
	if err := brewerrors.ValidateFormulaName(name); err != nil {
		return nil, err
	}
	versions, err := c.kegs(name)
	if err != nil || len(versions) == 0 {
		return nil, err
	}

	newest := versions[len(versions)-1]
	inst := &dependency.Installation{Name: name, Version: newest, Versions: versions}

	t, err := tab.ForKeg(filepath.Join(c.Rack(name), newest.String()))
	if err != nil {
		return nil, err
	}
	if t != nil {
		if inst.Receipt, err = t.Receipt(); err != nil {
			return nil, fmt.Errorf("%s %s: %w", name, newest, err)
		}
	}

	if c.loader == nil {
		return inst, nil
	}
	f, err := c.loader.Load(loadName(name, inst.Receipt), loadSpec(inst.Receipt), usedOptions(inst.Receipt))
	switch {
	case brewerrors.Is(err, brewerrors.ErrCodeFormulaUnavailable):
	case err != nil:
		return nil, fmt.Errorf("load installed %s: %w", name, err)
	default:
		inst.Formula = f
	}
	return inst, nil
}

// kegs returns the installed versions of name, oldest first.
func (c *Dir) kegs(name string) ([]version.Version, error) {
	entries, err := os.ReadDir(c.Rack(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rack %s: %w", name, err)
	}

	var out []version.Version
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		v, err := version.Parse(e.Name())
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	slices.SortFunc(out, version.Version.Compare)
	return out, nil
}

// Names lists the racks holding at least one keg, sorted.
func (c *Dir) Names() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cellar: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		kegs, err := c.kegs(e.Name())
		if err != nil {
			return nil, err
		}
		if len(kegs) > 0 {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// Fingerprint summarizes every keg and receipt (path, size, modification
// time). It changes whenever something is installed, removed or rewritten.
func (c *Dir) Fingerprint() (string, error) {
	h := sha256.New()
	racks, err := c.Names()
	if err != nil {
		return "", err
	}
	for _, rack := range racks {
		kegs, err := c.kegs(rack)
		if err != nil {
			return "", err
		}
		for _, v := range kegs {
			keg := filepath.Join(c.Rack(rack), v.String())
			fmt.Fprintf(h, "%s\n", keg)
			info, err := os.Stat(filepath.Join(keg, tab.FileName))
			switch {
			case errors.Is(err, fs.ErrNotExist):
			case err != nil:
				return "", fmt.Errorf("fingerprint: %w", err)
			default:
				fmt.Fprintf(h, "%d\x00%d\n", info.Size(), info.ModTime().UnixNano())
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func loadName(name string, r *dependency.Receipt) string {
	if r == nil || r.Tap.IsZero() || r.Tap.IsCore() {
		return name
	}
	return r.Tap.Qualify(name)
}

func loadSpec(r *dependency.Receipt) dependency.Spec {
	if r == nil {
		return dependency.SpecStable
	}
	return r.Spec
}

func usedOptions(r *dependency.Receipt) []string {
	if r == nil {
		return nil
	}
	return r.UsedOptions
}
