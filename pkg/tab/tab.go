// Package tab reads and writes installation receipts.
//
// A receipt ("tab") is the INSTALL_RECEIPT.json file stored in an installed
// keg. It records where the artifact was built from, which lineage and
// version-numbering scheme were in effect, and which build options were used.
// [Tab.Receipt] converts it to the view the dependency engine consumes.
package tab

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vladshablinsky/brew/pkg/dependency"
	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
	"github.com/vladshablinsky/brew/pkg/tap"
	"github.com/vladshablinsky/brew/pkg/version"
)

// FileName is the receipt file name inside a keg.
const FileName = "INSTALL_RECEIPT.json"

// Tab is the decoded receipt.
type Tab struct {
	UsedOptions      []string  `json:"used_options"`
	UnusedOptions    []string  `json:"unused_options,omitempty"`
	BuiltAsBottle    bool      `json:"built_as_bottle"`
	PouredFromBottle bool      `json:"poured_from_bottle"`
	Time             int64     `json:"time,omitempty"`
	HomebrewVersion  string    `json:"homebrew_version,omitempty"`
	Source           Source    `json:"source"`
	Versions         *Versions `json:"versions,omitempty"` // Older receipts keep versions at the top level
}

// Source describes where the artifact was built from.
type Source struct {
	Tap      string    `json:"tap,omitempty"`
	Spec     string    `json:"spec,omitempty"`
	Path     string    `json:"path,omitempty"`
	Versions *Versions `json:"versions,omitempty"`
}

// Versions holds the per-lineage versions recorded at install time.
type Versions struct {
	Stable        string `json:"stable,omitempty"`
	Devel         string `json:"devel,omitempty"`
	Head          string `json:"head,omitempty"`
	VersionScheme int    `json:"version_scheme"`
}

// Decode reads a receipt from r.
func Decode(r io.Reader) (*Tab, error) {
	var t Tab
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, brewerrors.Wrap(brewerrors.ErrCodeInvalidReceipt, err, "decode receipt")
	}
	return &t, nil
}

// Read decodes the receipt at path.
func Read(path string) (*Tab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ForKeg reads the receipt of the keg at dir. It returns nil without error
// when the keg has no receipt.
func ForKeg(dir string) (*Tab, error) {
	t, err := Read(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return t, err
}

// Write encodes t to w.
func (t *Tab) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes t as the receipt of the keg at dir.
func (t *Tab) WriteFile(dir string) error {
	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return t.Write(f)
}

// RecordedVersions returns the source versions, falling back to the
// top-level block written by older installs.
func (t *Tab) RecordedVersions() Versions {
	switch {
	case t.Source.Versions != nil:
		return *t.Source.Versions
	case t.Versions != nil:
		return *t.Versions
	}
	return Versions{}
}

// Receipt converts t to the engine's receipt view. An empty source tap maps
// to the zero tap.
func (t *Tab) Receipt() (*dependency.Receipt, error) {
	r := &dependency.Receipt{UsedOptions: append([]string(nil), t.UsedOptions...)}

	if t.Source.Tap != "" {
		tp, err := tap.Parse(t.Source.Tap)
		if err != nil {
			return nil, brewerrors.Wrap(brewerrors.ErrCodeInvalidReceipt, err, "receipt tap %q", t.Source.Tap)
		}
		r.Tap = tp
	}

	spec, err := dependency.ParseSpec(t.Source.Spec)
	if err != nil {
		return nil, brewerrors.Wrap(brewerrors.ErrCodeInvalidReceipt, err, "receipt spec")
	}
	r.Spec = spec

	vs := t.RecordedVersions()
	r.VersionScheme = vs.VersionScheme
	r.Versions = make(map[dependency.Spec]version.Version, 3)
	for s, raw := range map[dependency.Spec]string{
		dependency.SpecStable: vs.Stable,
		dependency.SpecDevel:  vs.Devel,
		dependency.SpecHead:   vs.Head,
	} {
		if raw == "" {
			continue
		}
		v, err := version.Parse(raw)
		if err != nil {
			return nil, brewerrors.Wrap(brewerrors.ErrCodeInvalidReceipt, err, "receipt %s version", s)
		}
		r.Versions[s] = v
	}
	return r, nil
}
