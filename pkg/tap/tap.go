// Package tap identifies the source repositories ("taps") that formula
// definitions come from.
//
// A tap is named user/repo. On disk its repository directory carries a
// "homebrew-" prefix on the repo part (homebrew/core lives in
// homebrew/homebrew-core); [Parse] accepts both spellings and always returns
// the short form.
package tap

import (
	"fmt"
	"strings"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
)

// repoPrefix is stripped from repository names when parsing.
const repoPrefix = "homebrew-"

// Tap is a named formula source repository.
// The zero value is not a valid tap; use [Parse], [New] or [Core].
type Tap struct {
	User string // Owner, lowercased (e.g., "homebrew")
	Repo string // Repository without the "homebrew-" prefix (e.g., "core")
}

// Core is the default tap that bare formula names resolve against.
var Core = Tap{User: "homebrew", Repo: "core"}

// New builds a tap from its two components, normalizing case and prefix.
func New(user, repo string) (Tap, error) {
	user = strings.ToLower(strings.TrimSpace(user))
	repo = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(repo)), repoPrefix)
	if user == "" || repo == "" {
		return Tap{}, brewerrors.New(brewerrors.ErrCodeInvalidTap, "invalid tap %q", user+"/"+repo)
	}
	if err := brewerrors.ValidateTapName(user + "/" + repo); err != nil {
		return Tap{}, err
	}
	return Tap{User: user, Repo: repo}, nil
}

// Parse parses "user/repo" (or "user/homebrew-repo").
func Parse(name string) (Tap, error) {
	user, repo, ok := strings.Cut(name, "/")
	if !ok || strings.Contains(repo, "/") {
		return Tap{}, brewerrors.New(brewerrors.ErrCodeInvalidTap, "invalid tap %q: want user/repo", name)
	}
	return New(user, repo)
}

// MustParse is like [Parse] but panics on error. Intended for tests and
// package-level variables.
func MustParse(name string) Tap {
	t, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return t
}

// SplitQualified splits a tap-qualified formula name "user/repo/formula" at
// its last slash. ok is false when name is not qualified.
func SplitQualified(name string) (tapName, formula string, ok bool) {
	i := strings.LastIndex(name, "/")
	if i < 0 {
		return "", name, false
	}
	return name[:i], name[i+1:], true
}

// FromQualified derives the tap of a qualified formula name.
func FromQualified(name string) (Tap, error) {
	tapName, _, ok := SplitQualified(name)
	if !ok {
		return Tap{}, brewerrors.New(brewerrors.ErrCodeInvalidTap, "formula name %q is not tap-qualified", name)
	}
	return Parse(tapName)
}

// BaseName returns the trailing formula component of a possibly-qualified name.
func BaseName(name string) string {
	_, base, _ := SplitQualified(name)
	return base
}

// Name returns "user/repo".
func (t Tap) Name() string { return t.User + "/" + t.Repo }

// String implements fmt.Stringer.
func (t Tap) String() string { return t.Name() }

// IsZero reports whether t is the zero value.
func (t Tap) IsZero() bool { return t.User == "" && t.Repo == "" }

// IsCore reports whether t is the core tap.
func (t Tap) IsCore() bool { return t == Core }

// RepoDir returns the on-disk repository directory name relative to the taps
// root, e.g. "homebrew/homebrew-core".
func (t Tap) RepoDir() string { return t.User + "/" + repoPrefix + t.Repo }

// Qualify returns the fully-qualified name of formula in this tap.
func (t Tap) Qualify(formula string) string {
	return fmt.Sprintf("%s/%s", t.Name(), formula)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tap) MarshalText() ([]byte, error) {
	if t.IsZero() {
		return []byte{}, nil
	}
	return []byte(t.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input yields the
// zero tap.
func (t *Tap) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = Tap{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
