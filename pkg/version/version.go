// Package version orders formula versions.
//
// Formula versions are only loosely semantic ("1.2", "1.0.2u", "2023c",
// "HEAD-1a2b3c"). Versions that github.com/Masterminds/semver/v3 can coerce are
// compared semantically; anything else falls back to a token comparison that
// splits the string into numeric and alphabetic runs.
package version

import (
	"strconv"
	"strings"
	"unicode"

	mm "github.com/Masterminds/semver/v3"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
)

// headPrefix marks versions built from the head lineage.
const headPrefix = "HEAD"

// Version is a parsed formula version. The zero value is the empty
// version and sorts before every non-empty version.
type Version struct {
	raw string
	sv  *mm.Version
}

// Parse parses raw. It only fails on empty input; unparseable semantic
// versions are kept for token comparison.
func Parse(raw string) (Version, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Version{}, brewerrors.New(brewerrors.ErrCodeInvalidInput, "version cannot be empty")
	}
	v := Version{raw: raw}
	if sv, err := mm.NewVersion(raw); err == nil {
		v.sv = sv
	}
	return v, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as written.
func (v Version) String() string { return v.raw }

// IsZero reports whether v is the empty version.
func (v Version) IsZero() bool { return v.raw == "" }

// IsHead reports whether v names a head build ("HEAD" or "HEAD-<rev>").
func (v Version) IsHead() bool {
	return v.raw == headPrefix || strings.HasPrefix(v.raw, headPrefix+"-")
}

// Compare returns -1, 0 or 1 when v is less than, equal to, or greater than o.
// Head versions sort after every non-head version.
func (v Version) Compare(o Version) int {
	switch {
	case v.IsZero() && o.IsZero():
		return 0
	case v.IsZero():
		return -1
	case o.IsZero():
		return 1
	}
	switch vh, oh := v.IsHead(), o.IsHead(); {
	case vh && oh:
		return strings.Compare(v.raw, o.raw)
	case vh:
		return 1
	case oh:
		return -1
	}
	if v.sv != nil && o.sv != nil {
		return v.sv.Compare(o.sv)
	}
	return compareTokens(tokenize(v.raw), tokenize(o.raw))
}

// GreaterThan reports whether v > o.
func (v Version) GreaterThan(o Version) bool { return v.Compare(o) > 0 }

// LessThan reports whether v < o.
func (v Version) LessThan(o Version) bool { return v.Compare(o) < 0 }

// Equal reports whether v and o compare equal.
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) { return []byte(v.raw), nil }

// UnmarshalText implements encoding.TextUnmarshaler. Empty input yields the
// zero version.
func (v *Version) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*v = Version{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

type token struct {
	num   int64
	alpha string
	isNum bool
}

func tokenize(s string) []token {
	var (
		out []token
		cur strings.Builder
		num bool
	)
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		if num {
			n, _ := strconv.ParseInt(cur.String(), 10, 64)
			out = append(out, token{num: n, isNum: true})
		} else {
			out = append(out, token{alpha: strings.ToLower(cur.String())})
		}
		cur.Reset()
	}
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if !num {
				flush()
			}
			num = true
			cur.WriteRune(r)
		case unicode.IsLetter(r):
			if num {
				flush()
			}
			num = false
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return out
}

// compareTokens orders numeric runs numerically and alphabetic runs
// lexically. At the same position a numeric run sorts after an alphabetic
// one, and a trailing alphabetic run marks a pre-release: "1.0rc1" < "1.0".
func compareTokens(a, b []token) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		switch {
		case i >= len(a):
			if !b[i].isNum {
				return 1
			}
			return -1
		case i >= len(b):
			if !a[i].isNum {
				return -1
			}
			return 1
		}
		x, y := a[i], b[i]
		switch {
		case x.isNum && y.isNum:
			if x.num != y.num {
				if x.num < y.num {
					return -1
				}
				return 1
			}
		case x.isNum:
			return 1
		case y.isNum:
			return -1
		default:
			if c := strings.Compare(x.alpha, y.alpha); c != 0 {
				return c
			}
		}
	}
	return 0
}
