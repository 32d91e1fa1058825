package dependency

import (
	"fmt"
	"strings"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
)

// Spec is a version lineage a formula can be built from.
// The zero value is [SpecStable].
type Spec int

const (
	SpecStable Spec = iota // Released versions (default)
	SpecDevel              // Development pre-releases
	SpecHead               // Tip of the upstream repository
)

var specNames = [...]string{
	SpecStable: "stable",
	SpecDevel:  "devel",
	SpecHead:   "head",
}

// Specs lists every lineage in canonical order.
var Specs = []Spec{SpecStable, SpecDevel, SpecHead}

// String returns "stable", "devel" or "head".
func (s Spec) String() string {
	if s < 0 || int(s) >= len(specNames) {
		return fmt.Sprintf("Spec(%d)", int(s))
	}
	return specNames[s]
}

// ParseSpec parses a lineage name. The empty string parses as [SpecStable].
func ParseSpec(name string) (Spec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return SpecStable, nil
	}
	for i, n := range specNames {
		if n == name {
			return Spec(i), nil
		}
	}
	return SpecStable, brewerrors.New(brewerrors.ErrCodeInvalidSpec, "unknown spec %q (want stable, devel or head)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Spec) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Spec) UnmarshalText(b []byte) error {
	parsed, err := ParseSpec(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
