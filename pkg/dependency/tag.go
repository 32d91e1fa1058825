package dependency

import (
	"slices"
)

// Tag is a symbolic marker attached to a dependency declaration.
//
// Necessity and temporality markers are interpreted by the classifier; any
// other tag is an option association (e.g. "with-python" or "universal").
type Tag string

// Recognized markers. Required is implicit (no necessity marker) and
// "build and run" is implicit (no temporality marker).
const (
	TagRecommended Tag = "recommended"
	TagOptional    Tag = "optional"
	TagBuild       Tag = "build"
	TagRun         Tag = "run"
)

// Tags is a set of tags. Order carries no meaning for equality.
type Tags []Tag

// NewTags builds a Tags value from strings, dropping empties and duplicates
// while keeping first-seen order.
func NewTags(tags ...string) Tags {
	out := make(Tags, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		out = out.add(Tag(t))
	}
	return out
}

// Has reports whether tag is present.
func (t Tags) Has(tag Tag) bool { return slices.Contains(t, tag) }

// Required reports whether neither recommended nor optional is present.
func (t Tags) Required() bool { return !t.Has(TagRecommended) && !t.Has(TagOptional) }

// Recommended reports whether the recommended marker is present.
func (t Tags) Recommended() bool { return t.Has(TagRecommended) }

// Optional reports whether the optional marker is present.
func (t Tags) Optional() bool { return t.Has(TagOptional) }

// BuildOnly reports whether the dependency is needed at build time only.
func (t Tags) BuildOnly() bool { return t.Has(TagBuild) && !t.Has(TagRun) }

// RunOnly reports whether the dependency is needed at run time only.
func (t Tags) RunOnly() bool { return t.Has(TagRun) && !t.Has(TagBuild) }

// OptionTags returns the tags that are neither necessity nor temporality markers.
func (t Tags) OptionTags() Tags {
	out := Tags{}
	for _, tag := range t {
		if !tag.isMarker() {
			out = append(out, tag)
		}
	}
	return out
}

// Strings returns the tags as plain strings.
func (t Tags) Strings() []string {
	out := make([]string, len(t))
	for i, tag := range t {
		out[i] = string(tag)
	}
	return out
}

// Equal reports whether t and o hold the same tags, ignoring order.
func (t Tags) Equal(o Tags) bool {
	if len(t) != len(o) {
		return false
	}
	return slices.Equal(t.sorted(), o.sorted())
}

func (t Tags) sorted() Tags {
	s := slices.Clone(t)
	slices.Sort(s)
	return s
}

func (t Tags) add(tag Tag) Tags {
	if t.Has(tag) {
		return t
	}
	return append(t, tag)
}

func (tag Tag) isMarker() bool {
	switch tag {
	case TagRecommended, TagOptional, TagBuild, TagRun:
		return true
	}
	return false
}
