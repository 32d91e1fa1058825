package dependency

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagsClassification(t *testing.T) {
	tests := []struct {
		name        string
		tags        Tags
		required    bool
		recommended bool
		optional    bool
		buildOnly   bool
		runOnly     bool
	}{
		{"none", nil, true, false, false, false, false},
		{"build", Tags{TagBuild}, true, false, false, true, false},
		{"run", Tags{TagRun}, true, false, false, false, true},
		{"build and run", Tags{TagBuild, TagRun}, true, false, false, false, false},
		{"recommended", Tags{TagRecommended}, false, true, false, false, false},
		{"optional build", Tags{TagOptional, TagBuild}, false, false, true, true, false},
		{"option tag only", Tags{"with-python"}, true, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tags.Required(); got != tt.required {
				t.Errorf("Required() = %v, want %v", got, tt.required)
			}
			if got := tt.tags.Recommended(); got != tt.recommended {
				t.Errorf("Recommended() = %v, want %v", got, tt.recommended)
			}
			if got := tt.tags.Optional(); got != tt.optional {
				t.Errorf("Optional() = %v, want %v", got, tt.optional)
			}
			if got := tt.tags.BuildOnly(); got != tt.buildOnly {
				t.Errorf("BuildOnly() = %v, want %v", got, tt.buildOnly)
			}
			if got := tt.tags.RunOnly(); got != tt.runOnly {
				t.Errorf("RunOnly() = %v, want %v", got, tt.runOnly)
			}
		})
	}
}

func TestTagsOptionTags(t *testing.T) {
	tags := NewTags("build", "with-x", "optional", "universal", "run")
	got := tags.OptionTags().Strings()
	want := []string{"with-x", "universal"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OptionTags() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTagsDropsEmptyAndDuplicates(t *testing.T) {
	got := NewTags("build", "", "build", "x").Strings()
	if diff := cmp.Diff([]string{"build", "x"}, got); diff != "" {
		t.Errorf("NewTags() mismatch (-want +got):\n%s", diff)
	}
}

func TestTagsEqualIgnoresOrder(t *testing.T) {
	a := Tags{TagBuild, "x"}
	b := Tags{"x", TagBuild}
	if !a.Equal(b) {
		t.Error("Equal() should ignore order")
	}
	if a.Equal(Tags{TagBuild}) {
		t.Error("Equal() should compare lengths")
	}
	if a.Equal(Tags{TagBuild, "y"}) {
		t.Error("Equal() should compare contents")
	}
}
