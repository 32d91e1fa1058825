package formula

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vladshablinsky/brew/pkg/dependency"
)

func TestBuildOptionsWith(t *testing.T) {
	defined := []string{"with-foo", "without-bar", "with-baz"}

	tests := []struct {
		name string
		args []string
		dep  *dependency.Dependency
		want bool
	}{
		{"with requested", []string{"--with-foo"}, dependency.MustNew("foo", dependency.TagOptional), true},
		{"with not requested", nil, dependency.MustNew("foo", dependency.TagOptional), false},
		{"without not requested", nil, dependency.MustNew("bar", dependency.TagRecommended), true},
		{"without requested", []string{"without-bar"}, dependency.MustNew("bar", dependency.TagRecommended), false},
		{"undefined", []string{"with-qux"}, dependency.MustNew("qux"), false},
		{"tap option name", []string{"with-baz"}, dependency.MustNew("user/repo/baz", dependency.TagOptional), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuildOptions(tt.args, defined)
			if got := b.With(tt.dep); got != tt.want {
				t.Errorf("With() = %v, want %v", got, tt.want)
			}
			if got := b.Without(tt.dep); got == tt.want {
				t.Errorf("Without() = %v, want %v", got, !tt.want)
			}
		})
	}
}

func TestBuildOptionsUsed(t *testing.T) {
	b := NewBuildOptions([]string{"--with-foo", "with-foo", "--universal"}, []string{"with-foo", "with-bar"})
	if diff := cmp.Diff([]string{"with-foo"}, b.Used()); diff != "" {
		t.Errorf("Used() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"with-bar"}, b.Unused()); diff != "" {
		t.Errorf("Unused() mismatch (-want +got):\n%s", diff)
	}
	if !b.Include("--universal") {
		t.Error("Include() should ignore leading dashes")
	}
}
