package tap

import (
	"testing"

	brewerrors "github.com/vladshablinsky/brew/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Tap
		wantErr bool
	}{
		{name: "short form", input: "foo/bar", want: Tap{User: "foo", Repo: "bar"}},
		{name: "prefixed repo", input: "homebrew/homebrew-core", want: Core},
		{name: "mixed case", input: "Foo/Bar", want: Tap{User: "foo", Repo: "bar"}},
		{name: "missing repo", input: "foo", wantErr: true},
		{name: "empty user", input: "/bar", wantErr: true},
		{name: "too many parts", input: "a/b/c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				if !brewerrors.Is(err, brewerrors.ErrCodeInvalidTap) {
					t.Errorf("Parse(%q) error code = %v, want %v", tt.input, brewerrors.GetCode(err), brewerrors.ErrCodeInvalidTap)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromQualified(t *testing.T) {
	got, err := FromQualified("foo/bar/dog")
	if err != nil {
		t.Fatalf("FromQualified() error: %v", err)
	}
	if got != (Tap{User: "foo", Repo: "bar"}) {
		t.Errorf("FromQualified() = %v, want foo/bar", got)
	}

	if _, err := FromQualified("dog"); err == nil {
		t.Error("FromQualified(\"dog\") expected error")
	}
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"foo/bar/dog": "dog",
		"dog":         "dog",
		"a/b":         "b",
	}
	for in, want := range tests {
		if got := BaseName(in); got != want {
			t.Errorf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTapNames(t *testing.T) {
	tp := MustParse("user/repo")
	if got := tp.Name(); got != "user/repo" {
		t.Errorf("Name() = %q", got)
	}
	if got := tp.RepoDir(); got != "user/homebrew-repo" {
		t.Errorf("RepoDir() = %q", got)
	}
	if got := tp.Qualify("dog"); got != "user/repo/dog" {
		t.Errorf("Qualify() = %q", got)
	}
	if tp.IsCore() {
		t.Error("user/repo should not be core")
	}
	if !Core.IsCore() {
		t.Error("Core.IsCore() = false")
	}
}

func TestTextRoundTrip(t *testing.T) {
	var tp Tap
	if err := tp.UnmarshalText([]byte("homebrew/homebrew-science")); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	b, err := tp.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(b) != "homebrew/science" {
		t.Errorf("MarshalText() = %q, want homebrew/science", b)
	}

	var zero Tap
	if err := zero.UnmarshalText(nil); err != nil || !zero.IsZero() {
		t.Errorf("UnmarshalText(nil) = %v, %v; want zero tap", zero, err)
	}
}
