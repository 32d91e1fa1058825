package version

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.1", -1},
		{"1.2", "1.1", 1},
		{"1.10", "1.9", 1},
		{"2.0.0", "1.99.99", 1},
		{"1.0", "1.0.0", 0},
		{"1.0.2u", "1.0.2t", 1},
		{"2023c", "2023a", 1},
		{"1.0rc1", "1.0", -1},
		{"HEAD", "99.0", 1},
		{"1.0", "HEAD-abc123", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := MustParse(tt.a).Compare(MustParse(tt.b)); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestZeroVersion(t *testing.T) {
	var zero Version
	if !zero.IsZero() {
		t.Error("zero value should be IsZero")
	}
	if !MustParse("0.1").GreaterThan(zero) {
		t.Error("any version should be greater than the zero version")
	}
	if zero.Compare(Version{}) != 0 {
		t.Error("zero versions should compare equal")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse("  "); err == nil {
		t.Error("Parse(blank) expected error")
	}
}

func TestUnmarshalText(t *testing.T) {
	var v Version
	if err := v.UnmarshalText([]byte("1.2.3")); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if v.String() != "1.2.3" {
		t.Errorf("String() = %q", v.String())
	}
	if err := v.UnmarshalText(nil); err != nil || !v.IsZero() {
		t.Errorf("UnmarshalText(nil) = %v, %v; want zero", v, err)
	}
}
