package errors

import (
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "openssl", false},
		{"valid with dash", "pkg-config", false},
		{"valid qualified", "homebrew/core/wget", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormulaName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"bare", "wget", false},
		{"versioned", "openssl@3", false},
		{"plus", "gtk+3", false},
		{"qualified", "homebrew/core/wget", false},
		{"qualified prefixed repo", "user/homebrew-tools/dog", false},

		{"empty", "", true},
		{"space", "foo bar", true},
		{"bad tap", "us er/repo/dog", true},
		{"leading dash", "-rf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormulaName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormulaName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTapName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantCode Code
	}{
		{"valid", "homebrew/core", false, ""},
		{"valid prefixed", "homebrew/homebrew-science", false, ""},
		{"one part", "homebrew", true, ErrCodeInvalidTap},
		{"three parts", "a/b/c", true, ErrCodeInvalidTap},
		{"traversal", "../x", true, ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTapName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTapName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && GetCode(err) != tt.wantCode {
				t.Errorf("ValidateTapName(%q) code = %v, want %v", tt.input, GetCode(err), tt.wantCode)
			}
		})
	}
}
