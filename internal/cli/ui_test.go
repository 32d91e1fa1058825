package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintHelpers(t *testing.T) {
	tests := []struct {
		name  string
		print func(*bytes.Buffer)
		want  []string
	}{
		{"success", func(b *bytes.Buffer) { printSuccess(b, "Wrote %s", "tree") }, []string{iconSuccess, "Wrote tree"}},
		{"error", func(b *bytes.Buffer) { printError(b, "failed") }, []string{iconError, "failed"}},
		{"warning", func(b *bytes.Buffer) { printWarning(b, "careful") }, []string{iconWarning, "careful"}},
		{"info", func(b *bytes.Buffer) { printInfo(b, "Listening on %s", ":8080") }, []string{iconInfo, "Listening on :8080"}},
		{"detail", func(b *bytes.Buffer) { printDetail(b, "Directory: %s", "/tmp") }, []string{"  ", "Directory: /tmp"}},
		{"file", func(b *bytes.Buffer) { printFile(b, "wget.svg") }, []string{iconArrow, "wget.svg"}},
		{"stats fresh", func(b *bytes.Buffer) { printStats(b, 3, "dependencies", false) }, []string{"3 dependencies", iconFresh}},
		{"stats cached", func(b *bytes.Buffer) { printStats(b, 1, "dependencies", true) }, []string{iconCached}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			out := buf.String()
			if !strings.HasSuffix(out, "\n") {
				t.Errorf("output %q should end with a newline", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Dependency", "Tags"}, [][]string{
		{"openssl@3", joinOrDash(nil)},
		{"pkgconf", joinOrDash([]string{"build", "run"})},
	})
	for _, want := range []string{"Dependency", "Tags", "openssl@3", "—", "build, run"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
