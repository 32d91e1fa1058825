package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/goccy/go-graphviz"
)

// RenderSVG lays out DOT source with Graphviz and returns the SVG document.
// Graphviz sizes the root element in points; the size is rewritten to plain
// pixels taken from the viewBox so browsers scale the tree consistently.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return pixelSize(buf.Bytes()), nil
}

var (
	rootTagRe = regexp.MustCompile(`<svg\b[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="[-0-9.]+\s+[-0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
	sizeRe    = regexp.MustCompile(`\s(width|height)="[^"]*"`)
)

// pixelSize replaces the width and height of the root <svg> element with the
// viewBox extent. Documents without a usable viewBox are returned unchanged.
func pixelSize(svg []byte) []byte {
	loc := rootTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	tag := svg[loc[0]:loc[1]]
	m := viewBoxRe.FindSubmatch(tag)
	if m == nil || string(m[1]) == "0" || string(m[2]) == "0" {
		return svg
	}

	size := map[string][]byte{"width": m[1], "height": m[2]}
	fixed := sizeRe.ReplaceAllFunc(tag, func(attr []byte) []byte {
		name := sizeRe.FindSubmatch(attr)[1]
		return []byte(fmt.Sprintf(` %s="%s"`, name, size[string(name)]))
	})

	out := make([]byte, 0, len(svg))
	out = append(out, svg[:loc[0]]...)
	out = append(out, fixed...)
	return append(out, svg[loc[1]:]...)
}
