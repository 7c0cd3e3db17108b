package graph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/slidelinker/pkg/navigation"
	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds slide ids and hotspot counts to node labels.
	Detailed bool
}

// ToDOT converts a project's navigation structure to Graphviz DOT.
func ToDOT(p *project.Project, opts Options) string {
	slides := p.ActiveSlides()
	plan := navigation.Classify(slides)
	ids := make(map[string]bool, len(slides))
	for _, s := range slides {
		ids[s.ID] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, s := range slides {
		fmt.Fprintf(&buf, "  %q [%s];\n", s.ID, strings.Join(slideAttrs(s, opts.Detailed), ", "))
	}

	urls := map[string]string{}
	missing := map[string]bool{}
	var edges []string
	for _, s := range slides {
		for _, h := range s.Hotspots {
			label := ""
			if h.Tooltip != "" {
				label = fmt.Sprintf(", label=%q", h.Tooltip)
			}
			switch {
			case h.LinkType == project.LinkURL && h.URL != "":
				node, ok := urls[h.URL]
				if !ok {
					node = "url" + strconv.Itoa(len(urls)+1)
					urls[h.URL] = node
					fmt.Fprintf(&buf, "  %q [shape=note, style=filled, fillcolor=\"#fff6d5\", label=%q];\n", node, h.URL)
				}
				edges = append(edges, fmt.Sprintf("  %q -> %q [color=\"#c58b00\"%s];\n", s.ID, node, label))
			case h.LinkType == project.LinkSlide && ids[h.TargetID]:
				edges = append(edges, fmt.Sprintf("  %q -> %q [color=\"#1f77b4\"%s];\n", s.ID, h.TargetID, label))
			case h.LinkType == project.LinkSlide && h.TargetID != "":
				node := "missing:" + h.TargetID
				if !missing[node] {
					missing[node] = true
					fmt.Fprintf(&buf, "  %q [shape=box, style=dashed, color=red, fontcolor=red, label=%q];\n", node, h.TargetID)
				}
				edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed, color=red%s];\n", s.ID, node, label))
			}
		}
	}

	buf.WriteString("\n")
	for i := 1; i < len(plan.Primary); i++ {
		fmt.Fprintf(&buf, "  %q -> %q [style=dotted, color=grey, arrowhead=none];\n", plan.Primary[i-1].ID, plan.Primary[i].ID)
	}
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func slideAttrs(s project.Slide, detailed bool) []string {
	label := s.Label
	if label == "" {
		label = s.ID
	}
	if detailed {
		label = fmt.Sprintf("%s\n%s\nhotspots: %d", label, s.ID, len(s.Hotspots))
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if s.IsMain {
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"", "fillcolor=\"#e8f6ff\"")
	} else {
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=white")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
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
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders DOT source as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from a
// zero origin at its natural size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
