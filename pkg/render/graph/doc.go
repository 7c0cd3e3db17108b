// Package graph renders a project's navigation structure as a node-link
// diagram.
//
// # Overview
//
// Every enabled slide becomes a node: main slides as filled boxes, sub
// slides as ellipses. Edges follow hotspots:
//
//   - slide links point at their target slide
//   - URL links point at a note-shaped node labelled with the URL
//   - links to unknown slides point at a dashed red placeholder
//
// Consecutive main slides are joined by dotted grey edges so the primary
// presentation flow reads top to bottom.
//
// # Usage
//
//	dot := graph.ToDOT(p, graph.Options{})
//	svg, err := graph.RenderSVG(ctx, dot)
//	png, err := graph.RenderPNG(ctx, dot, 2.0)  // needs rsvg-convert
//
// # Dependencies
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]. PNG conversion requires librsvg.
package graph
