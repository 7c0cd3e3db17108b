// Package render holds the output side of Slide Linker.
//
// # Overview
//
// A project can be compiled into three kinds of artifacts:
//
//   - An interactive HTML deck (in [html] subpackage)
//   - A flattened PDF archive (in [pdf] subpackage)
//   - A navigation graph of slides and hotspot links (in [graph] subpackage)
//
// This package itself provides what the subpackages share: the list of
// supported formats, atomic artifact writes, and SVG conversion through
// the external rsvg-convert tool.
//
// # Artifact Writes
//
// [WriteOutput] writes the finished bytes to a temporary file next to the
// destination and renames it into place. A failed compile therefore never
// leaves a partial artifact, and a reader never sees a half-written one.
//
// [html]: github.com/matzehuels/slidelinker/pkg/render/html
// [pdf]: github.com/matzehuels/slidelinker/pkg/render/pdf
// [graph]: github.com/matzehuels/slidelinker/pkg/render/graph
package render
