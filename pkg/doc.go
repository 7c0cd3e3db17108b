// Package pkg provides the libraries behind Slide Linker.
//
// # Overview
//
// Slide Linker turns a deck of rasterized slides plus a project file of
// clickable hotspots into a navigable presentation. The pkg directory is
// organized into four areas:
//
//  1. Model: [project] (the project.json schema, validation, merging) and
//     [navigation] (which slides scroll and which open as modals)
//  2. Output: [render] with the [html], [pdf] and [graph] compilers
//  3. Orchestration: [pipeline] (validate, cache, compile, write) and
//     [ingest] (PDF/PPTX to slide images)
//  4. Support: [cache], [errors], [imagecodec], [observability],
//     [progress] and [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	deck.pdf / deck.pptx
//	         ↓
//	    [ingest] (rasterize pages, write project.json)
//	         ↓
//	    project.json edited by the user
//	         ↓
//	    [pipeline] (validate, classify, cache lookup)
//	         ↓
//	    [html] or [pdf] compiler
//	         ↓
//	    presentation.html / presentation.pdf
//
// # Quick Start
//
//	p, err := project.Load("deck/project.json")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, logger)
//	res, err := runner.Execute(ctx, p, pipeline.Options{
//	    Format:  render.FormatHTML,
//	    BaseDir: "deck",
//	    Output:  "deck/presentation.html",
//	})
//
// [project]: github.com/matzehuels/slidelinker/pkg/project
// [navigation]: github.com/matzehuels/slidelinker/pkg/navigation
// [render]: github.com/matzehuels/slidelinker/pkg/render
// [html]: github.com/matzehuels/slidelinker/pkg/render/html
// [pdf]: github.com/matzehuels/slidelinker/pkg/render/pdf
// [graph]: github.com/matzehuels/slidelinker/pkg/render/graph
// [pipeline]: github.com/matzehuels/slidelinker/pkg/pipeline
// [ingest]: github.com/matzehuels/slidelinker/pkg/ingest
// [cache]: github.com/matzehuels/slidelinker/pkg/cache
// [errors]: github.com/matzehuels/slidelinker/pkg/errors
// [imagecodec]: github.com/matzehuels/slidelinker/pkg/imagecodec
// [observability]: github.com/matzehuels/slidelinker/pkg/observability
// [progress]: github.com/matzehuels/slidelinker/pkg/progress
// [buildinfo]: github.com/matzehuels/slidelinker/pkg/buildinfo
package pkg
