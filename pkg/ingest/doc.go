// Package ingest turns slide decks into projects.
//
// A deck is rasterized page by page into slides/slide-NNN.png under the
// project directory and a default [project.Project] is written next to
// it. Office documents are first converted to PDF.
//
// Conversion is delegated to external tools behind small interfaces:
//
//   - [Rasterizer] renders PDF pages to PNG ([Pdftoppm] uses poppler)
//   - [OfficeConverter] converts PPTX/ODP to PDF ([Soffice] uses LibreOffice)
//
// Missing tools surface as CONVERTER_UNAVAILABLE errors and failed runs as
// CONVERSION_FAILED, both from [github.com/matzehuels/slidelinker/pkg/errors].
package ingest
