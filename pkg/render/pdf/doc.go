// Package pdf compiles a project into a flattened PDF archive.
//
// Every enabled slide becomes exactly one page, in the order given by
// [navigation.RenderOrder]: main slides by index, then sub slides by
// index. Hotspots and text overlays are not reproduced.
//
// # Page Size
//
// All pages share one preset chosen from the project aspect ratio:
//
//   - "4:3": 297 x 222.75 mm
//   - anything else: 340 x 191.25 mm (widescreen)
//
// Each slide image is stretched to cover the whole page with independent
// horizontal and vertical scale factors. The preset is expected to match
// the image aspect ratio already, so no letterboxing is applied.
//
// # Phases
//
// Compilation runs in two phases. Images are first read and decoded to RGB
// in parallel, with results collected by slide position so completion order
// never affects page order. Pages are then assembled sequentially with
// github.com/wudi/pdfkit and the document is serialized deterministically.
// Progress totals are reported as twice the slide count to cover both
// phases.
package pdf
