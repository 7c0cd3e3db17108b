// Package html compiles a project into a single self-contained HTML deck.
//
// # Output Structure
//
// The document contains, in order:
//
//   - one <section class="main-slide" id="ID"> per main slide, in index order
//   - a dot navigation bar with one button per main slide, the first active
//   - one hidden <div class="modal-overlay" id="modal-ID"> per modal target
//   - the navigation script, and the analytics script when enabled
//
// Which slides become modals is decided by [navigation.Classify].
//
// # Escaping
//
// The document is built as a golang.org/x/net/html node tree and
// serialized with html.Render. User strings (labels, tooltips, URLs,
// overlay text) only ever enter the tree as text nodes or attribute
// values, which the renderer escapes. No user string is concatenated into
// markup, so a label such as "<script>" always comes out as "&lt;script&gt;".
// CSS values taken from the project are additionally restricted to a safe
// character set before they reach a style attribute.
//
// # Hotspot Actions
//
// Hotspots carry their action in data attributes and are dispatched by a
// single delegated click handler:
//
//	data-action="open-slide" data-target="slide-002" data-modal="modal-slide-002"
//	data-action="open-url"   data-url="https://example.com"
//	data-action="none"       (dangling target or rejected URL)
//
// The handler calls window.openSlide and window.openUrl, which the
// analytics script wraps to record clicks.
//
// # Determinism
//
// Output bytes depend only on the project and the image bytes. The
// analytics script timestamps events in the browser, not at compile time.
package html
