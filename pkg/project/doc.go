// Package project defines the Slide Linker data model and its JSON form.
//
// # Overview
//
// A [Project] is an ordered list of [Slide] values. Each slide points at a
// raster image stored next to the project file and carries two kinds of
// positioned regions:
//
//   - [Hotspot]: a clickable rectangle that opens another slide or a URL
//   - [TextOverlay]: a decorative text box drawn over the image
//
// Rectangles are expressed as percentages of the slide area, so a hotspot
// with x=10, w=25 starts a tenth of the way in and covers a quarter of the
// slide width regardless of the image resolution.
//
// # Main and Sub Slides
//
// Slides flagged is_main form the primary presentation sequence, in index
// order. Other slides are only reachable by following a hotspot. How these
// two groups become HTML sections, modals and PDF pages is decided by the
// navigation package.
//
// # JSON Format
//
// Projects are stored as project.json:
//
//	{
//	  "version": "1.0",
//	  "created_at": "2024-05-01T09:00:00.000Z",
//	  "updated_at": "2024-05-01T09:00:00.000Z",
//	  "source_file": "/decks/quarterly.pdf",
//	  "aspect_ratio": "16:9",
//	  "slides": [
//	    {
//	      "id": "slide-001",
//	      "index": 0,
//	      "label": "Slide 1",
//	      "is_main": true,
//	      "image_path": "slides/slide-001.png",
//	      "hotspots": [
//	        {"id": "h1", "x": 10, "y": 10, "w": 20, "h": 10,
//	         "link_type": "slide", "target_id": "slide-002"}
//	      ],
//	      "text_overlays": []
//	    }
//	  ]
//	}
//
// Timestamps are kept as the strings they were loaded with so that a
// load/save cycle does not rewrite them.
//
// # Validation
//
// [Validate] rejects structurally broken projects (duplicate ids, bad
// rectangles, unsafe image paths). [CheckLinks] reports link problems as
// [Warning] values; compilers tolerate these and render the hotspot inert.
package project
