package project

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/slidelinker/pkg/errors"
)

// MergeOptions control how an external project is folded into another.
type MergeOptions struct {
	// SourceFile is recorded on every merged slide. Defaults to the
	// external project's source file.
	SourceFile string
	// NewID generates fresh slide, hotspot and overlay ids.
	// Defaults to random UUIDs.
	NewID func() string
}

// ImageRename maps a merged slide's original image to its new location.
// Both paths are relative to their respective project directories.
type ImageRename struct {
	From string
	To   string
}

// Merge appends the slides of src to a copy of dst. Every merged slide,
// hotspot and overlay gets a fresh id, hotspot targets inside src are
// remapped to the new slide ids, indices continue after dst, and merged
// slides become sub slides. Neither input is modified.
//
// The caller is responsible for copying images according to the returned
// renames.
func Merge(dst, src *Project, opts MergeOptions) (*Project, []ImageRename, error) {
	if src == nil || len(src.Slides) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidProject, "cannot merge a project without slides")
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.SourceFile == "" {
		opts.SourceFile = src.SourceFile
	}

	out := clone(dst)
	offset := len(out.Slides)

	remap := make(map[string]string, len(src.Slides))
	for _, s := range src.Slides {
		remap[s.ID] = opts.NewID()
	}

	renames := make([]ImageRename, 0, len(src.Slides))
	for i, s := range src.Slides {
		idx := offset + i
		ext := path.Ext(filepath.ToSlash(s.ImagePath))
		if ext == "" {
			ext = ".png"
		}
		imagePath := fmt.Sprintf("slides/slide-%03d%s", idx+1, ext)
		renames = append(renames, ImageRename{From: s.ImagePath, To: imagePath})

		merged := Slide{
			ID:           remap[s.ID],
			Index:        idx,
			Label:        s.Label,
			IsMain:       false,
			Enabled:      s.Enabled,
			ImagePath:    imagePath,
			SourceFile:   opts.SourceFile,
			Hotspots:     make([]Hotspot, len(s.Hotspots)),
			TextOverlays: make([]TextOverlay, len(s.TextOverlays)),
		}
		for j, h := range s.Hotspots {
			h.ID = opts.NewID()
			if h.LinkType == LinkSlide {
				if to, ok := remap[h.TargetID]; ok {
					h.TargetID = to
				}
			}
			if h.Style != nil {
				st := *h.Style
				h.Style = &st
			}
			merged.Hotspots[j] = h
		}
		for j, o := range s.TextOverlays {
			o.ID = opts.NewID()
			merged.TextOverlays[j] = o
		}
		out.Slides = append(out.Slides, merged)
	}

	if opts.SourceFile != "" && !slices.Contains(out.SourceFiles, opts.SourceFile) {
		out.SourceFiles = append(out.SourceFiles, opts.SourceFile)
	}
	return out, renames, nil
}

// clone deep-copies the parts of p that Merge touches.
func clone(p *Project) *Project {
	if p == nil {
		return &Project{Version: Version, AspectRatio: AspectWide, Slides: []Slide{}}
	}
	out := *p
	out.Slides = append([]Slide(nil), p.Slides...)
	out.SourceFiles = append([]string(nil), p.SourceFiles...)
	return &out
}
