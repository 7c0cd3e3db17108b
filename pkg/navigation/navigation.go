// Package navigation decides how slides are laid out in compiled output.
//
// The HTML output is a navigation surface: main slides appear in a linear
// sequence, and any slide that can be entered through a hotspot must also
// exist as a hidden modal. [Classify] computes that partition.
//
// The PDF output is an archive: every slide appears exactly once, main
// slides first. [RenderOrder] computes that order.
//
// Both functions are pure. They depend only on slide order, is_main flags
// and hotspot targets, never on image content.
package navigation

import (
	"sort"

	"github.com/matzehuels/slidelinker/pkg/project"
)

// Plan is the HTML partition of a slide list.
type Plan struct {
	// Primary holds the main slides in index order.
	Primary []project.Slide
	// Modals holds every slide that must be addressable as a modal:
	// all sub slides, then every main slide that is a hotspot target or
	// owns a hotspot.
	Modals []project.Slide
	// Dangling lists hotspots whose target slide does not exist.
	Dangling []project.Warning
}

// RenderCount is the number of slide renderings the plan implies.
func (p *Plan) RenderCount() int {
	return len(p.Primary) + len(p.Modals)
}

// IsModal reports whether the slide with id is rendered as a modal.
func (p *Plan) IsModal(id string) bool {
	for _, s := range p.Modals {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Classify partitions slides for the HTML output.
//
// Sub slides are listed first in stored order, followed by the main slides
// that qualify as modal targets in index order. A main slide is a modal
// target when any hotspot anywhere, including its own, targets it, or when
// it owns at least one hotspot. Hotspots with an unknown target are
// reported in Dangling and do not affect the partition.
func Classify(slides []project.Slide) Plan {
	ids := make(map[string]bool, len(slides))
	for _, s := range slides {
		ids[s.ID] = true
	}

	targeted := make(map[string]bool)
	var plan Plan
	for _, s := range slides {
		for _, h := range s.Hotspots {
			if h.LinkType != project.LinkSlide || h.TargetID == "" {
				continue
			}
			if !ids[h.TargetID] {
				plan.Dangling = append(plan.Dangling, project.Warning{
					Kind:       project.WarnDanglingTarget,
					SlideID:    s.ID,
					SlideLabel: s.Label,
					HotspotID:  h.ID,
					Target:     h.TargetID,
				})
				continue
			}
			targeted[h.TargetID] = true
		}
	}

	plan.Primary = mainSlides(slides)
	for _, s := range slides {
		if !s.IsMain {
			plan.Modals = append(plan.Modals, s)
		}
	}
	for _, s := range plan.Primary {
		if targeted[s.ID] || len(s.Hotspots) > 0 {
			plan.Modals = append(plan.Modals, s)
		}
	}
	return plan
}

// RenderOrder returns every slide once for the PDF output: main slides by
// index, then sub slides by index. Slides with equal index keep their
// stored order.
func RenderOrder(slides []project.Slide) []project.Slide {
	out := mainSlides(slides)
	out = append(out, subSlides(slides)...)
	return out
}

func mainSlides(slides []project.Slide) []project.Slide {
	return byIndex(slides, func(s *project.Slide) bool { return s.IsMain })
}

func subSlides(slides []project.Slide) []project.Slide {
	return byIndex(slides, func(s *project.Slide) bool { return !s.IsMain })
}

func byIndex(slides []project.Slide, keep func(*project.Slide) bool) []project.Slide {
	out := make([]project.Slide, 0, len(slides))
	for i := range slides {
		if keep(&slides[i]) {
			out = append(out, slides[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
