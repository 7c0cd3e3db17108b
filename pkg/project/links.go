package project

import (
	"fmt"

	"github.com/matzehuels/slidelinker/pkg/errors"
)

// WarningKind classifies a non-fatal link problem.
type WarningKind string

const (
	// WarnDanglingTarget: a slide hotspot points at an id no slide has.
	WarnDanglingTarget WarningKind = "dangling_target"
	// WarnMissingTarget: a slide hotspot has no target at all.
	WarnMissingTarget WarningKind = "missing_target"
	WarnSelfLink      WarningKind = "self_link"
	WarnEmptyURL      WarningKind = "empty_url"
	// WarnUnsafeURL: the URL uses a script-capable scheme or is malformed.
	WarnUnsafeURL WarningKind = "unsafe_url"
)

// Warning is a non-fatal problem found in a project. Compilers return
// warnings next to a successful result instead of failing.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	SlideID    string      `json:"slide_id"`
	SlideLabel string      `json:"slide_label,omitempty"`
	HotspotID  string      `json:"hotspot_id"`
	Target     string      `json:"target,omitempty"`
}

// String renders the warning for logs and terminal output.
func (w Warning) String() string {
	switch w.Kind {
	case WarnDanglingTarget:
		return fmt.Sprintf("slide %s: hotspot %s targets unknown slide %q", w.SlideID, w.HotspotID, w.Target)
	case WarnMissingTarget:
		return fmt.Sprintf("slide %s: hotspot %s has no target slide", w.SlideID, w.HotspotID)
	case WarnSelfLink:
		return fmt.Sprintf("slide %s: hotspot %s links to its own slide", w.SlideID, w.HotspotID)
	case WarnEmptyURL:
		return fmt.Sprintf("slide %s: hotspot %s has an empty URL", w.SlideID, w.HotspotID)
	case WarnUnsafeURL:
		return fmt.Sprintf("slide %s: hotspot %s has unsafe URL %q", w.SlideID, w.HotspotID, w.Target)
	}
	return fmt.Sprintf("slide %s: hotspot %s: %s", w.SlideID, w.HotspotID, w.Kind)
}

// CheckLinks inspects every hotspot of the given slides and reports link
// problems in slide then hotspot order. Targets resolve against slides
// only, so pass [Project.ActiveSlides] to treat disabled slides as gone.
func CheckLinks(slides []Slide) []Warning {
	ids := make(map[string]bool, len(slides))
	for _, s := range slides {
		ids[s.ID] = true
	}

	var out []Warning
	for _, s := range slides {
		for _, h := range s.Hotspots {
			w := Warning{SlideID: s.ID, SlideLabel: s.Label, HotspotID: h.ID}
			switch h.LinkType {
			case LinkURL:
				switch {
				case h.URL == "":
					w.Kind = WarnEmptyURL
				case errors.ValidateURL(h.URL) != nil:
					w.Kind, w.Target = WarnUnsafeURL, h.URL
				}
			default:
				switch {
				case h.TargetID == "":
					w.Kind = WarnMissingTarget
				case !ids[h.TargetID]:
					w.Kind, w.Target = WarnDanglingTarget, h.TargetID
				case h.TargetID == s.ID:
					w.Kind, w.Target = WarnSelfLink, h.TargetID
				}
			}
			if w.Kind != "" {
				out = append(out, w)
			}
		}
	}
	return out
}

// Resolvable reports whether a hotspot can be followed: a slide link to an
// existing slide, or a URL that passes [errors.ValidateURL]. Self links are
// resolvable; they reopen the current slide.
func Resolvable(h Hotspot, ids map[string]bool) bool {
	if h.LinkType == LinkURL {
		return errors.ValidateURL(h.URL) == nil
	}
	return h.TargetID != "" && ids[h.TargetID]
}
