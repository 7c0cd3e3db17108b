package project

import (
	"fmt"

	"github.com/matzehuels/slidelinker/pkg/errors"
)

// Validate checks the structural invariants of p and returns the first
// violation as an INVALID_PROJECT error. Link problems are not structural;
// see [CheckLinks].
func Validate(p *Project) error {
	if p == nil {
		return errors.New(errors.ErrCodeInvalidProject, "project is nil")
	}
	if err := ValidateAspectRatio(p.AspectRatio); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.Slides))
	for i := range p.Slides {
		s := &p.Slides[i]
		if s.ID == "" {
			return errors.New(errors.ErrCodeInvalidProject, "slide at position %d has no id", i)
		}
		if seen[s.ID] {
			return errors.New(errors.ErrCodeInvalidProject, "duplicate slide id %q", s.ID)
		}
		seen[s.ID] = true

		if s.Index < 0 {
			return errors.New(errors.ErrCodeInvalidProject, "slide %q: negative index %d", s.ID, s.Index)
		}
		if err := errors.ValidatePath(s.ImagePath); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProject, err, "slide %q: image path", s.ID)
		}
		if err := validateSlide(s); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAspectRatio rejects ratios outside the supported presets.
func ValidateAspectRatio(ratio string) error {
	switch ratio {
	case AspectWide, AspectStandard:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidProject, "unsupported aspect ratio %q (want %s or %s)", ratio, AspectWide, AspectStandard)
}

func validateSlide(s *Slide) error {
	ids := make(map[string]bool, len(s.Hotspots))
	for _, h := range s.Hotspots {
		if h.ID == "" {
			return errors.New(errors.ErrCodeInvalidProject, "slide %q: hotspot without id", s.ID)
		}
		if ids[h.ID] {
			return errors.New(errors.ErrCodeInvalidProject, "slide %q: duplicate hotspot id %q", s.ID, h.ID)
		}
		ids[h.ID] = true
		if err := validateRect(h.Rect); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProject, err, "slide %q: hotspot %q", s.ID, h.ID)
		}
		switch h.LinkType {
		case LinkSlide, LinkURL:
		default:
			return errors.New(errors.ErrCodeInvalidProject, "slide %q: hotspot %q: unknown link type %q", s.ID, h.ID, h.LinkType)
		}
		if h.Style != nil && (h.Style.Opacity < 0 || h.Style.Opacity > 1) {
			return errors.New(errors.ErrCodeInvalidProject, "slide %q: hotspot %q: opacity %g outside [0,1]", s.ID, h.ID, h.Style.Opacity)
		}
	}
	for _, o := range s.TextOverlays {
		if err := validateRect(o.Rect); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProject, err, "slide %q: text overlay %q", s.ID, o.ID)
		}
	}
	return nil
}

func validateRect(r Rect) error {
	for _, v := range [...]struct {
		name string
		val  float64
	}{{"x", r.X}, {"y", r.Y}, {"w", r.W}, {"h", r.H}} {
		if v.val < 0 || v.val > 100 {
			return fmt.Errorf("%s=%g outside [0,100]", v.name, v.val)
		}
	}
	return nil
}
