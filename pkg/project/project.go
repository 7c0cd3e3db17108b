package project

// Schema version written by this package.
const Version = "1.0"

// Supported aspect ratios. Any other value is treated as widescreen.
const (
	AspectWide     = "16:9"
	AspectStandard = "4:3"
)

// LinkType selects what a hotspot opens.
type LinkType string

const (
	LinkSlide LinkType = "slide"
	LinkURL   LinkType = "url"
)

// Project is the root aggregate persisted as project.json.
type Project struct {
	Version         string   `json:"version"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	SourceFile      string   `json:"source_file"`
	SourceFiles     []string `json:"source_files,omitempty"`
	AspectRatio     string   `json:"aspect_ratio"`
	Slides          []Slide  `json:"slides"`
	EnableAnalytics *bool    `json:"enable_analytics,omitempty"`
}

// Slide is one rasterized page plus its interactive regions.
type Slide struct {
	ID           string        `json:"id"`
	Index        int           `json:"index"`
	Label        string        `json:"label"`
	IsMain       bool          `json:"is_main"`
	Enabled      *bool         `json:"enabled,omitempty"`
	ImagePath    string        `json:"image_path"`
	SourceFile   string        `json:"source_file,omitempty"`
	Hotspots     []Hotspot     `json:"hotspots"`
	TextOverlays []TextOverlay `json:"text_overlays"`
}

// Rect is a rectangle in percent of the slide area.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Hotspot is a clickable region. Exactly one of TargetID and URL is
// meaningful, selected by LinkType.
type Hotspot struct {
	ID string `json:"id"`
	Rect
	LinkType LinkType      `json:"link_type"`
	TargetID string        `json:"target_id,omitempty"`
	URL      string        `json:"url,omitempty"`
	Tooltip  string        `json:"tooltip,omitempty"`
	Style    *HotspotStyle `json:"style,omitempty"`
}

// HotspotStyle overrides the default hotspot look.
type HotspotStyle struct {
	Color        string  `json:"color"`
	Opacity      float64 `json:"opacity"`
	BorderRadius float64 `json:"border_radius"`
	Icon         string  `json:"icon,omitempty"`
}

// TextOverlay is a decorative text box.
type TextOverlay struct {
	ID string `json:"id"`
	Rect
	Text            string  `json:"text"`
	FontSize        float64 `json:"font_size"`
	FontWeight      string  `json:"font_weight"`
	Color           string  `json:"color"`
	BackgroundColor string  `json:"background_color"`
	TextAlign       string  `json:"text_align"`
	BorderRadius    float64 `json:"border_radius"`
}

// IsEnabled reports whether the slide takes part in exports.
// Slides without an explicit flag are enabled.
func (s *Slide) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// ActiveSlides returns the enabled slides in stored order.
// The returned slice shares slide values with p but not its backing array.
func (p *Project) ActiveSlides() []Slide {
	out := make([]Slide, 0, len(p.Slides))
	for _, s := range p.Slides {
		if s.IsEnabled() {
			out = append(out, s)
		}
	}
	return out
}

// SlideByID returns the slide with the given id among all slides.
func (p *Project) SlideByID(id string) (*Slide, bool) {
	for i := range p.Slides {
		if p.Slides[i].ID == id {
			return &p.Slides[i], true
		}
	}
	return nil, false
}

// AnalyticsEnabled reports the stored analytics flag, defaulting to off.
func (p *Project) AnalyticsEnabled() bool {
	return p.EnableAnalytics != nil && *p.EnableAnalytics
}

// IsStandard reports whether the project uses the 4:3 preset.
func (p *Project) IsStandard() bool {
	return p.AspectRatio == AspectStandard
}
