package html

import (
	"bytes"
	"context"
	"path"
	"strconv"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/imagecodec"
	"github.com/matzehuels/slidelinker/pkg/navigation"
	"github.com/matzehuels/slidelinker/pkg/progress"
	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render"
)

// DefaultTitle is used when the project has no source file.
const DefaultTitle = "Slide Linker Presentation"

// BackLabel is the text of the modal back button.
const BackLabel = "← Back"

// Options configure HTML compilation.
type Options struct {
	// Analytics overrides the project's enable_analytics flag when set.
	Analytics *bool
	// Progress receives one event per slide rendering.
	Progress progress.Sink
}

// Render compiles p into an HTML document, reading slide images from src.
// It returns the document bytes and any link warnings for hotspots that
// were rendered inert. p is not modified.
//
// An image that cannot be read or decoded aborts the compile with an
// IMAGE_READ or IMAGE_DECODE error naming the image path.
func Render(ctx context.Context, p *project.Project, src imagecodec.Source, opts Options) ([]byte, []project.Warning, error) {
	c := compiler{
		ctx:    ctx,
		src:    src,
		sink:   progress.OrDiscard(opts.Progress),
		aspect: aspectCSS(p.AspectRatio),
		images: make(map[string]string),
	}

	slides := p.ActiveSlides()
	plan := navigation.Classify(slides)
	c.ids = make(map[string]bool, len(slides))
	for _, s := range slides {
		c.ids[s.ID] = true
	}
	c.total = plan.RenderCount()

	sections := elem(atom.Main, attr{"class", "slides"})
	for i := range plan.Primary {
		sec, err := c.mainSlide(&plan.Primary[i])
		if err != nil {
			return nil, nil, err
		}
		add(sections, sec)
	}

	modals := elem(atom.Div, attr{"class", "modals"})
	for i := range plan.Modals {
		m, err := c.modal(&plan.Modals[i])
		if err != nil {
			return nil, nil, err
		}
		add(modals, m)
	}

	analytics := p.AnalyticsEnabled()
	if opts.Analytics != nil {
		analytics = *opts.Analytics
	}

	doc := document(Title(p), sections, dotNav(plan.Primary), modals, analytics)
	var buf bytes.Buffer
	if err := xhtml.Render(&buf, doc); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeDocumentAssembly, err, "render html document")
	}
	buf.WriteByte('\n')

	return buf.Bytes(), InertLinks(slides), nil
}

// Compile renders p with images resolved against baseDir and writes the
// document to outputPath. Nothing is written unless rendering succeeds.
func Compile(ctx context.Context, p *project.Project, baseDir, outputPath string, opts Options) ([]project.Warning, error) {
	data, warnings, err := Render(ctx, p, imagecodec.Dir(baseDir), opts)
	if err != nil {
		return nil, err
	}
	if err := render.WriteOutput(outputPath, data); err != nil {
		return nil, err
	}
	return warnings, nil
}

// Title derives the document title from the project's source file name.
func Title(p *project.Project) string {
	name := path.Base(strings.ReplaceAll(p.SourceFile, `\`, "/"))
	stem := strings.TrimSuffix(name, path.Ext(name))
	if p.SourceFile == "" || stem == "" || stem == "." || stem == "/" {
		return DefaultTitle
	}
	return stem
}

// ModalID returns the element id of a slide's modal.
func ModalID(slideID string) string {
	return "modal-" + slideID
}

type compiler struct {
	ctx    context.Context
	src    imagecodec.Source
	sink   progress.Sink
	aspect string
	ids    map[string]bool
	images map[string]string // slide id -> data URI
	done   int
	total  int
}

func (c *compiler) dataURI(s *project.Slide) (string, error) {
	if uri, ok := c.images[s.ID]; ok {
		return uri, nil
	}
	data, err := c.src.ReadImage(c.ctx, s.ImagePath)
	if err != nil {
		return "", err
	}
	if _, _, err := imagecodec.DecodeConfig(data, s.ImagePath); err != nil {
		return "", err
	}
	uri := imagecodec.DataURI(data)
	c.images[s.ID] = uri
	return uri, nil
}

func (c *compiler) step(s *project.Slide) {
	c.done++
	c.sink.Report(progress.Event{Current: c.done, Total: c.total, Message: s.Label})
}

func (c *compiler) mainSlide(s *project.Slide) (*xhtml.Node, error) {
	uri, err := c.dataURI(s)
	if err != nil {
		return nil, err
	}
	sec := elem(atom.Section, attr{"class", "main-slide"}, attr{"id", s.ID})
	add(sec, c.surface(atom.Div, "slide-container", "position:relative;width:100%;aspect-ratio:"+c.aspect+";", s, uri))
	c.step(s)
	return sec, nil
}

func (c *compiler) modal(s *project.Slide) (*xhtml.Node, error) {
	uri, err := c.dataURI(s)
	if err != nil {
		return nil, err
	}
	overlay := elem(atom.Div, attr{"class", "modal-overlay"}, attr{"id", ModalID(s.ID)})
	back := add(elem(atom.Button, attr{"type", "button"}, attr{"class", "back-btn"}, attr{"data-action", "back"}), text(BackLabel))
	add(overlay, back, c.surface(atom.Div, "modal-content", "position:relative;aspect-ratio:"+c.aspect+";", s, uri))
	c.step(s)
	return overlay, nil
}

// surface renders the image with its hotspot and text overlay layers.
func (c *compiler) surface(a atom.Atom, class, style string, s *project.Slide, uri string) *xhtml.Node {
	box := elem(a, attr{"class", class}, attr{"style", style})
	add(box, elem(atom.Img, attr{"src", uri}, attr{"alt", s.Label}))

	layer := elem(atom.Div, attr{"class", "hotspot-layer"})
	for _, h := range s.Hotspots {
		add(layer, c.hotspot(h))
	}
	add(box, layer)

	for _, o := range s.TextOverlays {
		add(box, add(elem(atom.Div, attr{"class", "text-overlay"}, attr{"style", overlayCSS(o)}), text(o.Text)))
	}
	return box
}

func (c *compiler) hotspot(h project.Hotspot) *xhtml.Node {
	attrs := []attr{{"class", "hotspot"}}
	if h.LinkType == project.LinkURL {
		attrs = append(attrs, attr{"data-type", "url"})
	}

	switch {
	case !project.Resolvable(h, c.ids):
		attrs[0].val = "hotspot hotspot-dead"
		attrs = append(attrs, attr{"data-action", "none"}, attr{"aria-disabled", "true"})
	case h.LinkType == project.LinkURL:
		attrs = append(attrs, attr{"data-action", "open-url"}, attr{"data-url", h.URL})
	default:
		attrs = append(attrs,
			attr{"data-action", "open-slide"},
			attr{"data-target", h.TargetID},
			attr{"data-modal", ModalID(h.TargetID)},
		)
	}

	attrs = append(attrs, attr{"data-hotspot", h.ID})
	if h.Tooltip != "" {
		attrs = append(attrs, attr{"title", h.Tooltip})
	}
	attrs = append(attrs, attr{"style", hotspotCSS(h)}, attr{"role", "button"}, attr{"tabindex", "0"})

	n := elem(atom.Div, attrs...)
	if h.Style != nil && h.Style.Icon != "" {
		add(n, add(elem(atom.Span, attr{"class", "hotspot-icon"}), text(h.Style.Icon)))
	}
	return n
}

func dotNav(primary []project.Slide) *xhtml.Node {
	nav := elem(atom.Nav, attr{"class", "dot-nav"}, attr{"aria-label", "Slides"})
	for i, s := range primary {
		attrs := []attr{{"type", "button"}, {"data-index", strconv.Itoa(i)}, {"aria-label", s.Label}}
		if i == 0 {
			attrs = append(attrs, attr{"class", "active"})
		}
		add(nav, elem(atom.Button, attrs...))
	}
	return nav
}

func document(title string, sections, nav, modals *xhtml.Node, analytics bool) *xhtml.Node {
	head := add(elem(atom.Head),
		elem(atom.Meta, attr{"charset", "utf-8"}),
		elem(atom.Meta, attr{"name", "viewport"}, attr{"content", "width=device-width, initial-scale=1"}),
		add(elem(atom.Title), text(title)),
		add(elem(atom.Style), raw(deckCSS)),
	)

	body := add(elem(atom.Body), sections, nav, modals, add(elem(atom.Script), raw(navScript)))
	if analytics {
		add(body, add(elem(atom.Script, attr{"data-role", "analytics"}), raw(analyticsScript)))
	}

	root := &xhtml.Node{Type: xhtml.DocumentNode}
	return add(root, doctype(), add(elem(atom.Html, attr{"lang", "en"}), head, body))
}

// InertLinks reports every hotspot among slides that a compiled document
// renders inert. Self links are followable and not reported.
func InertLinks(slides []project.Slide) []project.Warning {
	var out []project.Warning
	for _, w := range project.CheckLinks(slides) {
		if w.Kind != project.WarnSelfLink {
			out = append(out, w)
		}
	}
	return out
}
