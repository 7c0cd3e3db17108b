package html

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	xhtml "golang.org/x/net/html"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/imagecodec"
	"github.com/matzehuels/slidelinker/pkg/progress"
	"github.com/matzehuels/slidelinker/pkg/project"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 9))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// images returns a source holding a valid PNG for every slide.
func images(t *testing.T, p *project.Project) imagecodec.Memory {
	t.Helper()
	data := pngBytes(t)
	m := imagecodec.Memory{}
	for _, s := range p.Slides {
		m[s.ImagePath] = data
	}
	return m
}

func slide(id string, index int, main bool, hotspots ...project.Hotspot) project.Slide {
	return project.Slide{
		ID:        id,
		Index:     index,
		Label:     "Label " + id,
		IsMain:    main,
		ImagePath: "slides/" + id + ".png",
		Hotspots:  hotspots,
	}
}

func twoSlideProject() *project.Project {
	return &project.Project{
		Version:     project.Version,
		SourceFile:  "/decks/Quarterly Review.pdf",
		AspectRatio: project.AspectWide,
		Slides: []project.Slide{
			slide("slide-001", 0, true, project.Hotspot{
				ID: "h1", Rect: project.Rect{X: 10, Y: 20, W: 30, H: 15},
				LinkType: project.LinkSlide, TargetID: "slide-002",
			}),
			slide("slide-002", 1, true),
		},
	}
}

func renderDoc(t *testing.T, p *project.Project, opts Options) (string, []project.Warning) {
	t.Helper()
	out, warnings, err := Render(context.Background(), p, images(t, p), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out), warnings
}

func parse(t *testing.T, doc string) *xhtml.Node {
	t.Helper()
	n, err := xhtml.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return n
}

func findAll(n *xhtml.Node, match func(*xhtml.Node) bool) []*xhtml.Node {
	var out []*xhtml.Node
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func getAttr(n *xhtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(class string) func(*xhtml.Node) bool {
	return func(n *xhtml.Node) bool {
		if n.Type != xhtml.ElementNode {
			return false
		}
		for _, c := range strings.Fields(getAttr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func tag(name string) func(*xhtml.Node) bool {
	return func(n *xhtml.Node) bool { return n.Type == xhtml.ElementNode && n.Data == name }
}

func TestRenderScenario(t *testing.T) {
	out, warnings := renderDoc(t, twoSlideProject(), Options{})

	for _, want := range []string{
		`<section class="main-slide" id="slide-001">`,
		`<section class="main-slide" id="slide-002">`,
		`<div class="modal-overlay" id="modal-slide-002">`,
		`<title>Quarterly Review</title>`,
	} {
		if strings.Count(out, want) != 1 {
			t.Errorf("output contains %q %d times, want 1", want, strings.Count(out, want))
		}
	}
	if !strings.Contains(out, "aspect-ratio:16/9;") {
		t.Error("missing 16/9 aspect ratio")
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	doc := parse(t, out)
	if got := len(findAll(doc, hasClass("main-slide"))); got != 2 {
		t.Errorf("main sections = %d, want 2", got)
	}
	// slide-001 owns a hotspot and slide-002 is targeted.
	if got := len(findAll(doc, hasClass("modal-overlay"))); got != 2 {
		t.Errorf("modals = %d, want 2", got)
	}

	dots := findAll(doc, func(n *xhtml.Node) bool {
		return n.Type == xhtml.ElementNode && n.Data == "button" && n.Parent != nil && hasClass("dot-nav")(n.Parent)
	})
	if len(dots) != 2 {
		t.Fatalf("dot buttons = %d, want 2", len(dots))
	}
	if getAttr(dots[0], "class") != "active" || getAttr(dots[1], "class") != "" {
		t.Error("only the first dot should be active")
	}
}

func TestRenderCountsMatchClassification(t *testing.T) {
	p := &project.Project{
		AspectRatio: project.AspectStandard,
		Slides: []project.Slide{
			slide("a", 0, true),
			slide("b", 1, true, project.Hotspot{ID: "x", LinkType: project.LinkSlide, TargetID: "s1"}),
			slide("s1", 2, false, project.Hotspot{ID: "y", LinkType: project.LinkSlide, TargetID: "a"}),
			slide("s2", 3, false),
			slide("c", 4, true),
		},
	}

	var events []progress.Event
	out, _ := renderDoc(t, p, Options{Progress: progress.Func(func(e progress.Event) { events = append(events, e) })})
	doc := parse(t, out)

	if got := len(findAll(doc, hasClass("main-slide"))); got != 3 {
		t.Errorf("main sections = %d, want 3", got)
	}
	// s1, s2, then a (targeted) and b (owns a hotspot).
	modals := findAll(doc, hasClass("modal-overlay"))
	var ids []string
	for _, m := range modals {
		ids = append(ids, getAttr(m, "id"))
	}
	want := "modal-s1 modal-s2 modal-a modal-b"
	if strings.Join(ids, " ") != want {
		t.Errorf("modal ids = %v, want %s", ids, want)
	}
	if !strings.Contains(out, "aspect-ratio:4/3;") {
		t.Error("missing 4/3 aspect ratio")
	}

	if len(events) != 7 {
		t.Fatalf("progress events = %d, want 7", len(events))
	}
	for i, e := range events {
		if e.Current != i+1 || e.Total != 7 {
			t.Errorf("event %d = %+v", i, e)
		}
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	const evil = `<script>alert(1)</script>`
	p := twoSlideProject()
	p.SourceFile = "/decks/" + evil + ".pdf"
	p.Slides[0].Label = evil
	p.Slides[0].Hotspots[0].Tooltip = evil
	p.Slides[1].TextOverlays = []project.TextOverlay{{
		ID: "t1", Rect: project.Rect{W: 50, H: 10}, Text: evil + ` & "quotes" 'too'`,
		FontSize: 24, FontWeight: "bold", Color: `red;}</style><script>`, BackgroundColor: "#ffffff", TextAlign: "center",
	}}

	out, _ := renderDoc(t, p, Options{})

	if strings.Contains(out, "<script>alert") {
		t.Fatal("unescaped script tag in output")
	}
	if !strings.Contains(out, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("escaped form missing")
	}

	doc := parse(t, out)
	if got := len(findAll(doc, tag("script"))); got != 1 {
		t.Errorf("script elements = %d, want 1", got)
	}
	overlays := findAll(doc, hasClass("text-overlay"))
	if len(overlays) == 0 {
		t.Fatal("no text overlay rendered")
	}
	if got := overlays[0].FirstChild.Data; got != evil+` & "quotes" 'too'` {
		t.Errorf("overlay text = %q", got)
	}
	if style := getAttr(overlays[0], "style"); !strings.Contains(style, "color:#000000;") {
		t.Errorf("unsafe color not replaced: %q", style)
	}
}

func TestRenderHotspotActions(t *testing.T) {
	p := twoSlideProject()
	p.Slides[1].Hotspots = []project.Hotspot{
		{ID: "url", Rect: project.Rect{X: 1, Y: 2, W: 3, H: 4}, LinkType: project.LinkURL, URL: "https://example.com/?a=1&b=2"},
		{ID: "dead", LinkType: project.LinkSlide, TargetID: "slide-999"},
		{ID: "js", LinkType: project.LinkURL, URL: "javascript:alert(1)"},
		{ID: "tel", LinkType: project.LinkURL, URL: "tel:+15551234"},
		{ID: "ftp", LinkType: project.LinkURL, URL: "ftp://files.example.com/deck.zip"},
		{ID: "styled", LinkType: project.LinkSlide, TargetID: "slide-001",
			Style: &project.HotspotStyle{Color: "#ff8000", Opacity: 0.25, BorderRadius: 50, Icon: "★"}},
	}

	out, warnings := renderDoc(t, p, Options{})
	doc := parse(t, out)

	byID := map[string]*xhtml.Node{}
	for _, n := range findAll(doc, hasClass("hotspot")) {
		if _, seen := byID[getAttr(n, "data-hotspot")]; !seen {
			byID[getAttr(n, "data-hotspot")] = n
		}
	}

	h1 := byID["h1"]
	if getAttr(h1, "data-action") != "open-slide" || getAttr(h1, "data-modal") != "modal-slide-002" {
		t.Errorf("slide hotspot attrs = %v", h1.Attr)
	}

	u := byID["url"]
	if getAttr(u, "data-action") != "open-url" || getAttr(u, "data-url") != "https://example.com/?a=1&b=2" {
		t.Errorf("url hotspot attrs = %v", u.Attr)
	}
	if getAttr(u, "data-type") != "url" {
		t.Error("url hotspot missing data-type")
	}
	if style := getAttr(u, "style"); style != "left:1%;top:2%;width:3%;height:4%;" {
		t.Errorf("default style = %q", style)
	}

	for id, want := range map[string]string{"tel": "tel:+15551234", "ftp": "ftp://files.example.com/deck.zip"} {
		n := byID[id]
		if getAttr(n, "data-action") != "open-url" || getAttr(n, "data-url") != want || hasClass("hotspot-dead")(n) {
			t.Errorf("%s hotspot should open its URL: %v", id, n.Attr)
		}
	}

	for _, id := range []string{"dead", "js"} {
		n := byID[id]
		if getAttr(n, "data-action") != "none" || !hasClass("hotspot-dead")(n) {
			t.Errorf("%s hotspot should be inert: %v", id, n.Attr)
		}
	}
	if strings.Contains(out, "javascript:") {
		t.Error("rejected URL leaked into output")
	}

	s := byID["styled"]
	if style := getAttr(s, "style"); !strings.Contains(style, "border-color:#ff8000;background:rgba(255,128,0,0.25);border-radius:50%;") {
		t.Errorf("styled hotspot css = %q", style)
	}
	if icons := findAll(s, hasClass("hotspot-icon")); len(icons) != 1 || icons[0].FirstChild.Data != "★" {
		t.Error("icon not rendered")
	}

	var dangling bool
	for _, w := range warnings {
		if w.Kind == project.WarnDanglingTarget && w.Target == "slide-999" {
			dangling = true
		}
	}
	if !dangling {
		t.Errorf("warnings = %v, want dangling slide-999", warnings)
	}
	if len(warnings) != 2 {
		t.Errorf("len(warnings) = %d, want 2", len(warnings))
	}
}

func TestRenderAnalytics(t *testing.T) {
	on, off := true, false
	tests := []struct {
		name    string
		project *bool
		option  *bool
		want    bool
	}{
		{"default off", nil, nil, false},
		{"project on", &on, nil, true},
		{"option overrides on", &on, &off, false},
		{"option overrides off", nil, &on, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := twoSlideProject()
			p.EnableAnalytics = tt.project
			out, _ := renderDoc(t, p, Options{Analytics: tt.option})
			if got := strings.Contains(out, "sl_analytics"); got != tt.want {
				t.Errorf("analytics present = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := twoSlideProject()
	on := true
	p.EnableAnalytics = &on
	src := images(t, p)

	a, _, err := Render(context.Background(), p, src, Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Render(context.Background(), p, src, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same project differ")
	}
}

func TestRenderSkipsDisabledSlides(t *testing.T) {
	p := twoSlideProject()
	disabled := false
	p.Slides[1].Enabled = &disabled

	out, warnings := renderDoc(t, p, Options{})
	if strings.Contains(out, `id="slide-002"`) {
		t.Error("disabled slide rendered")
	}
	if len(warnings) != 1 || warnings[0].Target != "slide-002" {
		t.Errorf("warnings = %v, want dangling slide-002", warnings)
	}
}

func TestRenderImageErrors(t *testing.T) {
	p := twoSlideProject()

	src := images(t, p)
	delete(src, "slides/slide-002.png")
	_, _, err := Render(context.Background(), p, src, Options{})
	if !errors.Is(err, errors.ErrCodeImageRead) || errors.GetPath(err) != "slides/slide-002.png" {
		t.Errorf("missing image error = %v", err)
	}

	src = images(t, p)
	src["slides/slide-001.png"] = []byte("garbage")
	_, _, err = Render(context.Background(), p, src, Options{})
	if !errors.Is(err, errors.ErrCodeImageDecode) || errors.GetPath(err) != "slides/slide-001.png" {
		t.Errorf("corrupt image error = %v", err)
	}
}

func TestCompile(t *testing.T) {
	p := twoSlideProject()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "slides"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := pngBytes(t)
	for _, s := range p.Slides {
		if err := os.WriteFile(filepath.Join(dir, s.ImagePath), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ctx := context.Background()
	out1 := filepath.Join(dir, "a.html")
	out2 := filepath.Join(dir, "b.html")
	if _, err := Compile(ctx, p, dir, out1, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if _, err := Compile(ctx, p, dir, out2, Options{}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	a, _ := os.ReadFile(out1)
	b, _ := os.ReadFile(out2)
	if len(a) == 0 || !bytes.Equal(a, b) {
		t.Error("compiled artifacts differ")
	}

	if err := os.Remove(filepath.Join(dir, "slides", "slide-002.png")); err != nil {
		t.Fatal(err)
	}
	failed := filepath.Join(dir, "failed.html")
	if _, err := Compile(ctx, p, dir, failed, Options{}); err == nil {
		t.Fatal("expected error for missing image")
	}
	if _, err := os.Stat(failed); !os.IsNotExist(err) {
		t.Error("output written despite failure")
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"/decks/quarterly.pdf", "quarterly"},
		{`C:\decks\intro.pptx`, "intro"},
		{"noext", "noext"},
		{"", DefaultTitle},
	}
	for _, tt := range tests {
		if got := Title(&project.Project{SourceFile: tt.source}); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}
