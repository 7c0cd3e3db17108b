package graph

import (
	"strings"
	"testing"

	"github.com/matzehuels/slidelinker/pkg/project"
)

func sampleProject() *project.Project {
	return &project.Project{
		AspectRatio: project.AspectWide,
		Slides: []project.Slide{
			{ID: "s1", Index: 0, Label: "Intro", IsMain: true, Hotspots: []project.Hotspot{
				{ID: "h1", LinkType: project.LinkSlide, TargetID: "d1", Tooltip: "details"},
				{ID: "h2", LinkType: project.LinkURL, URL: "https://example.com"},
				{ID: "h3", LinkType: project.LinkURL, URL: "https://example.com"},
				{ID: "h4", LinkType: project.LinkSlide, TargetID: "slide-999"},
			}},
			{ID: "s2", Index: 1, Label: "Outro", IsMain: true},
			{ID: "d1", Index: 2, Label: "Detail"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleProject(), Options{})

	for _, want := range []string{
		"digraph G",
		`"s1" [label="Intro", shape=box`,
		`"d1" [label="Detail", shape=ellipse`,
		`"s1" -> "d1" [color="#1f77b4", label="details"]`,
		`"url1" [shape=note`,
		`"missing:slide-999"`,
		`"s1" -> "missing:slide-999" [style=dashed, color=red]`,
		`"s1" -> "s2" [style=dotted`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\n%s", want, dot)
		}
	}
	if strings.Count(dot, `[shape=note`) != 1 {
		t.Error("repeated URL should share one node")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sampleProject(), Options{Detailed: true})
	if !strings.Contains(dot, `hotspots: 4`) {
		t.Error("detailed output missing hotspot count")
	}
}

func TestToDOT_SkipsDisabled(t *testing.T) {
	p := sampleProject()
	off := false
	p.Slides[2].Enabled = &off

	dot := ToDOT(p, Options{})
	if strings.Contains(dot, `"d1" [`) {
		t.Error("disabled slide rendered as node")
	}
	if !strings.Contains(dot, `"missing:d1"`) {
		t.Error("link to disabled slide should be shown as missing")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}
}
