package project

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestMerge(t *testing.T) {
	dst := validProject()
	src := &Project{
		SourceFile:  "/decks/appendix.pdf",
		AspectRatio: AspectWide,
		Slides: []Slide{
			{ID: "x", Index: 0, Label: "X", IsMain: true, ImagePath: "slides/slide-001.jpg",
				Hotspots: []Hotspot{
					{ID: "hx", LinkType: LinkSlide, TargetID: "y"},
					{ID: "hout", LinkType: LinkSlide, TargetID: "elsewhere"},
				},
				TextOverlays: []TextOverlay{{ID: "t1", Text: "note"}},
			},
			{ID: "y", Index: 1, Label: "Y", IsMain: true, ImagePath: "slides/slide-002.png"},
		},
	}

	got, renames, err := Merge(dst, src, MergeOptions{NewID: sequentialIDs()})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if len(dst.Slides) != 2 {
		t.Errorf("dst mutated: %d slides", len(dst.Slides))
	}
	if len(got.Slides) != 4 {
		t.Fatalf("len(Slides) = %d, want 4", len(got.Slides))
	}

	x, y := got.Slides[2], got.Slides[3]
	if x.ID != "id-1" || y.ID != "id-2" {
		t.Errorf("ids = %q, %q", x.ID, y.ID)
	}
	if x.Index != 2 || y.Index != 3 {
		t.Errorf("indices = %d, %d", x.Index, y.Index)
	}
	if x.IsMain || y.IsMain {
		t.Error("merged slides must be sub slides")
	}
	if x.Hotspots[0].TargetID != "id-2" {
		t.Errorf("internal target = %q, want id-2", x.Hotspots[0].TargetID)
	}
	if x.Hotspots[1].TargetID != "elsewhere" {
		t.Errorf("external target = %q, want unchanged", x.Hotspots[1].TargetID)
	}
	if x.Hotspots[0].ID == "hx" || x.TextOverlays[0].ID == "t1" {
		t.Error("hotspot and overlay ids must be regenerated")
	}
	if x.SourceFile != "/decks/appendix.pdf" {
		t.Errorf("SourceFile = %q", x.SourceFile)
	}

	wantRenames := []ImageRename{
		{From: "slides/slide-001.jpg", To: "slides/slide-003.jpg"},
		{From: "slides/slide-002.png", To: "slides/slide-004.png"},
	}
	if diff := cmp.Diff(wantRenames, renames); diff != "" {
		t.Errorf("renames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/decks/appendix.pdf"}, got.SourceFiles); diff != "" {
		t.Errorf("SourceFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeEmptySource(t *testing.T) {
	if _, _, err := Merge(validProject(), &Project{}, MergeOptions{}); err == nil {
		t.Error("expected error merging empty project")
	}
}
