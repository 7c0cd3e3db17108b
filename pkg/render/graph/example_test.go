package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render/graph"
)

func ExampleToDOT() {
	p := &project.Project{
		AspectRatio: project.AspectWide,
		Slides: []project.Slide{
			{ID: "intro", Index: 0, Label: "Intro", IsMain: true, Hotspots: []project.Hotspot{
				{ID: "h", LinkType: project.LinkSlide, TargetID: "detail"},
			}},
			{ID: "detail", Index: 1, Label: "Detail"},
		},
	}

	dot := graph.ToDOT(p, graph.Options{})
	fmt.Println(strings.Contains(dot, `"intro" -> "detail"`))
	// Output:
	// true
}
