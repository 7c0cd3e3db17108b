package project_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/slidelinker/pkg/project"
)

func ExampleCheckLinks() {
	p, _ := project.Read(strings.NewReader(`{
	  "aspect_ratio": "16:9",
	  "slides": [
	    {"id": "slide-001", "index": 0, "is_main": true, "image_path": "slides/slide-001.png",
	     "hotspots": [{"id": "h1", "x": 0, "y": 0, "w": 10, "h": 10,
	                   "link_type": "slide", "target_id": "slide-999"}]}
	  ]
	}`))

	for _, w := range project.CheckLinks(p.ActiveSlides()) {
		fmt.Println(w)
	}
	// Output:
	// slide slide-001: hotspot h1 targets unknown slide "slide-999"
}
