package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render"
	"github.com/matzehuels/slidelinker/pkg/render/graph"
)

const (
	graphSVG = "svg"
	graphDOT = "dot"
	graphPNG = "png"
)

var graphFormats = []string{graphSVG, graphDOT, graphPNG}

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	format   string
	output   string
	detailed bool
	scale    float64
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: graphSVG, scale: 2}

	cmd := &cobra.Command{
		Use:   "graph <project.json>",
		Short: "Draw the slide navigation graph",
		Long: `Draw which slides link to which as a Graphviz diagram.

Main slides are boxes chained in scroll order, sub slides are ellipses,
external links are notes, and links to missing slides are drawn dashed red.
PNG output needs rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isGraphFormat(opts.format) {
				return fmt.Errorf("invalid format: %s (must be %s)", opts.format, strings.Join(graphFormats, ", "))
			}
			return runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <project dir>/navigation.<format>)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with slide ids and hotspot counts")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func isGraphFormat(f string) bool {
	for _, g := range graphFormats {
		if f == g {
			return true
		}
	}
	return false
}

func runGraph(ctx context.Context, path string, opts graphOpts) error {
	p, err := project.Load(path)
	if err != nil {
		return err
	}

	dot := graph.ToDOT(p, graph.Options{Detailed: opts.detailed})
	var data []byte
	switch opts.format {
	case graphDOT:
		data = []byte(dot)
	case graphPNG:
		data, err = graph.RenderPNG(ctx, dot, opts.scale)
	default:
		data, err = graph.RenderSVG(ctx, dot)
	}
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = filepath.Join(filepath.Dir(path), "navigation."+opts.format)
	}
	if err := render.WriteOutput(out, data); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("wrote navigation graph", "format", opts.format, "bytes", len(data))

	printSuccess("Generated %s graph", StyleHighlight.Render(opts.format))
	printFile(out)
	return nil
}
