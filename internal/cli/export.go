package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelinker/pkg/pipeline"
	"github.com/matzehuels/slidelinker/pkg/project"
	"github.com/matzehuels/slidelinker/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format    string
	output    string
	workers   int
	analytics bool
	noCache   bool
	refresh   bool
	tui       bool
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <project.json>",
		Short: "Compile a project to interactive HTML or PDF",
		Long: `Compile a project to a single self-contained HTML file or to a PDF.

HTML output stacks the main slides as a scrolling deck and opens linked
slides as modals with back navigation. PDF output keeps every enabled slide
as one page, main slides first.`,
		Example: `  slidelinker export deck/project.json
  slidelinker export deck/project.json -f pdf -o handout.pdf
  slidelinker export deck/project.json --analytics --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = c.Config.Export.Format
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = c.Config.Export.Workers
			}
			po := pipeline.Options{
				Format:  opts.format,
				Workers: opts.workers,
				Refresh: opts.refresh,
			}
			if cmd.Flags().Changed("analytics") {
				po.Analytics = &opts.analytics
			} else if opts.format == render.FormatHTML {
				po.Analytics = c.Config.Export.Analytics
			}
			return c.runExport(cmd.Context(), args[0], po, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: html, pdf (default from config, else html)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <project dir>/presentation.<format>)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel image decoders for pdf (0 = number of CPUs)")
	cmd.Flags().BoolVar(&opts.analytics, "analytics", false, "embed the analytics tracker (html only)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompile even when a cached artifact exists")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show an interactive progress view")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, path string, po pipeline.Options, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	p, err := project.Load(path)
	if err != nil {
		return err
	}
	po.BaseDir = filepath.Dir(path)
	po.Output = opts.output
	if po.Output == "" {
		po.Output = defaultOutput(path, po.Format)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var res *pipeline.Result
	if opts.tui {
		res, err = runExportTUI(ctx, runner, p, po)
	} else {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s...", po.Format))
		runner.Progress = spinner
		spinner.Start()
		res, err = runner.Execute(ctx, p, po)
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	logger.Debug("export finished", "output", res.Output, "stats", res.Stats.String())
	printSuccess("Exported %s", StyleHighlight.Render(po.Format))
	printFile(res.Output)
	printStats(res.Stats, res.CacheHit)
	printWarnings(res.Warnings)
	return nil
}

// defaultOutput places the artifact next to the project file.
func defaultOutput(projectPath, format string) string {
	if format == "" {
		format = pipeline.DefaultFormat
	}
	return filepath.Join(filepath.Dir(projectPath), "presentation"+render.Ext(format))
}
