package cli

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/ingest"
	"github.com/matzehuels/slidelinker/pkg/progress"
	"github.com/matzehuels/slidelinker/pkg/project"
)

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var (
		dir string
		dpi int
	)

	cmd := &cobra.Command{
		Use:   "import <deck.pdf|deck.pptx>",
		Short: "Rasterize a PDF or PowerPoint deck into a new project",
		Long: `Rasterize every page of a deck into PNG slides and write a project.json
next to them. PDFs need pdftoppm (poppler-utils); PowerPoint and ODP decks
are first converted with LibreOffice (soffice).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				base := filepath.Base(args[0])
				dir = strings.TrimSuffix(base, filepath.Ext(base))
			}
			return runImport(cmd.Context(), args[0], dir, dpi)
		},
	}

	cmd.Flags().StringVarP(&dir, "output", "o", "", "project directory (default: deck name)")
	cmd.Flags().IntVar(&dpi, "dpi", ingest.DefaultDPI, "rasterization resolution")

	return cmd
}

func runImport(ctx context.Context, source, dir string, dpi int) error {
	logger := loggerFromContext(ctx)

	projectPath := filepath.Join(dir, project.FileName)
	if _, err := os.Stat(projectPath); err == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists; choose another --output", projectPath)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapPath(errors.ErrCodeOutputWrite, err, dir, "create project directory")
	}

	sw := newStopwatch(logger)
	spinner := newSpinnerWithContext(ctx, "Importing slides...")
	spinner.Start()

	im := &ingest.Importer{
		DPI: dpi,
		Progress: progress.Multi(spinner, progress.Func(func(e progress.Event) {
			logger.Debug("import", "step", e.Message, "current", e.Current, "total", e.Total)
		})),
	}
	p, err := im.Import(ctx, source, dir)
	spinner.Stop()
	if err != nil {
		return err
	}
	sw.done("Imported " + pluralSlides(len(p.Slides)))

	printSuccess("Imported %s (%s)", pluralSlides(len(p.Slides)), p.AspectRatio)
	printFile(projectPath)
	printNewline()
	printNextStep("Export it", "slidelinker export "+projectPath)
	return nil
}

func pluralSlides(n int) string {
	if n == 1 {
		return "1 slide"
	}
	return strconv.Itoa(n) + " slides"
}
