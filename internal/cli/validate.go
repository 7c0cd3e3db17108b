package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/imagecodec"
	"github.com/matzehuels/slidelinker/pkg/project"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var strict, skipImages bool

	cmd := &cobra.Command{
		Use:   "validate <project.json>",
		Short: "Check a project for structural errors and broken links",
		Long: `Check a project file without compiling it.

Structural problems (duplicate ids, bad rectangles, unsupported aspect
ratio, unsafe image paths) and unreadable images fail the command. Link
problems are reported as warnings unless --strict is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), args[0], strict, skipImages)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat link warnings as errors")
	cmd.Flags().BoolVar(&skipImages, "skip-images", false, "do not read slide images")

	return cmd
}

func runValidate(ctx context.Context, path string, strict, skipImages bool) error {
	logger := loggerFromContext(ctx)

	p, err := project.Load(path)
	if err != nil {
		return err
	}
	if err := project.Validate(p); err != nil {
		return err
	}

	slides := p.ActiveSlides()
	if !skipImages {
		if err := checkImages(ctx, imagecodec.Dir(filepath.Dir(path)), slides); err != nil {
			return err
		}
	}

	warnings := project.CheckLinks(slides)
	logger.Debug("validated project", "slides", len(p.Slides), "active", len(slides), "warnings", len(warnings))

	if len(warnings) == 0 {
		printSuccess("%s is valid", StyleValue.Render(path))
		printDetail("%d slides, %d enabled", len(p.Slides), len(slides))
		return nil
	}
	printWarnings(warnings)
	if strict {
		return errors.New(errors.ErrCodeInvalidProject, "%d link problem(s)", len(warnings))
	}
	printSuccess("%s is valid with %d warning(s)", StyleValue.Render(path), len(warnings))
	return nil
}

// checkImages reads every distinct image header once.
func checkImages(ctx context.Context, src imagecodec.Source, slides []project.Slide) error {
	seen := make(map[string]bool, len(slides))
	for _, s := range slides {
		if seen[s.ImagePath] {
			continue
		}
		seen[s.ImagePath] = true
		data, err := src.ReadImage(ctx, s.ImagePath)
		if err != nil {
			return fmt.Errorf("slide %s: %w", s.ID, err)
		}
		if _, _, err := imagecodec.DecodeConfig(data, s.ImagePath); err != nil {
			return fmt.Errorf("slide %s: %w", s.ID, err)
		}
	}
	return nil
}
