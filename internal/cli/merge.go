package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelinker/pkg/errors"
	"github.com/matzehuels/slidelinker/pkg/project"
)

// mergeCommand creates the merge command.
func (c *CLI) mergeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge <project.json> <other/project.json>",
		Short: "Append another project's slides as sub slides",
		Long: `Append every slide of a second project to the first one.

Merged slides get fresh ids, become sub slides, and keep their links to each
other. Their images are copied into the first project's slides directory.
The first project is rewritten in place unless --output is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context(), args[0], args[1], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the merged project here instead of overwriting the first")

	return cmd
}

func runMerge(ctx context.Context, dstPath, srcPath, output string) error {
	logger := loggerFromContext(ctx)

	dst, err := project.Load(dstPath)
	if err != nil {
		return err
	}
	src, err := project.Load(srcPath)
	if err != nil {
		return err
	}

	merged, renames, err := project.Merge(dst, src, project.MergeOptions{})
	if err != nil {
		return err
	}
	merged.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if output == "" {
		output = dstPath
	}
	dstDir, srcDir := filepath.Dir(output), filepath.Dir(srcPath)
	for _, r := range renames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := copyImage(filepath.Join(srcDir, filepath.FromSlash(r.From)), filepath.Join(dstDir, filepath.FromSlash(r.To))); err != nil {
			return err
		}
		logger.Debug("copied slide image", "from", r.From, "to", r.To)
	}

	if err := project.Save(output, merged); err != nil {
		return err
	}

	printSuccess("Merged %d slides from %s", len(renames), StyleValue.Render(srcPath))
	printFile(output)
	return nil
}

func copyImage(from, to string) error {
	data, err := os.ReadFile(from)
	if err != nil {
		return errors.WrapPath(errors.ErrCodeImageRead, err, from, "read slide image")
	}
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return errors.WrapPath(errors.ErrCodeOutputWrite, err, to, "create slides directory")
	}
	return project.WriteFileAtomic(to, data, 0o644)
}
