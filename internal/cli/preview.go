package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelinker/internal/preview"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "preview <project.json>",
		Short: "Serve the compiled HTML locally",
		Long: `Compile the project to HTML and serve it until interrupted.

POST /reload recompiles after the project or its images change. A failed
reload keeps serving the last good deck.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Preview.Addr
			}
			return c.runPreview(cmd.Context(), args[0], addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else "+preview.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := preview.New(runner, path, logger)
	if err := srv.Reload(ctx); err != nil {
		return err
	}

	printSuccess("Serving %s", StyleValue.Render(path))
	printKeyValue("URL", StyleLink.Render("http://"+addr))
	printDetail("Press Ctrl+C to stop")

	err = srv.ListenAndServe(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
