package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidelinker/pkg/navigation"
	"github.com/matzehuels/slidelinker/pkg/project"
)

// Roles reported by inspect for each slide.
const (
	roleSection      = "section"
	roleSectionModal = "section+modal"
	roleModal        = "modal"
	roleDisabled     = "disabled"
)

// slideRow is one line of the inspect listing.
type slideRow struct {
	ID       string `json:"id"`
	Index    int    `json:"index"`
	Label    string `json:"label"`
	Main     bool   `json:"is_main"`
	Hotspots int    `json:"hotspots"`
	Overlays int    `json:"text_overlays"`
	Role     string `json:"role"`
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <project.json>",
		Short: "List slides and how the HTML export renders them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the listing as JSON")

	return cmd
}

func runInspect(ctx context.Context, path string, asJSON bool) error {
	p, err := project.Load(path)
	if err != nil {
		return err
	}
	rows := inspectRows(p)
	loggerFromContext(ctx).Debug("inspected project", "slides", len(rows))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	printKeyValue("Aspect", p.AspectRatio)
	printKeyValue("Source", p.SourceFile)
	printKeyValue("Slides", strconv.Itoa(len(p.Slides)))
	printNewline()
	fmt.Println(slideTable(rows))
	return nil
}

// inspectRows lists every slide in stored order with its HTML role.
func inspectRows(p *project.Project) []slideRow {
	plan := navigation.Classify(p.ActiveSlides())
	primary := make(map[string]bool, len(plan.Primary))
	for _, s := range plan.Primary {
		primary[s.ID] = true
	}

	rows := make([]slideRow, 0, len(p.Slides))
	for _, s := range p.Slides {
		role := roleDisabled
		if s.IsEnabled() {
			switch modal := plan.IsModal(s.ID); {
			case primary[s.ID] && modal:
				role = roleSectionModal
			case primary[s.ID]:
				role = roleSection
			default:
				role = roleModal
			}
		}
		rows = append(rows, slideRow{
			ID:       s.ID,
			Index:    s.Index,
			Label:    s.Label,
			Main:     s.IsMain,
			Hotspots: len(s.Hotspots),
			Overlays: len(s.TextOverlays),
			Role:     role,
		})
	}
	return rows
}

func slideTable(rows []slideRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		main := "sub"
		if r.Main {
			main = "main"
		}
		data[i] = []string{
			strconv.Itoa(r.Index), r.ID, r.Label, main,
			strconv.Itoa(r.Hotspots), strconv.Itoa(r.Overlays), r.Role,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "ID", "Label", "Kind", "Hotspots", "Overlays", "Rendered as").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(rows) && rows[row].Role == roleDisabled {
				return base.Foreground(colorDim)
			}
			if col == 6 {
				return base.Foreground(colorCyan)
			}
			return base
		}).
		String()
}
