package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// listOptions narrow and shape the static listing.
type listOptions struct {
	category string
	priority string
	group    bool // list grouped by life/work section
}

func newListCmd(app *App) *cobra.Command {
	var opt listOptions
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Example: "  tada ls\n  tada ls --category work\n  tada ls --priority high --group",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.teardown()
			if err := app.setup(false); err != nil {
				return err
			}
			return app.list(opt)
		},
	}
	cmd.Flags().StringVarP(&opt.category, "category", "c", "", "only this category (life, work)")
	cmd.Flags().StringVarP(&opt.priority, "priority", "p", "", "only this priority (high, medium, low, complete)")
	cmd.Flags().BoolVarP(&opt.group, "group", "g", false, "group by category")
	return cmd
}

func (a *App) list(opt listOptions) error {
	todos := a.store.All()
	if opt.category != "" {
		c, err := model.ParseCategory(opt.category)
		if err != nil {
			return usageError{err}
		}
		todos = a.store.FilterByCategory(c)
	}
	if opt.priority != "" {
		p, err := model.ParsePriority(opt.priority)
		if err != nil {
			return usageError{err}
		}
		todos = keepPriority(todos, p)
	}

	// Header + progress
	sum := model.Counts(todos)
	t := ui.Current()
	lines := []string{
		ui.Header("Todos", sum),
		t.Muted.Render(a.Now().Format(a.cfg.DateFormat)),
		t.Muted.Render(ui.ProgressBar(sum.Complete, sum.Total, 28)),
		"",
	}

	if opt.group {
		lines = append(lines, groupLines(todos)...)
	} else {
		lines = append(lines, ui.FlatLines(todos)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: run `tada` in a terminal to add and edit"))
	ui.Panel(a.Out, lines)
	a.log.Debug("listed", "shown", len(todos), "group", opt.group)
	return nil
}

func keepPriority(todos []model.Todo, p model.Priority) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, td := range todos {
		if td.Priority == p {
			out = append(out, td)
		}
	}
	return out
}

func groupLines(todos []model.Todo) []string {
	var lines []string
	for i, c := range model.Categories() {
		var in []model.Todo
		for _, td := range todos {
			if td.Category == c {
				in = append(in, td)
			}
		}
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ui.SectionLines(c.Title(), in)...)
	}
	return lines
}
