package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nicolagi/buddy"
	"github.com/spf13/cobra"
)

var errBlankTitle = errors.New("title is blank")

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "buddy",
		Short: "A small task list with deadlines",
		Long: `buddy keeps a single list of tasks with optional deadlines.

Tasks are listed soonest deadline first, overdue ones on top and tasks without
a deadline last. The buddywidget program shows a summary of the same list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (default ~/lib/buddy/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDoneCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

func newAddCmd(a *app) *cobra.Command {
	var due string
	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deadline, err := parseDueFlag(due)
			if err != nil {
				return err
			}
			task, ok := a.store.Add(strings.Join(args, " "), deadline)
			if !ok {
				return errBlankTitle
			}
			_, _ = fmt.Fprintln(a.stdout, task.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "deadline: RFC 3339, 2006-01-02T15:04, 2006-01-02, or relative like 2h or 3d")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var pending bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks by time left",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := a.store.Tasks()
			if pending {
				tasks = buddy.Outstanding(tasks)
			}
			now := time.Now()
			printTasks(a.stdout, buddy.Sort(tasks, now), now)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&pending, "pending", "p", false, "only list tasks not yet completed")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			task, _ := a.store.Get(id)
			printTask(a.stdout, task, time.Now())
			return nil
		},
	}
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle a task between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			if !a.store.Toggle(id) {
				return fmt.Errorf("%s: %w", id, buddy.ErrNotFound)
			}
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	var (
		title string
		due   string
		noDue bool
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the title or deadline of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			task, _ := a.store.Get(id)
			if cmd.Flags().Changed("title") {
				task.Title = title
			}
			if noDue && due != "" {
				return errors.New("--due and --no-due are mutually exclusive")
			}
			switch {
			case noDue:
				task.Deadline = nil
			case due != "":
				if task.Deadline, err = parseDueFlag(due); err != nil {
					return err
				}
			}
			if !a.store.Edit(id, task.Title, task.Deadline) {
				return errBlankTitle
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&due, "due", "", "new deadline, same formats as add")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "remove the deadline")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.store.Resolve(args[0])
			if err != nil {
				return err
			}
			if !a.store.Delete(id) {
				return fmt.Errorf("%s: %w", id, buddy.ErrNotFound)
			}
			return nil
		},
	}
}

// exportFileName is the default name of an export file, e.g., buddy-tasks-2026-10-19.json.
func exportFileName(now time.Time) string {
	return fmt.Sprintf("buddy-tasks-%s.json", now.Format("2006-01-02"))
}

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.store.Export()
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if output == "-" {
				_, err := fmt.Fprintln(a.stdout, data)
				return err
			}
			if output == "" {
				output = exportFileName(time.Now())
			}
			if err := os.WriteFile(output, []byte(data+"\n"), 0600); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			_, _ = fmt.Fprintf(a.stdout, "Exported to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for standard output (default buddy-tasks-DATE.json)`)
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all tasks with those in a JSON export",
		Long: `Replace all tasks with those in a JSON export ("-" reads standard input).

Elements without a non-empty id, a non-empty title and a boolean completed
property are skipped. If the file is not a JSON array nothing is changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			if args[0] == "-" {
				b, err = io.ReadAll(a.stdin)
			} else {
				b, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			result := a.store.Import(string(b))
			if !result.Success {
				return fmt.Errorf("import: %w", result.Err)
			}
			_, _ = fmt.Fprintf(a.stdout, "Imported %d tasks\n", result.Count)
			return nil
		},
	}
}

func parseDueFlag(due string) (*time.Time, error) {
	if due == "" {
		return nil, nil
	}
	deadline, err := buddy.ParseDeadline(due, time.Now())
	if err != nil {
		return nil, err
	}
	return &deadline, nil
}
