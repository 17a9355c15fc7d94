// Package cmd implements the CLI command structure for taskcli.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taskcli/taskcli/internal/config"
	"github.com/taskcli/taskcli/internal/logging"
	"github.com/taskcli/taskcli/internal/store"
	"github.com/taskcli/taskcli/internal/task"
	"github.com/taskcli/taskcli/internal/tracker"
	"github.com/taskcli/taskcli/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskcli CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskcli", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing command")
	}
	subcommand := strings.ToLower(remaining[0])
	cmdArgs := remaining[1:]

	logger := logging.New(cfg)
	st := store.NewFileStore(cfg.TaskFile, logger)
	tr := tracker.New(st)

	switch subcommand {
	case "add":
		return addCommand(fs, tr, cmdArgs)
	case "update":
		return updateCommand(fs, tr, cmdArgs)
	case "delete":
		return deleteCommand(fs, tr, cmdArgs)
	case "mark-in-progress":
		return markCommand(fs, tr, task.StatusInProgress, cmdArgs)
	case "mark-done":
		return markCommand(fs, tr, task.StatusDone, cmdArgs)
	case "list":
		return listCommand(fs, tr, cmdArgs)
	case "doctor":
		return doctorCommand(cfg, cmdArgs)
	case "tui":
		return tuiCommand(ctx, st, cfg, cmdArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// addCommand creates a new task.
func addCommand(fs *flag.FlagSet, tr *tracker.Tracker, args []string) error {
	if len(args) < 1 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing task description for 'add'")
	}
	t, err := tr.Add(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Task added successfully (ID: %d)\n", t.ID)
	return nil
}

// updateCommand overwrites a task's description.
func updateCommand(fs *flag.FlagSet, tr *tracker.Tracker, args []string) error {
	if len(args) < 2 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing task ID or new description for 'update'")
	}
	id, err := parseID(fs, args[0])
	if err != nil {
		return err
	}
	if _, err := tr.Update(id, args[1]); err != nil {
		return err
	}
	fmt.Printf("Task %d updated successfully.\n", id)
	return nil
}

// deleteCommand removes a task.
func deleteCommand(fs *flag.FlagSet, tr *tracker.Tracker, args []string) error {
	if len(args) < 1 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing task ID for 'delete'")
	}
	id, err := parseID(fs, args[0])
	if err != nil {
		return err
	}
	if err := tr.Delete(id); err != nil {
		return err
	}
	fmt.Printf("Task %d deleted successfully.\n", id)
	return nil
}

// markCommand sets a task's status.
func markCommand(fs *flag.FlagSet, tr *tracker.Tracker, status task.Status, args []string) error {
	if len(args) < 1 {
		printUsage(fs, os.Stderr)
		return fmt.Errorf("missing task ID for 'mark-%s'", markSuffix(status))
	}
	id, err := parseID(fs, args[0])
	if err != nil {
		return err
	}
	if _, err := tr.Mark(id, status); err != nil {
		return err
	}
	fmt.Printf("Task %d marked as '%s'.\n", id, status)
	return nil
}

func markSuffix(status task.Status) string {
	if status == task.StatusDone {
		return "done"
	}
	return "in-progress"
}

// listCommand prints tasks, optionally filtered by status.
func listCommand(fs *flag.FlagSet, tr *tracker.Tracker, args []string) error {
	filter := task.Status("")
	filterToken := ""
	if len(args) >= 1 {
		filterToken = strings.ToLower(args[0])
		switch filterToken {
		case "all":
			// listed unfiltered
		case "todo", "in-progress", "done":
			filter = task.Status(filterToken)
		default:
			printUsage(fs, os.Stderr)
			return fmt.Errorf("invalid list filter %q, use 'todo', 'in-progress', 'done', or 'all'", args[0])
		}
	}

	all, err := tr.List("")
	if err != nil {
		return err
	}
	filtered := task.FilterByStatus(all, filter)
	printTasks(os.Stdout, all, filtered, filterToken)
	return nil
}

// tuiCommand launches the terminal UI.
func tuiCommand(ctx context.Context, st store.Store, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskcli tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return ui.RunTUI(ctx, st, cfg.TaskFile)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskcli version %s\n", Version)
	return nil
}

// parseID converts a task id argument to an integer.
func parseID(fs *flag.FlagSet, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		printUsage(fs, os.Stderr)
		return 0, fmt.Errorf("task ID must be a number")
	}
	return id, nil
}

// printTasks writes the task listing. all is the full task set and filtered
// the subset matching the filter token; the distinction only changes which
// empty-set message is printed.
func printTasks(w io.Writer, all, filtered []task.Task, filterToken string) {
	if len(all) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	if len(filtered) == 0 {
		if filterToken != "" {
			fmt.Fprintf(w, "No tasks found with status '%s'.\n", filterToken)
		} else {
			fmt.Fprintln(w, "No tasks found.")
		}
		return
	}

	header := "All Tasks"
	if filterToken != "" && filterToken != "all" {
		header = capitalize(filterToken) + " Tasks"
	}
	fmt.Fprintf(w, "\n--- %s ---\n", header)
	for _, t := range filtered {
		fmt.Fprintf(w, "ID: %d\n", t.ID)
		fmt.Fprintf(w, "  Description: %s\n", t.Description)
		fmt.Fprintf(w, "  Status: %s\n", t.Status)
		fmt.Fprintf(w, "  Created At: %s\n", t.CreatedAt.Display())
		fmt.Fprintf(w, "  Updated At: %s\n", t.UpdatedAt.Display())
		fmt.Fprintln(w, strings.Repeat("-", 20))
	}
	fmt.Fprintln(w, strings.Repeat("-", 21))
	fmt.Fprintln(w)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskcli - A simple file-backed task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskcli [options] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add \"<description>\"                Add a new task")
	fmt.Fprintln(w, "  update <id> \"<new description>\"    Update a task's description")
	fmt.Fprintln(w, "  delete <id>                        Delete a task")
	fmt.Fprintln(w, "  mark-in-progress <id>              Mark a task as in-progress")
	fmt.Fprintln(w, "  mark-done <id>                     Mark a task as done")
	fmt.Fprintln(w, "  list [todo|in-progress|done|all]   List tasks, optionally by status")
	fmt.Fprintln(w, "  doctor [-v]                        Check config and task file validity")
	fmt.Fprintln(w, "  tui                                Launch terminal UI")
	fmt.Fprintln(w, "  version                            Show version information")
	fmt.Fprintln(w, "  help                               Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  taskcli add \"Buy groceries\"")
	fmt.Fprintln(w, "  taskcli update 1 \"Buy groceries and cook dinner\"")
	fmt.Fprintln(w, "  taskcli list done")
	fmt.Fprintln(w, "  taskcli list all")
}
