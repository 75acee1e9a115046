package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/ptt/internal/cli"
)

// projectCmd groups the project subcommands
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long: `Create, list and delete the projects hours are booked against.

Examples:
  ptt project add INEK 0.5
  ptt project list
  ptt project delete INEK`,
}

var projectAddCmd = &cobra.Command{
	Use:   "add <code> <allocation>",
	Short: "Create a project",
	Long: `Create a project with a code of up to five characters and a
full-time-equivalent allocation, e.g. 0.5 for half time.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		addProject(args)
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listProjects()
	},
}

var projectYesFlag bool

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <code>",
	Short: "Delete a project",
	Long: `Delete a project. Entries already booked against it keep their copy of
the project, so past days and reports are unchanged.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteProject(args[0])
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectDeleteCmd.Flags().BoolVarP(&projectYesFlag, "yes", "y", false, "skip confirmation prompt")
}

func addProject(args []string) {
	allocationStr := strings.Replace(strings.TrimSpace(args[1]), ",", ".", 1)
	allocation, err := strconv.ParseFloat(allocationStr, 64)
	if err != nil {
		exitWithError(fmt.Sprintf("Invalid allocation '%s'", args[1]), nil, "Use a full-time-equivalent share, e.g. 1 or 0.5")
		return
	}

	l, ok := openLedger()
	if !ok {
		return
	}

	p, err := l.CreateProject(args[0], allocation)
	if err != nil {
		reportLedgerError("Failed to create the project", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created: %s\n", cli.FormatProject(p))
}

func listProjects() {
	l, ok := openLedger()
	if !ok {
		return
	}

	projects := l.Projects()
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No projects yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: ptt project add <code> <allocation>")
		return
	}
	for _, p := range projects {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatProject(p))
	}
}

func deleteProject(code string) {
	code = strings.TrimSpace(code)

	l, ok := openLedger()
	if !ok {
		return
	}

	p, found := l.Project(code)
	if !found {
		exitWithError(fmt.Sprintf("Project '%s' does not exist", code), nil, "Run 'ptt project list' to see existing projects")
		return
	}

	if !projectYesFlag && !promptConfirmation(fmt.Sprintf("Delete project %s?", p.Code)) {
		_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
		return
	}

	if err := l.DeleteProject(code); err != nil {
		reportLedgerError("Failed to delete the project", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", cli.FormatProject(p))
}
