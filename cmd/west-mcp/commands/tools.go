package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var toolsVerbose bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List available tools",
	Long: `List the MCP tools served by west-mcp, minus any disabled in config.

Examples:
  west-mcp tools              # Tool names and descriptions
  west-mcp tools --verbose    # Also show the west usage line`,
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().BoolVarP(&toolsVerbose, "verbose", "v", false, "Show the west usage line of each tool")
}

func runTools(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if toolsVerbose {
		fmt.Fprintln(w, "TOOL\tUSAGE\t")
	} else {
		fmt.Fprintln(w, "TOOL\tDESCRIPTION\t")
	}

	for _, op := range a.handler.Catalog().Operations() {
		if toolsVerbose {
			fmt.Fprintf(w, "%s\t%s %s\t\n", op.Name, a.config.Binary, op.String())
		} else {
			fmt.Fprintf(w, "%s\t%s\t\n", op.Name, op.Description)
		}
	}
	return w.Flush()
}
