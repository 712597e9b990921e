package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"
)

var (
	callParams string
	callJSON   bool
)

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Run one tool and print its result",
	Long: `Run a single west-mcp tool from the shell, exactly as an MCP client would.

Parameters are given as a JSON (or JSONC) object.

Examples:
  west-mcp call list_west_commands
  west-mcp call build_zephyr_project --params '{"source_dir": "app", "board": "nrf52840dk/nrf52840"}'
  west-mcp call manage_blobs --params '{"subcommand": "list"}' --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVarP(&callParams, "params", "p", "{}", "Tool parameters as a JSON object")
	callCmd.Flags().BoolVar(&callJSON, "json", false, "Print the raw JSON result")
}

// callResult is the part of every tool result the renderer needs.
type callResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

func runCall(cmd *cobra.Command, args []string) error {
	var params map[string]any
	if err := json.Unmarshal(jsonc.ToJSON([]byte(callParams)), &params); err != nil {
		return fmt.Errorf("invalid --params: %w", err)
	}

	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.handler.Call(cmd.Context(), args[0], params)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if callJSON {
		fmt.Println(string(data))
		return nil
	}

	var res callResult
	if err := json.Unmarshal(data, &res); err != nil {
		return err
	}
	render(res)

	if !res.Success {
		return fmt.Errorf("%s failed", args[0])
	}
	return nil
}

func render(res callResult) {
	if res.Stdout != "" {
		fmt.Print(res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(os.Stderr, color.New(color.FgHiBlack).Sprint(res.Stderr))
	}
	if res.Success {
		fmt.Fprintln(os.Stderr, color.New(color.FgGreen, color.Bold).Sprint("✓ ")+res.Message)
	} else {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("✗ ")+res.Message)
	}
}
