// Package commands provides the CLI commands for west-mcp.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/west-mcp/west-mcp/internal/catalog"
	"github.com/west-mcp/west-mcp/internal/config"
	"github.com/west-mcp/west-mcp/internal/executor"
	"github.com/west-mcp/west-mcp/internal/logging"
	"github.com/west-mcp/west-mcp/pkg/mcpserver/west"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	logLevel   string
	pretty     bool
	logToFile  bool
	binary     string
	workDir    string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "west-mcp",
	Short: "MCP server for Zephyr's west tool",
	Long: `west-mcp exposes the subcommands of Zephyr's west meta-tool as MCP tools.

Run 'west-mcp serve' to serve MCP clients over stdio, SSE or streamable
HTTP, 'west-mcp tools' to list the available tools, or 'west-mcp call'
to run a single tool from the shell.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Human-readable log output")
	rootCmd.PersistentFlags().BoolVar(&logToFile, "log-file", false, "Also write logs to the state directory")
	rootCmd.PersistentFlags().StringVar(&binary, "binary", "", "west executable to run")
	rootCmd.PersistentFlags().StringVar(&workDir, "workdir", "", "Working directory for west (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file")

	rootCmd.SetVersionTemplate(fmt.Sprintf("west-mcp %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app is what every subcommand needs: settings, a logger and the tools.
type app struct {
	config  *config.Config
	log     *logging.Handle
	handler *west.Handler
}

func (a *app) Close() error {
	return a.log.Close()
}

// setup loads configuration, applies flags and wires the tool handler.
func setup(cmd *cobra.Command) (*app, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		os.Setenv("WEST_MCP_CONFIG", configFile)
	}

	cfg, err := config.Load(afero.NewOsFs(), cwd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.Pretty = pretty
	logCfg.LogToFile = cfg.LogToFile
	logCfg.LogDir = config.GetPaths().LogDir()
	log, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Default()
	if err != nil {
		log.Close()
		return nil, err
	}
	if cat, err = cat.Without(cfg.DisabledTools...); err != nil {
		log.Close()
		return nil, fmt.Errorf("disabledTools: %w", err)
	}

	exec := executor.New(cfg.Binary,
		executor.WithDir(cfg.WorkDir),
		executor.WithEnv(cfg.Env),
		executor.WithLogger(log.Logger),
	)

	log.Debug().
		Str("binary", cfg.Binary).
		Str("workdir", cfg.WorkDir).
		Int("tools", cat.Len()).
		Str("log_file", log.Path()).
		Msg("Configured")

	return &app{
		config:  cfg,
		log:     log,
		handler: west.NewHandler(cat, exec, log.Logger),
	}, nil
}

// applyFlags overrides cfg with flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogToFile = logToFile
	}
	if flags.Changed("binary") {
		cfg.Binary = binary
	}
	if flags.Changed("workdir") {
		cfg.WorkDir = workDir
	}
	if flags.Changed("transport") {
		cfg.Transport = serveTransport
	}
	if flags.Changed("address") {
		cfg.Address = serveAddress
	}
}
