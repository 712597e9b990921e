package e2e_test

import (
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/west-mcp/west-mcp/internal/executor"
	"github.com/west-mcp/west-mcp/pkg/mcpserver/west"
)

func stdoutLines(res executor.Result) []string {
	return strings.Split(strings.TrimRight(res.Stdout, "\n"), "\n")
}

var _ = Describe("West Tools", func() {
	BeforeEach(func() {
		Expect(testServer.Workspace.Reset()).To(Succeed())
	})

	Describe("Tool Listing", func() {
		It("should list every enabled catalog operation", func() {
			result, err := session.ListTools(ctx, nil)
			Expect(err).NotTo(HaveOccurred())

			var names []string
			for _, tool := range result.Tools {
				names = append(names, tool.Name)
			}
			Expect(names).To(HaveLen(testServer.Catalog.Len()))
			Expect(names).To(ContainElements(
				"build_zephyr_project",
				"flash_zephyr_project",
				"manage_blobs",
				"west_update",
				"list_west_commands",
				"run_arbitrary_west_command",
			))
		})

		It("should leave disabled tools out", func() {
			result, err := session.ListTools(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			for _, tool := range result.Tools {
				Expect(tool.Name).NotTo(Equal("run_forall"))
			}

			res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "run_forall"})
			Expect(err != nil || res.IsError).To(BeTrue())
		})
	})

	Describe("Argument Vectors", func() {
		It("should run the documented build example", func() {
			var res executor.Result
			callTool("build_zephyr_project", map[string]any{
				"source_dir": "app",
				"board":      "board_x",
				"force":      true,
				"target":     "usage",
			}, &res)

			Expect(res.Success).To(BeTrue())
			Expect(res.Message).To(Equal(executor.MessageSuccess))

			invocations, err := testServer.Workspace.Invocations()
			Expect(err).NotTo(HaveOccurred())
			Expect(invocations).To(Equal([][]string{
				{"build", "-b", "board_x", "-f", "-t", "usage", "app"},
			}))
		})

		It("should pass runner options to flash", func() {
			var res executor.Result
			callTool("flash_zephyr_project", map[string]any{
				"build_dir":    "build/app",
				"runner":       "jlink",
				"skip_rebuild": true,
			}, &res)

			Expect(res.Success).To(BeTrue())
			Expect(stdoutLines(res)).To(Equal([]string{"flash", "-d", "build/app", "-r", "jlink", "--skip-rebuild"}))
		})

		It("should put passthrough arguments last", func() {
			var res executor.Result
			callTool("build_zephyr_project", map[string]any{
				"source_dir": "app",
				"board":      "board_x",
				"cmake_opt":  []string{"-DCONFIG_DEBUG=y", "-DEXTRA=1"},
				"shield":     []string{"x_nucleo"},
			}, &res)

			Expect(stdoutLines(res)).To(Equal([]string{
				"build", "-b", "board_x", "--shield", "x_nucleo", "app", "--", "-DCONFIG_DEBUG=y", "-DEXTRA=1",
			}))
		})

		It("should run west in the configured workspace", func() {
			var res executor.Result
			callTool("get_topdir", nil, &res)
			Expect(res.Success).To(BeTrue())
			Expect(strings.TrimSpace(res.Stdout)).To(Equal(testServer.Workspace.Root))
		})
	})

	Describe("Error Taxonomy", func() {
		It("should reject invalid choices without running west", func() {
			var res executor.Result
			callTool("get_completion_script", map[string]any{"shell": "tcsh"}, &res)

			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("Invalid shell specified. Must be one of: bash, fish, powershell, zsh."))

			invocations, err := testServer.Workspace.Invocations()
			Expect(err).NotTo(HaveOccurred())
			Expect(invocations).To(BeEmpty())
		})

		It("should suggest the closest choice", func() {
			var res executor.Result
			callTool("manage_blobs", map[string]any{"subcommand": "fecth"}, &res)

			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(HaveSuffix("Did you mean 'fetch'?"))
		})

		It("should report missing required parameters", func() {
			var res executor.Result
			callTool("build_zephyr_project", map[string]any{"board": "board_x"}, &res)

			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("Missing required parameter 'source_dir' for build_zephyr_project."))
		})

		It("should report unknown west subcommands", func() {
			var res executor.Result
			callTool("run_arbitrary_west_command", map[string]any{"command_name": "bogus"}, &res)

			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("west subcommand 'bogus' not found or invalid."))
			Expect(res.Stderr).To(ContainSubstring("invalid choice"))
		})

		It("should report generic failures with the exit code", func() {
			var res executor.Result
			callTool("run_arbitrary_west_command", map[string]any{
				"command_name": "fail",
				"args":         []string{"--verbose"},
			}, &res)

			Expect(res.Success).To(BeFalse())
			Expect(res.Message).To(Equal("Command failed with exit code 2."))
			Expect(res.Stderr).To(ContainSubstring("FATAL ERROR"))
		})
	})

	Describe("Command Inventory", func() {
		It("should group commands by section", func() {
			var out west.InventoryResult
			callTool("list_west_commands", nil, &out)

			Expect(out.Success).To(BeTrue())
			Expect(out.Message).To(Equal(west.MessageInventoryListed))
			Expect(out.Commands.BuiltIn).To(Equal([]string{"init", "update", "list", "manifest", "topdir"}))
			Expect(out.Commands.Extension).To(Equal([]string{"build", "flash", "blobs"}))
		})
	})
})
