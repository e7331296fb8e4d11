package cli

import (
	"github.com/ironsheep/image-dataset-tools/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: `Serve the dataset and image tools over the MCP protocol (JSON-RPC 2.0,
one message per line on stdin/stdout). Configure it in your MCP client.
Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debugf("MCP server starting (policy %s, filter %dx%d)", cfg.ProbePolicy, cfg.MaxHeight, cfg.MaxWidth)
		return server.New(cfg).Run()
	},
}
