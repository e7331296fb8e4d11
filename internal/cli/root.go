// Package cli implements the image-dataset command line: the report, browse,
// image and serve commands.
package cli

import (
	"fmt"
	"log"

	"github.com/ironsheep/image-dataset-tools/internal/config"
	"github.com/ironsheep/image-dataset-tools/internal/dataset"
	"github.com/spf13/cobra"
)

// BuildInfo identifies the running binary. It is set by ldflags in main.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

var (
	cfg   = config.DefaultConfig()
	build = BuildInfo{Version: "dev", BuildTime: "unknown", GitCommit: "unknown"}

	debugFlag  bool
	policyFlag string
)

var rootCmd = &cobra.Command{
	Use:   "image-dataset",
	Short: "Inspect, filter, sort and browse annotated image datasets",
	Long: `image-dataset works on CSV annotations that list one image per row
(header row, absolute_path column).

Commands:
  report   probe every image, print statistics, a filtered view and a view sorted by area
  browse   step through the images of an annotation one at a time
  image    show size, channels and histogram of one image and save a grayscale copy
  serve    run the MCP server on stdin/stdout

Environment variables:
  IMAGE_DATASET_LOG_LEVEL=debug         Enable debug logging
  IMAGE_DATASET_PROBE_POLICY=permissive Keep going when an image cannot be decoded
  IMAGE_DATASET_MAX_HEIGHT, IMAGE_DATASET_MAX_WIDTH  Default filter limits (500)

Examples:
  image-dataset report annotation.csv
  image-dataset report --where "height <= 300 and width <= 400" annotation.csv
  image-dataset browse annotation.csv`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.FromEnv()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if debugFlag {
			c.LogLevel = config.LogDebug
		}
		if cmd.Flags().Changed("policy") {
			c.ProbePolicy = dataset.ProbePolicy(policyFlag)
			if err := c.Validate(); err != nil {
				return err
			}
		}
		cfg = c

		debugf("image-dataset %s (built %s, commit %s)", build.Version, build.BuildTime, build.GitCommit)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "image-dataset %s\n", build.Version)
		fmt.Fprintf(out, "  Build time: %s\n", build.BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", build.GitCommit)
	},
}

// Execute runs the command named on the command line.
func Execute(info BuildInfo) error {
	build = info
	rootCmd.Version = info.Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging (same as IMAGE_DATASET_LOG_LEVEL=debug)")
	rootCmd.PersistentFlags().StringVar(&policyFlag, "policy", "", "Probe failure policy: strict (abort on first bad image) or permissive (record nulls)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func debugf(format string, args ...interface{}) {
	if cfg.Debug() {
		log.Printf(format, args...)
	}
}
