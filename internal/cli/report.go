package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/ironsheep/image-dataset-tools/internal/dataset"
	"github.com/ironsheep/image-dataset-tools/internal/imaging"
	"github.com/spf13/cobra"
)

var (
	reportMaxHeight int
	reportMaxWidth  int
	reportWhere     string
)

var reportCmd = &cobra.Command{
	Use:   "report <annotation.csv>",
	Short: "Print statistics, a filtered view and an area-sorted view of an annotation",
	Long: `Load the annotation, read the dimensions of every image and print:
  1. count, mean, std, min, quartiles and max of height, width and depth
  2. the images no larger than the filter limits (default 500x500)
  3. all images with their area, sorted by ascending area

With the strict policy (default) one unreadable image aborts the report.
With --policy permissive such images are reported with NaN dimensions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := reportOptions{
			Policy: cfg.ProbePolicy,
			Bounds: dataset.Bounds{
				MaxHeight: dataset.IntOf(cfg.MaxHeight),
				MaxWidth:  dataset.IntOf(cfg.MaxWidth),
			},
		}
		if reportWhere != "" {
			b, err := dataset.ParseWhere(reportWhere)
			if err != nil {
				return err
			}
			opts.Bounds = b
		}
		if cmd.Flags().Changed("max-height") {
			opts.Bounds.MaxHeight = dataset.IntOf(reportMaxHeight)
		}
		if cmd.Flags().Changed("max-width") {
			opts.Bounds.MaxWidth = dataset.IntOf(reportMaxWidth)
		}
		return runReport(cmd.OutOrStdout(), args[0], opts, imaging.FileDecoder{})
	},
}

func init() {
	reportCmd.Flags().IntVar(&reportMaxHeight, "max-height", 0, "Keep images at most this tall (default from config: 500)")
	reportCmd.Flags().IntVar(&reportMaxWidth, "max-width", 0, "Keep images at most this wide (default from config: 500)")
	reportCmd.Flags().StringVar(&reportWhere, "where", "", `Filter predicate, e.g. "height <= 500 and width <= 400"`)
}

type reportOptions struct {
	Policy dataset.ProbePolicy
	Bounds dataset.Bounds
}

// runReport runs the whole pipeline and writes every section to w.
func runReport(w io.Writer, path string, opts reportOptions, dec dataset.Decoder) error {
	t, err := dataset.Load(path)
	if err != nil {
		return err
	}
	debugf("loaded %d rows from %s", t.Len(), path)

	t, err = dataset.Probe(t, dec, opts.Policy)
	if err != nil {
		return err
	}
	for _, f := range t.ProbeFailures() {
		log.Printf("Skipping image: %v", f.Error())
	}

	summary, err := dataset.Describe(t)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Statistical information:")
	if err := writeSummary(w, summary); err != nil {
		return err
	}

	filtered, err := dataset.FilterBounds(t, opts.Bounds)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nFiltered data (%s):\n", describeBounds(opts.Bounds))
	if err := writeTable(w, filtered); err != nil {
		return err
	}

	t, err = dataset.AddArea(t)
	if err != nil {
		return err
	}
	t, err = dataset.SortByArea(t)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nSorted data:")
	return writeTable(w, t)
}
