package cli

import (
	"fmt"
	"io"

	"github.com/ironsheep/image-dataset-tools/internal/imaging"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image <input> <output>",
	Short: "Show size, channels and histogram of one image and save a grayscale copy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImage(cmd.OutOrStdout(), args[0], args[1])
	},
}

func runImage(w io.Writer, in, out string) error {
	info, err := imaging.Inspect(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Image size: %dx%d, channels: %d.\n", info.Width, info.Height, info.Channels)

	img, err := imaging.Decode(in)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\nHistogram:")
	if err := writeHistogram(w, imaging.ChannelHistogram(img)); err != nil {
		return err
	}

	if err := imaging.SaveGrayscale(img, out); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nGrayscale image saved at %s\n", out)
	return nil
}
