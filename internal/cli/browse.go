package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ironsheep/image-dataset-tools/internal/cursor"
	"github.com/ironsheep/image-dataset-tools/internal/dataset"
	"github.com/ironsheep/image-dataset-tools/internal/imaging"
	"github.com/spf13/cobra"
)

const endOfDatasetMessage = "You have viewed all images in the annotation."

var browseCmd = &cobra.Command{
	Use:   "browse <annotation.csv>",
	Short: "Step through the images of an annotation one at a time",
	Long: `Show the images of an annotation in file order, one per step.
Press Enter (or type n) for the next image and q to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cur, err := cursor.Open(args[0])
		if err != nil {
			return err
		}
		return runBrowse(cur, imaging.FileDecoder{}, cmd.OutOrStdout())
	},
}

func runBrowse(cur *cursor.Cursor, dec dataset.Decoder, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "next> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          out,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	b := &browser{cur: cur, dec: dec, out: out}
	fmt.Fprintf(out, "Browsing %d images. Press Enter for the next image, q to quit.\n", cur.Len())
	b.next()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if b.handle(line) {
			return nil
		}
	}
}

// browser turns prompt input into cursor steps.
type browser struct {
	cur *cursor.Cursor
	dec dataset.Decoder
	out io.Writer
}

// handle executes one command line and reports whether the user asked to quit.
func (b *browser) handle(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	case "", "n", "next":
		b.next()
	case "h", "help", "?":
		fmt.Fprintln(b.out, "Enter or n: next image    q: quit")
	default:
		fmt.Fprintf(b.out, "Unknown command %q (Enter or n: next image, q: quit)\n", line)
	}
	return false
}

func (b *browser) next() {
	if b.cur.State() == cursor.Exhausted {
		fmt.Fprintln(b.out, "No more images. Type q to quit.")
		return
	}

	item, ok := b.cur.Next()
	if !ok {
		fmt.Fprintln(b.out, endOfDatasetMessage)
		return
	}

	fmt.Fprintf(b.out, "[%d/%d] %s\n", item.Index+1, b.cur.Len(), item.Path)
	dims, err := b.dec.DecodeDimensions(item.Path)
	if err != nil {
		fmt.Fprintf(b.out, "  error: %v\n", err)
		return
	}
	fmt.Fprintf(b.out, "  %dx%d, %d channels, %s\n", dims.Width, dims.Height, dims.Depth, dims.Format)
}
