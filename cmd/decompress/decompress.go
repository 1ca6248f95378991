package decompress

import (
	"fmt"
	"os"
	"time"

	"huf/internal/logger"
	"huf/pkg/archive"

	"github.com/spf13/cobra"
)

var verbose bool

var DecompressCmd = &cobra.Command{
	Use:   "decompress [archive] [output]",
	Short: "Decompress a HUF archive",
	Long:  "Decompress a HUF archive. The output defaults to the archive name without its .huf extension.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.New(os.Stderr, verbose)

		src := args[0]
		out := archive.DefaultDecompressedName(src)
		if len(args) == 2 {
			out = args[1]
		}

		start := time.Now()
		if err := archive.DecompressFile(src, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error decompressing archive %s: %s\n", src, err)
			os.Exit(1)
		}
		log.Debugf("decompressed %s in %s", src, time.Since(start))
		fmt.Printf("Successfully decompressed archive %s to %s\n", src, out)
	},
}

func init() {
	DecompressCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log decompression timing")
}
