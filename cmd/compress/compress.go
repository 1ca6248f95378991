package compress

import (
	"fmt"
	"os"
	"time"

	"huf/internal/logger"
	"huf/pkg/archive"

	"github.com/spf13/cobra"
)

var (
	noChecksum bool
	verbose    bool
)

var CompressCmd = &cobra.Command{
	Use:   "compress [input] [output]",
	Short: "Compress a file with Huffman coding",
	Long:  "Compress a file into a HUF archive. The output defaults to the input name with a .huf extension.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		src := args[0]
		out := archive.DefaultCompressedName(src)
		if len(args) == 2 {
			out = args[1]
		}

		start := time.Now()
		err := archive.CompressFile(src, out, archive.Options{NoChecksum: noChecksum})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error compressing %s into %s: %s\n", src, out, err)
			os.Exit(1)
		}

		if verbose {
			if info, err := archive.InspectFile(out); err == nil {
				logger.New(os.Stderr, true).Debugf("raw=%d compressed=%d symbols=%d bits=%d ratio=%.3f elapsed=%s",
					info.RawSize, info.CompressedSize(), len(info.Header.Frequencies),
					info.Header.BitLength, info.Ratio(), time.Since(start))
			}
		}
		fmt.Printf("Successfully compressed %s into %s\n", src, out)
	},
}

func init() {
	CompressCmd.Flags().BoolVar(&noChecksum, "no-checksum", false, "Do not store a checksum of the input")
	CompressCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log compression statistics")
}
