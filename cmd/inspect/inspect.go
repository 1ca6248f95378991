package inspect

import (
	"fmt"
	"os"
	"strconv"

	"huf/pkg/archive"

	"github.com/spf13/cobra"
)

var InspectCmd = &cobra.Command{
	Use:   "inspect [archive]",
	Short: "View a HUF archive",
	Long:  "Print the sizes, frequency table and Huffman codes stored in a HUF archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		quiet, _ := cmd.Flags().GetBool("quiet")

		info, err := archive.InspectFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error inspecting archive %s: %s\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("Archive %s:\n", path)
		fmt.Printf("\tVersion: %d\n\tRaw: %d\n\tCompressed: %d\n\tRatio: %.3f\n\tSymbols: %d\n\tBits: %d\n",
			info.Version, info.RawSize, info.CompressedSize(), info.Ratio(),
			len(info.Header.Frequencies), info.Header.BitLength)
		if info.Flags&archive.FlagChecksum != 0 {
			fmt.Printf("\tChecksum: %016x\n", info.Checksum)
		}
		if quiet {
			return
		}

		fmt.Println("Symbol\tCount\tCode")
		for _, sym := range info.Header.Frequencies.Symbols() {
			fmt.Printf("%s\t%d\t%s\n", symbolName(sym), info.Header.Frequencies[sym], info.Codes[sym])
		}
	},
}

func symbolName(b byte) string {
	if b < 0x80 && strconv.IsPrint(rune(b)) && b != ' ' {
		return string(rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}

func init() {
	InspectCmd.Flags().BoolP("quiet", "Q", false, "Only print the archive summary")
}
