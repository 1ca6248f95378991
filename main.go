package main

import (
	"os"

	compress "huf/cmd/compress"
	decompress "huf/cmd/decompress"
	inspect "huf/cmd/inspect"
	version "huf/cmd/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "huf",
	Short: "Huffman compression utility",
	Long:  "huf compresses and decompresses files losslessly with static Huffman coding.",
}

func main() {
	rootCmd.AddCommand(compress.CompressCmd)
	rootCmd.AddCommand(decompress.DecompressCmd)
	rootCmd.AddCommand(inspect.InspectCmd)
	rootCmd.AddCommand(version.VersionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
